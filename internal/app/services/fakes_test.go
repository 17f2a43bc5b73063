package services

import (
	"context"
	"sort"
	"sync"

	"github.com/yigit/sportfit/internal/app/models"
	"github.com/yigit/sportfit/internal/pkg/apperrors"
	"github.com/yigit/sportfit/internal/pkg/payment"
)

type fakeUserStore struct {
	mu     sync.Mutex
	users  []*models.User
	nextID int64
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	f.nextID++
	stored := *user
	stored.ID = f.nextID
	f.users = append(f.users, &stored)
	return stored.ID, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) List(_ context.Context) ([]*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*models.User(nil), f.users...), nil
}

func (f *fakeUserStore) GetRoleByEmail(_ context.Context, email string) (models.RoleType, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u.Role, nil
		}
	}
	return "", nil
}

func (f *fakeUserStore) UpdateRole(_ context.Context, id int64, role models.RoleType) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			u.Role = role
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

type fakeClassStore struct {
	classes        map[int64]*models.ClassOffering
	nextID         int64
	setStatusCalls int
	updateCalls    int
	reconciled     int64
	reconcileErr   error
	reconcileCalls int
}

func newFakeClassStore(classes ...*models.ClassOffering) *fakeClassStore {
	f := &fakeClassStore{classes: map[int64]*models.ClassOffering{}}
	for _, c := range classes {
		f.classes[c.ID] = c
		if c.ID > f.nextID {
			f.nextID = c.ID
		}
	}
	return f
}

func (f *fakeClassStore) Create(_ context.Context, class *models.ClassOffering) error {
	f.nextID++
	class.ID = f.nextID
	class.AvailableSeats = class.Capacity
	class.Status = models.ClassStatusPending
	stored := *class
	f.classes[class.ID] = &stored
	return nil
}

func (f *fakeClassStore) GetByID(_ context.Context, id int64) (*models.ClassOffering, error) {
	c, ok := f.classes[id]
	if !ok {
		return nil, apperrors.ErrClassNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeClassStore) List(_ context.Context, filter models.ClassFilter) ([]*models.ClassOffering, error) {
	var out []*models.ClassOffering
	for _, c := range f.classes {
		if filter.InstructorEmail != "" && c.InstructorEmail != filter.InstructorEmail {
			continue
		}
		if len(filter.Statuses) > 0 {
			match := false
			for _, s := range filter.Statuses {
				match = match || c.Status == s
			}
			if !match {
				continue
			}
		}
		copied := *c
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		if filter.OrderByEnrolled && out[i].TotalEnrolled != out[j].TotalEnrolled {
			return out[i].TotalEnrolled > out[j].TotalEnrolled
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f *fakeClassStore) Update(_ context.Context, id int64, upd models.ClassUpdate) (*models.ClassOffering, error) {
	f.updateCalls++
	c, ok := f.classes[id]
	if !ok {
		return nil, apperrors.ErrClassNotFound
	}
	if upd.Capacity != nil {
		if *upd.Capacity < c.TotalEnrolled {
			return nil, apperrors.ErrCapacityBelowUsage
		}
		c.Capacity = *upd.Capacity
		c.AvailableSeats = c.Capacity - c.TotalEnrolled
	}
	if upd.ClassName != nil {
		c.ClassName = *upd.ClassName
	}
	if upd.Picture != nil {
		c.Picture = *upd.Picture
	}
	if upd.Price != nil {
		c.Price = *upd.Price
	}
	copied := *c
	return &copied, nil
}

func (f *fakeClassStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.classes[id]; !ok {
		return apperrors.ErrClassNotFound
	}
	delete(f.classes, id)
	return nil
}

func (f *fakeClassStore) SetStatus(_ context.Context, id int64, from, to models.ClassStatus) (*models.ClassOffering, error) {
	f.setStatusCalls++
	c, ok := f.classes[id]
	if !ok {
		return nil, apperrors.ErrClassNotFound
	}
	if c.Status != from {
		return nil, apperrors.NewConflictError("class status changed concurrently")
	}
	c.Status = to
	copied := *c
	return &copied, nil
}

func (f *fakeClassStore) SetFeedback(_ context.Context, id int64, feedback string) (*models.ClassOffering, error) {
	c, ok := f.classes[id]
	if !ok {
		return nil, apperrors.ErrClassNotFound
	}
	c.Feedback = &feedback
	copied := *c
	return &copied, nil
}

func (f *fakeClassStore) ReconcileSeats(_ context.Context) (int64, error) {
	f.reconcileCalls++
	if f.reconcileErr != nil {
		return 0, f.reconcileErr
	}
	return f.reconciled, nil
}

type fakeSelectionStore struct {
	selections map[int64]*models.Selection
	nextID     int64
}

func newFakeSelectionStore() *fakeSelectionStore {
	return &fakeSelectionStore{selections: map[int64]*models.Selection{}}
}

func (f *fakeSelectionStore) Create(_ context.Context, selection *models.Selection) error {
	for _, s := range f.selections {
		if s.StudentEmail == selection.StudentEmail && s.ClassID == selection.ClassID {
			return apperrors.ErrAlreadySelected
		}
	}
	f.nextID++
	selection.ID = f.nextID
	stored := *selection
	f.selections[selection.ID] = &stored
	return nil
}

func (f *fakeSelectionStore) GetByID(_ context.Context, id int64) (*models.Selection, error) {
	s, ok := f.selections[id]
	if !ok {
		return nil, apperrors.ErrSelectionNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSelectionStore) ListByStudent(_ context.Context, email string) ([]*models.Selection, error) {
	var out []*models.Selection
	for _, s := range f.selections {
		if s.StudentEmail == email {
			copied := *s
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeSelectionStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.selections[id]; !ok {
		return apperrors.ErrSelectionNotFound
	}
	delete(f.selections, id)
	return nil
}

type fakePaymentStore struct {
	records     []*models.PaymentRecord
	lastEmail   string
	newestFirst bool
}

func (f *fakePaymentStore) ListByEmail(_ context.Context, email string, newestFirst bool) ([]*models.PaymentRecord, error) {
	f.lastEmail = email
	f.newestFirst = newestFirst
	var out []*models.PaymentRecord
	for _, r := range f.records {
		if r.Email == email {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeInstructorStore struct {
	profiles  map[string]*models.InstructorProfile
	ensureErr error
}

func newFakeInstructorStore() *fakeInstructorStore {
	return &fakeInstructorStore{profiles: map[string]*models.InstructorProfile{}}
}

func (f *fakeInstructorStore) Ensure(_ context.Context, email, name, photoURL string) (*models.InstructorProfile, error) {
	if f.ensureErr != nil {
		return nil, f.ensureErr
	}
	p, ok := f.profiles[email]
	if !ok {
		p = &models.InstructorProfile{ID: int64(len(f.profiles) + 1), Email: email}
		f.profiles[email] = p
	}
	if name != "" {
		p.Name = name
	}
	if photoURL != "" {
		p.PhotoURL = photoURL
	}
	return p, nil
}

func (f *fakeInstructorStore) List(_ context.Context) ([]*models.InstructorProfile, error) {
	var out []*models.InstructorProfile
	for _, p := range f.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NumberOfStudents > out[j].NumberOfStudents })
	return out, nil
}

type fakeEnrollmentStore struct {
	got    []models.Enrollment
	result *models.EnrollmentResult
	err    error
}

func (f *fakeEnrollmentStore) Enroll(_ context.Context, e models.Enrollment) (*models.EnrollmentResult, error) {
	f.got = append(f.got, e)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeProcessor struct {
	got []payment.IntentRequest
	err error
	// charged overrides the amount the processor reports back
	charged int64
}

func (f *fakeProcessor) Name() string { return "fake" }

func (f *fakeProcessor) CreateIntent(_ context.Context, req payment.IntentRequest) (*payment.Intent, error) {
	f.got = append(f.got, req)
	if f.err != nil {
		return nil, f.err
	}
	amount := req.Amount
	if f.charged > 0 {
		amount = f.charged
	}
	return &payment.Intent{ID: "pi_1", ClientSecret: "pi_1_secret", Amount: amount, Currency: req.Currency}, nil
}
