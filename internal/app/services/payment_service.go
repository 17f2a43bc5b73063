package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	appauth "github.com/yigit/sportfit/internal/app/auth"
	"github.com/yigit/sportfit/internal/app/models"
	"github.com/yigit/sportfit/internal/app/models/dto"
	"github.com/yigit/sportfit/internal/pkg/payment"
)

// PaymentOptions fixes the charge parameters sent to the processor
type PaymentOptions struct {
	Currency string
	Method   string
}

// PaymentService creates payment intents and reads payment records
type PaymentService interface {
	CreateIntent(ctx context.Context, caller appauth.Identity, req dto.CreateIntentRequest) (*dto.CreateIntentResponse, error)
	ListEnrolled(ctx context.Context, caller appauth.Identity, email string) ([]*models.PaymentRecord, error)
	PaymentHistory(ctx context.Context, caller appauth.Identity, email string) ([]*models.PaymentRecord, error)
}

// paymentServiceImpl implements the PaymentService interface
type paymentServiceImpl struct {
	processor payment.Processor
	payments  PaymentStore
	options   PaymentOptions
	logger    zerolog.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(processor payment.Processor, payments PaymentStore, options PaymentOptions, logger zerolog.Logger) PaymentService {
	if options.Currency == "" {
		options.Currency = "usd"
	}
	if options.Method == "" {
		options.Method = "card"
	}
	return &paymentServiceImpl{
		processor: processor,
		payments:  payments,
		options:   options,
		logger:    logger,
	}
}

// CreateIntent converts the price to cents and asks the processor for a client secret
func (s *paymentServiceImpl) CreateIntent(ctx context.Context, caller appauth.Identity, req dto.CreateIntentRequest) (*dto.CreateIntentResponse, error) {
	amount, err := payment.ToMinorUnits(req.Price)
	if err != nil {
		return nil, err
	}

	metadata := map[string]string{"email": caller.Email}
	idempotencyKey := ""
	if req.ClassID > 0 {
		metadata["classId"] = strconv.FormatInt(req.ClassID, 10)
		idempotencyKey = intentKey(caller.Email, req.ClassID, amount, s.options.Currency)
	}

	intent, err := s.processor.CreateIntent(ctx, payment.IntentRequest{
		Amount:         amount,
		Currency:       s.options.Currency,
		Method:         s.options.Method,
		Metadata:       metadata,
		IdempotencyKey: idempotencyKey,
	})
	if err != nil {
		s.logger.Error().Err(err).
			Str("provider", s.processor.Name()).
			Int64("amount", amount).
			Msg("Payment intent creation failed")
		return nil, err
	}

	s.logger.Info().
		Str("provider", s.processor.Name()).
		Str("intentID", intent.ID).
		Int64("amount", intent.Amount).
		Str("email", caller.Email).
		Msg("Payment intent created")

	return &dto.CreateIntentResponse{
		ClientSecret: intent.ClientSecret,
		Amount:       intent.Amount,
		Currency:     s.options.Currency,
		Provider:     s.processor.Name(),
	}, nil
}

// intentKey identifies one student's charge for one class, so a retried request reuses
// the processor-side intent instead of creating a second one
func intentKey(email string, classID, amount int64, currency string) string {
	name := fmt.Sprintf("%s|%d|%d|%s", normalizeEmail(email), classID, amount, strings.ToLower(currency))
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String()
}

// ListEnrolled returns the classes the caller paid for
func (s *paymentServiceImpl) ListEnrolled(ctx context.Context, caller appauth.Identity, email string) ([]*models.PaymentRecord, error) {
	return s.list(ctx, caller, email, false)
}

// PaymentHistory returns the caller's payments, newest first
func (s *paymentServiceImpl) PaymentHistory(ctx context.Context, caller appauth.Identity, email string) ([]*models.PaymentRecord, error) {
	return s.list(ctx, caller, email, true)
}

func (s *paymentServiceImpl) list(ctx context.Context, caller appauth.Identity, email string, newestFirst bool) ([]*models.PaymentRecord, error) {
	if email == "" {
		email = caller.Email
	}
	if err := appauth.ValidateSelfOrAdmin(caller, email); err != nil {
		return nil, err
	}
	return s.payments.ListByEmail(ctx, normalizeEmail(email), newestFirst)
}
