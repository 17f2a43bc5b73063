package services

import (
	"fmt"

	"github.com/yigit/sportfit/internal/app/models"
	"github.com/yigit/sportfit/internal/pkg/apperrors"
)

// ClassLifecycle decides which class status transitions are legal
type ClassLifecycle struct {
	// AllowReversal lets an admin turn an approved class into a denied one and back
	AllowReversal bool
}

// Transition validates moving a class from current to target. It reports whether the
// status actually changes; re-applying the current status is a no-op.
func (l ClassLifecycle) Transition(current, target models.ClassStatus) (bool, error) {
	if current == target {
		return false, nil
	}

	switch {
	case target == models.ClassStatusPending:
		// pending is the entry state only
	case current == models.ClassStatusPending &&
		(target == models.ClassStatusApproved || target == models.ClassStatusDenied):
		return true, nil
	case l.AllowReversal &&
		(current == models.ClassStatusApproved && target == models.ClassStatusDenied ||
			current == models.ClassStatusDenied && target == models.ClassStatusApproved):
		return true, nil
	}

	return false, fmt.Errorf("%w: %s to %s", apperrors.ErrInvalidTransition, current, target)
}
