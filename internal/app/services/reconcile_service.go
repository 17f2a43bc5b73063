package services

import (
	"context"

	"github.com/rs/zerolog"
)

// SeatReconciler repairs class seat counters that drifted from the payment records
type SeatReconciler struct {
	classes ClassStore
	logger  zerolog.Logger
}

// NewSeatReconciler creates a SeatReconciler
func NewSeatReconciler(classes ClassStore, logger zerolog.Logger) *SeatReconciler {
	return &SeatReconciler{
		classes: classes,
		logger:  logger.With().Str("job", "seat_reconcile").Logger(),
	}
}

// Run recomputes enrolled and available seats for every drifted class
func (r *SeatReconciler) Run(ctx context.Context) error {
	repaired, err := r.classes.ReconcileSeats(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("Seat reconciliation failed")
		return err
	}
	if repaired > 0 {
		r.logger.Warn().Int64("repaired", repaired).Msg("Repaired drifted seat counters")
	} else {
		r.logger.Debug().Msg("Seat counters consistent")
	}
	return nil
}
