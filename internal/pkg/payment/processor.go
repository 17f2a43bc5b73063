// Package payment talks to external payment processors. Only intent creation is
// handled here; confirmation happens between the client and the processor.
package payment

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/yigit/sportfit/internal/pkg/apperrors"
)

// Supported providers
const (
	ProviderStripe   = "stripe"
	ProviderMidtrans = "midtrans"
)

// IntentRequest describes the charge the client is about to complete
type IntentRequest struct {
	// Amount in minor currency units (cents)
	Amount   int64
	Currency string
	// Method is the payment method family, e.g. "card"
	Method   string
	Metadata map[string]string
	// IdempotencyKey is sent as Stripe's Idempotency-Key and as a Midtrans custom field
	IdempotencyKey string
}

// Intent is the processor's view of an in-progress charge
type Intent struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
}

// Processor creates payment intents on an external service
type Processor interface {
	CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error)
	Name() string
}

// ToMinorUnits converts a major-unit price to minor units by truncation.
// The epsilon keeps values such as 19.99 from landing on 1998 due to binary rounding.
func ToMinorUnits(price float64) (int64, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return 0, fmt.Errorf("%w: price must be a positive number", apperrors.ErrValidationFailed)
	}
	cents := math.Trunc(price*100 + 1e-6)
	if cents < 1 {
		return 0, fmt.Errorf("%w: price is below the smallest chargeable unit", apperrors.ErrValidationFailed)
	}
	if cents > math.MaxInt64/2 {
		return 0, fmt.Errorf("%w: price is too large", apperrors.ErrValidationFailed)
	}
	return int64(cents), nil
}

// Config selects and configures a provider
type Config struct {
	Provider   string
	SecretKey  string
	BaseURL    string
	Production bool
}

// NewProcessor builds the processor named by cfg.Provider
func NewProcessor(cfg Config) (Processor, error) {
	switch strings.ToLower(cfg.Provider) {
	case ProviderStripe, "":
		return NewStripeProcessor(cfg.SecretKey, cfg.BaseURL), nil
	case ProviderMidtrans:
		return NewMidtransProcessor(cfg.SecretKey, cfg.Production), nil
	default:
		return nil, fmt.Errorf("unknown payment provider %q", cfg.Provider)
	}
}

func externalError(provider string, err error) error {
	return fmt.Errorf("%w: %s: %v", apperrors.ErrExternalService, provider, err)
}
