package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/yigit/sportfit/internal/pkg/apperrors"
)

// snapCreator is the part of snap.Client used here
type snapCreator interface {
	CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error)
}

// MidtransProcessor creates Snap transactions; the Snap token plays the role of the client secret
type MidtransProcessor struct {
	snap snapCreator
}

// NewMidtransProcessor creates a Snap-backed processor for the sandbox or production environment
func NewMidtransProcessor(serverKey string, production bool) *MidtransProcessor {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}
	client := &snap.Client{}
	client.New(serverKey, env)
	return &MidtransProcessor{snap: client}
}

// Name returns the provider name
func (p *MidtransProcessor) Name() string {
	return ProviderMidtrans
}

// CreateIntent creates a Snap transaction. Snap amounts are whole currency units, so
// an amount with a fractional part is rejected rather than rounded.
func (p *MidtransProcessor) CreateIntent(_ context.Context, req IntentRequest) (*Intent, error) {
	if req.Amount <= 0 || req.Amount%100 != 0 {
		return nil, fmt.Errorf("%w: %s charges whole currency units, got %d minor units",
			apperrors.ErrValidationFailed, ProviderMidtrans, req.Amount)
	}
	gross := req.Amount / 100

	// Snap refuses a reused order id, so every call gets a fresh one and the
	// idempotency key travels as a custom field for reconciliation
	orderID := uuid.New().String()

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: gross,
		},
		CustomField1: req.IdempotencyKey,
	}
	if req.Method == "card" {
		snapReq.EnabledPayments = []snap.SnapPaymentType{snap.PaymentTypeCreditCard}
		snapReq.CreditCard = &snap.CreditCardDetails{Secure: true}
	}
	if email := req.Metadata["email"]; email != "" {
		snapReq.CustomerDetail = &midtrans.CustomerDetails{Email: email}
	}

	resp, merr := p.snap.CreateTransaction(snapReq)
	if merr != nil {
		return nil, externalError(ProviderMidtrans, errors.New(merr.Message))
	}
	if resp == nil || resp.Token == "" {
		return nil, externalError(ProviderMidtrans, errors.New("response carried no token"))
	}

	return &Intent{
		ID:           orderID,
		ClientSecret: resp.Token,
		Amount:       gross * 100,
		Currency:     req.Currency,
	}, nil
}
