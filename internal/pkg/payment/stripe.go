package payment

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultStripeBaseURL = "https://api.stripe.com"

// StripeProcessor creates PaymentIntents through the Stripe REST API
type StripeProcessor struct {
	client *resty.Client
}

type stripeIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

type stripeErrorEnvelope struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// NewStripeProcessor creates a processor authenticated with the secret key.
// An empty baseURL targets the public Stripe API.
func NewStripeProcessor(secretKey, baseURL string) *StripeProcessor {
	if baseURL == "" {
		baseURL = defaultStripeBaseURL
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetBasicAuth(secretKey, "").
		SetHeader("Accept", "application/json").
		SetTimeout(15 * time.Second)

	return &StripeProcessor{client: client}
}

// Name returns the provider name
func (p *StripeProcessor) Name() string {
	return ProviderStripe
}

// CreateIntent creates a PaymentIntent and returns its client secret
func (p *StripeProcessor) CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(req.Amount, 10))
	form.Set("currency", req.Currency)
	form.Add("payment_method_types[]", req.Method)
	for k, v := range req.Metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}

	var result stripeIntent
	var apiErr stripeErrorEnvelope

	r := p.client.R().
		SetContext(ctx).
		SetFormDataFromValues(form).
		SetResult(&result).
		SetError(&apiErr)
	if req.IdempotencyKey != "" {
		r.SetHeader("Idempotency-Key", req.IdempotencyKey)
	}

	resp, err := r.Post("/v1/payment_intents")
	if err != nil {
		return nil, externalError(ProviderStripe, err)
	}
	if resp.IsError() {
		msg := apiErr.Error.Message
		if msg == "" {
			msg = resp.Status()
		}
		return nil, externalError(ProviderStripe, fmt.Errorf("status %d: %s", resp.StatusCode(), msg))
	}
	if result.ClientSecret == "" {
		return nil, externalError(ProviderStripe, errors.New("response carried no client secret"))
	}

	return &Intent{
		ID:           result.ID,
		ClientSecret: result.ClientSecret,
		Amount:       result.Amount,
		Currency:     result.Currency,
	}, nil
}
