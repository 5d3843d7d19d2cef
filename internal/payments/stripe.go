// Package payments captures donation payments. With a Stripe key configured
// it creates a payment intent and uses its identifier as the transaction id;
// without one, payment is simulated the way the donation form always has been.
package payments

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v84"
)

// Charger is the payment boundary the donation flow depends on.
type Charger interface {
	Charge(ctx context.Context, amountCents int64, program, email string) (transactionID string, err error)
}

type StripeCharger struct {
	client *stripe.Client
}

func NewStripeCharger(secretKey string) *StripeCharger {
	return &StripeCharger{client: stripe.NewClient(secretKey)}
}

func (c *StripeCharger) Charge(ctx context.Context, amountCents int64, program, email string) (string, error) {
	params := &stripe.PaymentIntentCreateParams{
		Amount:       stripe.Int64(amountCents),
		Currency:     stripe.String(string(stripe.CurrencyINR)),
		Description:  stripe.String(fmt.Sprintf("Donation - %s", program)),
		ReceiptEmail: stripe.String(email),
		AutomaticPaymentMethods: &stripe.PaymentIntentCreateAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}

	intent, err := c.client.V1PaymentIntents.Create(ctx, params)
	if err != nil {
		return "", fmt.Errorf("create payment intent: %w", err)
	}

	return intent.ID, nil
}

// SimulatedCharger accepts every charge, mirroring the original form's
// simulated payment path. The donation store assigns the transaction id.
type SimulatedCharger struct{}

func (SimulatedCharger) Charge(_ context.Context, _ int64, _, _ string) (string, error) {
	return "", nil
}
