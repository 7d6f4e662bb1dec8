package gateway

import "context"

// IntentSucceeded is the only gateway status that authorizes a ledger
// write.
const IntentSucceeded = "succeeded"

// Intent is the gateway-side record of an attempted charge. ClientSecret
// is only populated on creation and is handed to the browser for
// client-side confirmation; it is never persisted.
type Intent struct {
	ID           string
	ClientSecret string
	Status       string
	AmountMinor  int64
	CustomerID   string
}

// PaymentGateway is the boundary to the hosted card-payment processor.
// Raw card data never crosses it in either direction.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amountMinor int64, currency string, metadata map[string]string) (Intent, error)
	RetrieveIntent(ctx context.Context, id string) (Intent, error)
}
