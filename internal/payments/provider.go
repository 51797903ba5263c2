package payments

import "context"

type Provider interface {
	Name() string

	// CreateInvoice returns the hosted payment page URL and the
	// processor-assigned invoice id.
	CreateInvoice(ctx context.Context, amount float64, description string) (payURL string, invoiceID string, err error)

	// ParseWebhook extracts the invoice id and status from a status-change
	// notification body.
	ParseWebhook(body []byte) (invoiceID string, status string, err error)
}

const StatusPaid = "paid"
