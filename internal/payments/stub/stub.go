package stub

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// Stub provider:
// - CreateInvoice: генерит ссылку /pay/stub?invoice=...
// - Webhook: тот же JSON, что шлёт CryptoCloud ({status, invoice_id})

type Provider struct {
	baseURL string
}

func New(baseURL string) *Provider {
	return &Provider{baseURL: strings.TrimRight(baseURL, "/")}
}

func (p *Provider) Name() string { return "stub" }

func (p *Provider) CreateInvoice(ctx context.Context, amount float64, description string) (string, string, error) {
	invoiceID := uuid.NewString()

	url := "/pay/stub?invoice=" + invoiceID
	if p.baseURL != "" {
		url = p.baseURL + url
	}
	return url, invoiceID, nil
}

type webhookPayload struct {
	Status    string `json:"status"`
	InvoiceID string `json:"invoice_id"`
}

func (p *Provider) ParseWebhook(body []byte) (string, string, error) {
	var pl webhookPayload
	if err := json.Unmarshal(body, &pl); err != nil {
		return "", "", err
	}
	return strings.TrimSpace(pl.InvoiceID), strings.TrimSpace(pl.Status), nil
}
