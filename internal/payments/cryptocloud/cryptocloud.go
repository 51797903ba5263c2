package cryptocloud

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	invoiceCreatePath = "/v3/invoice-create"
	invoiceCurrency   = "USDT"
	invoiceLifetime   = 1800 // seconds
	requestTimeout    = 15 * time.Second
)

var (
	ErrUnauthorized = errors.New("cryptocloud: unauthorized, invalid API key")
	ErrForbidden    = errors.New("cryptocloud: forbidden, check shop id or API key permissions")
	ErrNotFound     = errors.New("cryptocloud: endpoint not found, check API version")
	ErrBadResponse  = errors.New("cryptocloud: response missing invoice url or id")
)

type Options struct {
	BaseURL     string
	APIKey      string
	ShopID      string
	Secret      string
	CallbackURL string
}

type Provider struct {
	client *resty.Client
	opts   Options
	zaplog *zap.Logger
}

func New(opts Options, zaplog *zap.Logger) *Provider {
	client := resty.New().
		SetBaseURL(strings.TrimRight(opts.BaseURL, "/")).
		SetTimeout(requestTimeout)
	return &Provider{client: client, opts: opts, zaplog: zaplog}
}

func (p *Provider) Name() string { return "cryptocloud" }

type createRequest struct {
	ShopID      string `json:"shop_id"`
	Amount      string `json:"amount"` // string-encoded per API spec
	Currency    string `json:"currency"`
	OrderID     string `json:"order_id"`
	Description string `json:"description"`
	Lifetime    int    `json:"lifetime"`
	CallbackURL string `json:"callback_url"`
}

type createResponse struct {
	Result struct {
		InvoiceID any    `json:"invoice_id"`
		ID        any    `json:"id"`
		URL       string `json:"url"`
	} `json:"result"`
}

func (p *Provider) CreateInvoice(ctx context.Context, amount float64, description string) (string, string, error) {
	req := createRequest{
		ShopID:      p.opts.ShopID,
		Amount:      strconv.FormatFloat(amount, 'f', -1, 64),
		Currency:    invoiceCurrency,
		OrderID:     uuid.NewString(),
		Description: description,
		Lifetime:    invoiceLifetime,
		CallbackURL: p.opts.CallbackURL,
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Token "+p.opts.APIKey).
		SetHeader("X-Secret", p.opts.Secret).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post(invoiceCreatePath)
	if err != nil {
		return "", "", fmt.Errorf("cryptocloud: create invoice: %w", err)
	}

	p.zaplog.Info("cryptocloud response",
		zap.Int("status", resp.StatusCode()),
		zap.String("body", string(resp.Body())),
	)

	switch resp.StatusCode() {
	case http.StatusUnauthorized:
		return "", "", ErrUnauthorized
	case http.StatusForbidden:
		return "", "", ErrForbidden
	case http.StatusNotFound:
		return "", "", ErrNotFound
	}
	if resp.IsError() {
		return "", "", fmt.Errorf("cryptocloud: create invoice status %d", resp.StatusCode())
	}

	var res createResponse
	if err := json.Unmarshal(resp.Body(), &res); err != nil {
		return "", "", fmt.Errorf("cryptocloud: decode response: %w", err)
	}

	invoiceID := stringify(res.Result.InvoiceID)
	if invoiceID == "" {
		invoiceID = stringify(res.Result.ID)
	}
	if res.Result.URL == "" || invoiceID == "" {
		return "", "", ErrBadResponse
	}
	return res.Result.URL, invoiceID, nil
}

type webhookPayload struct {
	Status    string `json:"status"`
	InvoiceID any    `json:"invoice_id"`
	ID        any    `json:"id"`
}

// ParseWebhook reads a status-change notification. The id field may arrive
// as a string or a number.
func (p *Provider) ParseWebhook(body []byte) (string, string, error) {
	var pl webhookPayload
	if err := json.Unmarshal(body, &pl); err != nil {
		return "", "", err
	}
	invoiceID := stringify(pl.InvoiceID)
	if invoiceID == "" {
		invoiceID = stringify(pl.ID)
	}
	return invoiceID, strings.TrimSpace(pl.Status), nil
}

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}
