package invoices

import (
	"context"

	"go.uber.org/zap"

	"tipster-bot/internal/models"
	"tipster-bot/internal/payments"
)

// Creator issues invoices with the payment processor and records which chat
// each invoice belongs to. The book gains exactly one entry per successful
// creation and none on failure.
type Creator struct {
	pay    payments.Provider
	book   *Book
	zaplog *zap.Logger
}

func NewCreator(pay payments.Provider, book *Book, zaplog *zap.Logger) *Creator {
	return &Creator{pay: pay, book: book, zaplog: zaplog}
}

func (c *Creator) Create(ctx context.Context, tier models.Tier, chatID int64) (string, error) {
	payURL, invoiceID, err := c.pay.CreateInvoice(ctx, tier.PriceUSDT, tier.Label)
	if err != nil {
		c.zaplog.Error("create invoice",
			zap.String("tier", tier.Code),
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		return "", err
	}

	c.book.Put(invoiceID, chatID)
	c.zaplog.Info("invoice created",
		zap.String("invoice_id", invoiceID),
		zap.String("tier", tier.Code),
		zap.Int64("chat_id", chatID),
	)
	return payURL, nil
}
