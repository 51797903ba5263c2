package payments

import (
	"fmt"

	"go.uber.org/zap"

	"tipster-bot/internal/config"
	"tipster-bot/internal/payments/cryptocloud"
	"tipster-bot/internal/payments/stub"
)

func NewProvider(cfg config.Config, zaplog *zap.Logger) (Provider, error) {
	switch cfg.PaymentProvider {
	case "cryptocloud":
		return cryptocloud.New(cryptocloud.Options{
			BaseURL:     cfg.CryptoCloudAPIURL,
			APIKey:      cfg.CryptoCloudAPIKey,
			ShopID:      cfg.CryptoCloudShopID,
			Secret:      cfg.CryptoCloudSecret,
			CallbackURL: cfg.WebhookURL(),
		}, zaplog), nil
	case "stub":
		return stub.New(cfg.BasePublicURL), nil
	default:
		return nil, fmt.Errorf("unknown payment provider: %s", cfg.PaymentProvider)
	}
}
