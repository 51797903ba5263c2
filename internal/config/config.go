package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	TelegramToken string

	PaymentProvider   string
	CryptoCloudAPIKey string
	CryptoCloudShopID string
	CryptoCloudSecret string
	CryptoCloudAPIURL string

	SpreadsheetID            string
	GoogleServiceAccountJSON string

	HTTPAddr      string
	BasePublicURL string
	LogLevel      string
}

func FromEnv() (Config, error) {
	var c Config
	c.TelegramToken = strings.TrimSpace(os.Getenv("BOT_TOKEN"))
	c.CryptoCloudAPIKey = strings.TrimSpace(os.Getenv("CRYPTOCLOUD_API_KEY"))
	c.CryptoCloudShopID = strings.TrimSpace(os.Getenv("SHOP_ID"))
	c.CryptoCloudSecret = strings.TrimSpace(os.Getenv("CRYPTOCLOUD_SECRET"))

	c.CryptoCloudAPIURL = strings.TrimRight(strings.TrimSpace(os.Getenv("CRYPTOCLOUD_API_URL")), "/")
	if c.CryptoCloudAPIURL == "" {
		c.CryptoCloudAPIURL = "https://api.cryptocloud.plus"
	}

	c.PaymentProvider = strings.TrimSpace(os.Getenv("PAYMENT_PROVIDER"))
	if c.PaymentProvider == "" {
		c.PaymentProvider = "cryptocloud"
	}

	c.SpreadsheetID = strings.TrimSpace(os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID"))
	c.GoogleServiceAccountJSON = strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))

	c.HTTPAddr = parsePort(os.Getenv("PORT"))
	c.BasePublicURL = strings.TrimRight(strings.TrimSpace(os.Getenv("BASE_URL")), "/")

	c.LogLevel = strings.TrimSpace(os.Getenv("LOG_LEVEL"))
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	if c.TelegramToken == "" {
		return c, fmt.Errorf("BOT_TOKEN is empty")
	}
	if c.CryptoCloudAPIKey == "" {
		return c, fmt.Errorf("CRYPTOCLOUD_API_KEY is empty")
	}
	if c.BasePublicURL == "" {
		return c, fmt.Errorf("BASE_URL is empty")
	}

	return c, nil
}

// WebhookURL is the callback URL handed to the payment processor.
func (c Config) WebhookURL() string {
	return c.BasePublicURL + "/cryptocloud/webhook"
}

func parsePort(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ":8080"
	}
	if p, err := strconv.Atoi(raw); err == nil {
		return ":" + strconv.Itoa(p)
	}
	return raw
}
