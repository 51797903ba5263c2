package cryptocloud

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestProvider(srvURL string) *Provider {
	return New(Options{
		BaseURL:     srvURL,
		APIKey:      "test-key",
		ShopID:      "shop-1",
		Secret:      "s3cret",
		CallbackURL: "https://bot.example/cryptocloud/webhook",
	}, zap.NewNop())
}

func TestCreateInvoice(t *testing.T) {
	var got createRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v3/invoice-create", r.URL.Path)
		require.Equal(t, "Token test-key", r.Header.Get("Authorization"))
		require.Equal(t, "s3cret", r.Header.Get("X-Secret"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result": {"id": "abc123", "url": "https://pay.example/abc123"}}`))
	}))
	defer srv.Close()

	p := newTestProvider(srv.URL)
	payURL, invoiceID, err := p.CreateInvoice(context.Background(), 10.0, "🥇 Auksinis planas")
	require.NoError(t, err)
	require.Equal(t, "https://pay.example/abc123", payURL)
	require.Equal(t, "abc123", invoiceID)

	require.Equal(t, "shop-1", got.ShopID)
	require.Equal(t, "10", got.Amount)
	require.Equal(t, "USDT", got.Currency)
	require.Equal(t, "🥇 Auksinis planas", got.Description)
	require.Equal(t, 1800, got.Lifetime)
	require.Equal(t, "https://bot.example/cryptocloud/webhook", got.CallbackURL)
	require.NotEmpty(t, got.OrderID)
}

func TestCreateInvoiceFreshOrderID(t *testing.T) {
	var orderIDs []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req createRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		orderIDs = append(orderIDs, req.OrderID)
		_, _ = w.Write([]byte(`{"result": {"id": "x", "url": "https://pay.example/x"}}`))
	}))
	defer srv.Close()

	p := newTestProvider(srv.URL)
	for i := 0; i < 2; i++ {
		_, _, err := p.CreateInvoice(context.Background(), 3.0, "test")
		require.NoError(t, err)
	}
	require.Len(t, orderIDs, 2)
	require.NotEqual(t, orderIDs[0], orderIDs[1])
}

func TestCreateInvoiceNumericID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result": {"invoice_id": 98765, "url": "https://pay.example/98765"}}`))
	}))
	defer srv.Close()

	p := newTestProvider(srv.URL)
	_, invoiceID, err := p.CreateInvoice(context.Background(), 6.0, "test")
	require.NoError(t, err)
	require.Equal(t, "98765", invoiceID)
}

func TestCreateInvoiceHTTPErrors(t *testing.T) {
	tests := []struct {
		name    string
		code    int
		wantErr error
	}{
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized},
		{"forbidden", http.StatusForbidden, ErrForbidden},
		{"not found", http.StatusNotFound, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
			}))
			defer srv.Close()

			p := newTestProvider(srv.URL)
			_, _, err := p.CreateInvoice(context.Background(), 10.0, "test")
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateInvoiceServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := newTestProvider(srv.URL)
	_, _, err := p.CreateInvoice(context.Background(), 10.0, "test")
	require.Error(t, err)
}

func TestCreateInvoiceTimeout(t *testing.T) {
	done := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// hold the connection open until the client gives up
		<-done
	}))
	defer srv.Close()
	defer close(done)

	p := newTestProvider(srv.URL)
	p.client.SetTimeout(100 * time.Millisecond)

	_, _, err := p.CreateInvoice(context.Background(), 10.0, "test")
	require.Error(t, err)
}

func TestCreateInvoiceUnreachableHost(t *testing.T) {
	p := newTestProvider("http://127.0.0.1:1")

	_, _, err := p.CreateInvoice(context.Background(), 10.0, "test")
	require.Error(t, err)
}

func TestCreateInvoiceMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	p := newTestProvider(srv.URL)
	_, _, err := p.CreateInvoice(context.Background(), 10.0, "test")
	require.Error(t, err)
}

func TestCreateInvoiceMissingURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result": {"id": "abc123"}}`))
	}))
	defer srv.Close()

	p := newTestProvider(srv.URL)
	_, _, err := p.CreateInvoice(context.Background(), 10.0, "test")
	require.ErrorIs(t, err, ErrBadResponse)
}

func TestParseWebhook(t *testing.T) {
	p := newTestProvider("https://api.example")

	invoiceID, status, err := p.ParseWebhook([]byte(`{"status": "paid", "invoice_id": "abc123"}`))
	require.NoError(t, err)
	require.Equal(t, "abc123", invoiceID)
	require.Equal(t, "paid", status)
}

func TestParseWebhookIDFallback(t *testing.T) {
	p := newTestProvider("https://api.example")

	invoiceID, status, err := p.ParseWebhook([]byte(`{"status": "created", "id": 555}`))
	require.NoError(t, err)
	require.Equal(t, "555", invoiceID)
	require.Equal(t, "created", status)
}

func TestParseWebhookMalformed(t *testing.T) {
	p := newTestProvider("https://api.example")

	_, _, err := p.ParseWebhook([]byte(`{`))
	require.Error(t, err)
}
