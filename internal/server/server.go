package server

import (
	"io"
	"net/http"

	"go.uber.org/zap"

	"tipster-bot/internal/config"
	"tipster-bot/internal/fulfillment"
	"tipster-bot/internal/invoices"
	"tipster-bot/internal/logger"
	"tipster-bot/internal/payments"
)

func New(cfg config.Config, pay payments.Provider, book *invoices.Book, worker *fulfillment.Worker, zaplog *zap.Logger) *http.Server {
	mux := http.NewServeMux()

	// Payment-processor webhook. Always acknowledged with 200 so the
	// processor never retries notifications we cannot act on.
	mux.HandleFunc("/cryptocloud/webhook", logger.RequestLogMdlw(func(w http.ResponseWriter, r *http.Request) {
		defer ack(w)

		body, _ := io.ReadAll(r.Body)
		invoiceID, status, err := pay.ParseWebhook(body)
		if err != nil {
			zaplog.Warn("webhook: malformed payload", zap.Error(err))
			return
		}
		if status != payments.StatusPaid || invoiceID == "" {
			return
		}

		chatID, ok := book.Take(invoiceID)
		if !ok {
			zaplog.Warn("webhook: unknown invoice", zap.String("invoice_id", invoiceID))
			return
		}
		if !worker.Enqueue(chatID) {
			zaplog.Error("webhook: fulfillment queue full",
				zap.String("invoice_id", invoiceID),
				zap.Int64("chat_id", chatID),
			)
		}
	}, zaplog))

	// Stub payment page (for testing without the real processor).
	mux.HandleFunc("/pay/stub", func(w http.ResponseWriter, r *http.Request) {
		invoice := r.URL.Query().Get("invoice")
		if invoice == "" {
			http.Error(w, "invoice required", http.StatusBadRequest)
			return
		}
		html := `<!doctype html><html><head><meta charset="utf-8"><title>Stub Pay</title></head><body>
<h2>Оплата (тестовый провайдер)</h2>
<p>Invoice: ` + invoice + `</p>
<button onclick="send('paid')">Оплатить (paid)</button>
<button onclick="send('cancelled')">Отменить (cancelled)</button>
<pre id="out"></pre>
<script>
async function send(status){
  const body = JSON.stringify({invoice_id: "` + invoice + `", status});
  const res = await fetch("/cryptocloud/webhook", {method:"POST", headers: {"Content-Type":"application/json"}, body});
  document.getElementById("out").textContent = await res.text();
}
</script>
</body></html>`
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(html))
	})

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: mux,
	}
}

func ack(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"ok": true}`))
}
