package fulfillment

import (
	"context"

	"go.uber.org/zap"
)

// ProductMessage is the content delivered after a confirmed payment.
const ProductMessage = "✅ *Apmokėjimas gautas!*\n\n" +
	"Tavo šiandienos statymas:\n" +
	"📈 Komanda A – Komanda B | Statymas: Over 2.5 Goals\n\n" +
	"Sėkmės! 🍀"

type Notifier interface {
	SendMarkdown(chatID int64, text string) error
}

// Worker delivers the product message to paying users. The webhook handler
// enqueues chat ids; a single goroutine drains the queue, so Telegram I/O
// never runs on the HTTP-serving goroutine.
type Worker struct {
	queue    chan int64
	notifier Notifier
	zaplog   *zap.Logger
}

func NewWorker(queueSize int, notifier Notifier, zaplog *zap.Logger) *Worker {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &Worker{
		queue:    make(chan int64, queueSize),
		notifier: notifier,
		zaplog:   zaplog,
	}
}

// Enqueue schedules delivery without blocking. Returns false when the queue
// is full; the caller logs and acknowledges anyway.
func (w *Worker) Enqueue(chatID int64) bool {
	select {
	case w.queue <- chatID:
		return true
	default:
		return false
	}
}

func (w *Worker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case chatID := <-w.queue:
			if err := w.notifier.SendMarkdown(chatID, ProductMessage); err != nil {
				// No retry: delivery failures are logged and dropped.
				w.zaplog.Error("deliver product", zap.Int64("chat_id", chatID), zap.Error(err))
				continue
			}
			w.zaplog.Info("product delivered", zap.Int64("chat_id", chatID))
		}
	}
}
