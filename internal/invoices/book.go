package invoices

import "sync"

// Book maps processor invoice ids to the Telegram chat that requested them.
// Written by the invoice-creation path, read by the webhook path, so every
// access goes through the mutex.
type Book struct {
	mu      sync.Mutex
	byInvID map[string]int64
}

func NewBook() *Book {
	return &Book{byInvID: map[string]int64{}}
}

func (b *Book) Put(invoiceID string, chatID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.byInvID[invoiceID] = chatID
}

// Take resolves an invoice to its chat and removes the entry. An invoice is
// resolvable until its first successful lookup; a second paid notification
// for the same id behaves like an unknown id.
func (b *Book) Take(invoiceID string) (int64, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	chatID, ok := b.byInvID[invoiceID]
	if ok {
		delete(b.byInvID, invoiceID)
	}
	return chatID, ok
}

func (b *Book) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.byInvID)
}
