// Package notify dispatches push notifications to the external delivery
// service.
//
// Dispatch is strictly best-effort: a claim review or event registration
// must never fail, roll back, or retry because a notification could not be
// delivered. Failures are logged and dropped.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Message is one push notification to one recipient.
type Message struct {
	RecipientID string `json:"recipient_id"`
	Title       string `json:"title"`
	Body        string `json:"body"`
}

// Ticket is the delivery service's per-message receipt. Status is whatever
// the service reports; "ok" on acceptance.
type Ticket struct {
	ID          string `json:"id"`
	RecipientID string `json:"recipient_id"`
	Status      string `json:"status"`
	Error       string `json:"error,omitempty"`
}

// Dispatcher sends a batch of messages and returns per-message tickets.
// Implementations must not panic and should tolerate partial failure.
type Dispatcher interface {
	Send(ctx context.Context, msgs []Message) ([]Ticket, error)
}

/*─────────────────────────────────────────────────────────────────────────────*
 | HTTP dispatcher                                                             |
 *─────────────────────────────────────────────────────────────────────────────*/

// HTTPDispatcher posts message batches to the push service's /batch endpoint.
type HTTPDispatcher struct {
	url    string
	client *http.Client
	log    *zap.Logger
}

// NewHTTPDispatcher builds a dispatcher for the given push service URL.
func NewHTTPDispatcher(url string, timeout time.Duration, logger *zap.Logger) *HTTPDispatcher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPDispatcher{
		url:    url,
		client: &http.Client{Timeout: timeout},
		log:    logger,
	}
}

type batchRequest struct {
	BatchID  string    `json:"batch_id"`
	Messages []Message `json:"messages"`
}

type batchResponse struct {
	Tickets []Ticket `json:"tickets"`
}

// Send posts the batch. A non-2xx response or transport error is returned
// to the caller, which logs and drops it; nothing downstream depends on the
// result.
func (d *HTTPDispatcher) Send(ctx context.Context, msgs []Message) ([]Ticket, error) {
	if len(msgs) == 0 {
		return nil, nil
	}

	payload := batchRequest{
		BatchID:  uuid.NewString(),
		Messages: msgs,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal push batch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post push batch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("push service returned %d", resp.StatusCode)
	}

	var out batchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode push response: %w", err)
	}

	// Individual delivery failures are the service's to swallow; we only
	// surface them in the log.
	for _, tk := range out.Tickets {
		if tk.Error != "" {
			d.log.Warn("push delivery failed",
				zap.String("ticket_id", tk.ID),
				zap.String("recipient_id", tk.RecipientID),
				zap.String("error", tk.Error))
		}
	}
	return out.Tickets, nil
}

/*─────────────────────────────────────────────────────────────────────────────*
 | Nop dispatcher                                                              |
 *─────────────────────────────────────────────────────────────────────────────*/

// NopDispatcher accepts every message and issues synthetic tickets.
// Used when no push_url is configured and in tests.
type NopDispatcher struct{}

func (NopDispatcher) Send(_ context.Context, msgs []Message) ([]Ticket, error) {
	tickets := make([]Ticket, 0, len(msgs))
	for _, m := range msgs {
		tickets = append(tickets, Ticket{
			ID:          uuid.NewString(),
			RecipientID: m.RecipientID,
			Status:      "ok",
		})
	}
	return tickets, nil
}

/*─────────────────────────────────────────────────────────────────────────────*
 | Fire-and-forget helper                                                      |
 *─────────────────────────────────────────────────────────────────────────────*/

// SendAsync dispatches msgs on a background goroutine, detached from the
// request context so an already-answered request cannot cancel delivery.
// Errors are logged, never returned.
func SendAsync(d Dispatcher, logger *zap.Logger, timeout time.Duration, msgs []Message) {
	if d == nil || len(msgs) == 0 {
		return
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if _, err := d.Send(ctx, msgs); err != nil {
			logger.Warn("push dispatch failed", zap.Int("messages", len(msgs)), zap.Error(err))
		}
	}()
}
