package notify

import (
	"context"
	"fmt"
	"time"

	drepo "GoldPulse/internal/domain/repository"
	xhttp "GoldPulse/pkg/http"
	applogger "GoldPulse/pkg/logger"
)

// markdownPayload is the message envelope the webhook endpoints accept.
type markdownPayload struct {
	MsgType  string          `json:"msgtype"`
	Markdown markdownContent `json:"markdown"`
}

type markdownContent struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// WebhookNotifier posts markdown reports to a set of webhook URLs.
// A failed endpoint is logged and counted but never aborts the others.
type WebhookNotifier struct {
	urls    []string
	client  *xhttp.Client
	logger  *applogger.Logger
	metrics drepo.Metrics
}

// NewWebhookNotifier creates a notifier for the given endpoints.
func NewWebhookNotifier(urls []string, timeout time.Duration, l *applogger.Logger, m drepo.Metrics) *WebhookNotifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WebhookNotifier{
		urls:    urls,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
		logger:  l,
		metrics: m,
	}
}

// Send delivers the report to every configured endpoint. It returns an
// error only when every delivery failed.
func (n *WebhookNotifier) Send(ctx context.Context, title, markdown string) error {
	if len(n.urls) == 0 {
		return nil
	}

	payload := markdownPayload{
		MsgType:  "markdown",
		Markdown: markdownContent{Title: title, Text: markdown},
	}

	var delivered int
	for i, url := range n.urls {
		err := n.client.PostJSON(ctx, url, payload, nil, nil)
		if err != nil {
			if n.logger != nil {
				n.logger.Warn("webhook delivery failed",
					applogger.Int("endpoint", i),
					applogger.Error(err),
				)
			}
			if n.metrics != nil {
				n.metrics.RecordNotification("failed")
			}
			continue
		}
		delivered++
		if n.metrics != nil {
			n.metrics.RecordNotification("delivered")
		}
	}

	if delivered == 0 {
		return fmt.Errorf("all %d webhook deliveries failed", len(n.urls))
	}
	return nil
}
