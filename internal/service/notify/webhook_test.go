package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type recordingMetrics struct {
	notifications map[string]int
}

func (m *recordingMetrics) RecordRun(string, string)            {}
func (m *recordingMetrics) RecordError(string)                  {}
func (m *recordingMetrics) RecordLastPrice(string, float64)     {}
func (m *recordingMetrics) RecordScore(string, string, float64) {}
func (m *recordingMetrics) RecordLatency(string, float64)       {}
func (m *recordingMetrics) RecordNotification(result string) {
	if m.notifications == nil {
		m.notifications = map[string]int{}
	}
	m.notifications[result]++
}

func TestSendDeliversPayload(t *testing.T) {
	var got markdownPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := &recordingMetrics{}
	n := NewWebhookNotifier([]string{srv.URL}, 5*time.Second, nil, m)
	if err := n.Send(context.Background(), "daily gold report", "## gld\nbuy"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	if got.MsgType != "markdown" {
		t.Fatalf("msgtype = %q", got.MsgType)
	}
	if got.Markdown.Title != "daily gold report" || got.Markdown.Text != "## gld\nbuy" {
		t.Fatalf("unexpected content: %+v", got.Markdown)
	}
	if m.notifications["delivered"] != 1 {
		t.Fatalf("delivered count = %d", m.notifications["delivered"])
	}
}

func TestSendSurvivesPartialFailure(t *testing.T) {
	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ok.Close()
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer bad.Close()

	m := &recordingMetrics{}
	n := NewWebhookNotifier([]string{bad.URL, ok.URL}, 5*time.Second, nil, m)
	if err := n.Send(context.Background(), "title", "text"); err != nil {
		t.Fatalf("Send should succeed when one endpoint works: %v", err)
	}
	if m.notifications["failed"] != 1 || m.notifications["delivered"] != 1 {
		t.Fatalf("notification counts = %v", m.notifications)
	}
}

func TestSendAllEndpointsDown(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer bad.Close()

	n := NewWebhookNotifier([]string{bad.URL}, 5*time.Second, nil, nil)
	if err := n.Send(context.Background(), "title", "text"); err == nil {
		t.Fatalf("expected error when every delivery fails")
	}
}

func TestSendNoEndpoints(t *testing.T) {
	n := NewWebhookNotifier(nil, 0, nil, nil)
	if err := n.Send(context.Background(), "title", "text"); err != nil {
		t.Fatalf("no endpoints should be a no-op: %v", err)
	}
}
