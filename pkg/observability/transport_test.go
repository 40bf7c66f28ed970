package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

type recordingHTTPHooks struct {
	NoopHTTPHooks
	mu     sync.Mutex
	events []string
	status int
}

func (h *recordingHTTPHooks) OnRequest(_ context.Context, method, _, path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, "request "+method+" "+path)
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, "response")
	h.status = status
}

func (h *recordingHTTPHooks) OnError(context.Context, string, string, string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, "error")
}

func TestTransportReportsToHooks(t *testing.T) {
	Reset()
	defer Reset()
	hooks := &recordingHTTPHooks{}
	SetHTTPHooks(hooks)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	client := &http.Client{Transport: Transport(nil)}
	resp, err := client.Post(srv.URL+"/v1/messages", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if len(hooks.events) != 2 || hooks.events[0] != "request POST /v1/messages" || hooks.events[1] != "response" {
		t.Errorf("events = %q", hooks.events)
	}
	if hooks.status != http.StatusTeapot {
		t.Errorf("status = %d, want 418", hooks.status)
	}
}

func TestTransportReportsErrors(t *testing.T) {
	Reset()
	defer Reset()
	hooks := &recordingHTTPHooks{}
	SetHTTPHooks(hooks)

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := &http.Client{Transport: Transport(nil)}
	if _, err := client.Get(url); err == nil {
		t.Fatal("expected connection error")
	}
	if len(hooks.events) != 2 || hooks.events[1] != "error" {
		t.Errorf("events = %q", hooks.events)
	}
}
