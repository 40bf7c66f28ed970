package observability

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// recorder captures pipeline and cache events as short strings.
type recorder struct {
	NoopPipelineHooks
	NoopCacheHooks

	mu     sync.Mutex
	events []string
}

func (r *recorder) add(e string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) OnAnalyzeComplete(_ context.Context, provider string, _ time.Duration, err error) {
	if err != nil {
		r.add("analyze-failed:" + provider)
		return
	}
	r.add("analyze:" + provider)
}

func (r *recorder) OnCacheHit(_ context.Context, keyType string) { r.add("hit:" + keyType) }

func TestDefaultsAreNoops(t *testing.T) {
	Reset()
	ctx := context.Background()

	Pipeline().OnAnalyzeStart(ctx, "anthropic")
	Pipeline().OnAnalyzeComplete(ctx, "anthropic", time.Second, errors.New("boom"))
	Pipeline().OnRenderStart(ctx, "centered-impact", "png")
	Pipeline().OnRenderComplete(ctx, "centered-impact", "png", 1024, time.Second, nil)
	Cache().OnCacheHit(ctx, "analysis")
	Cache().OnCacheMiss(ctx, "artifact")
	Cache().OnCacheSet(ctx, "artifact", 1024)
	HTTP().OnRequest(ctx, "POST", "api.anthropic.com", "/v1/messages")
	HTTP().OnResponse(ctx, "POST", "api.anthropic.com", "/v1/messages", 200, time.Second)
	HTTP().OnError(ctx, "POST", "api.anthropic.com", "/v1/messages", nil)

	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Errorf("HTTP() = %T, want NoopHTTPHooks", HTTP())
	}
}

func TestRegisteredHooksReceiveEvents(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	rec := &recorder{}
	SetPipelineHooks(rec)
	SetCacheHooks(rec)

	ctx := context.Background()
	Pipeline().OnAnalyzeStart(ctx, "proxy")
	Pipeline().OnAnalyzeComplete(ctx, "proxy", time.Millisecond, nil)
	Pipeline().OnAnalyzeComplete(ctx, "openai", time.Millisecond, errors.New("401"))
	Cache().OnCacheHit(ctx, "artifact")
	Cache().OnCacheMiss(ctx, "artifact")

	want := []string{"analyze:proxy", "analyze-failed:openai", "hit:artifact"}
	if len(rec.events) != len(want) {
		t.Fatalf("events = %v, want %v", rec.events, want)
	}
	for i := range want {
		if rec.events[i] != want[i] {
			t.Errorf("events[%d] = %q, want %q", i, rec.events[i], want[i])
		}
	}

	Reset()
	Cache().OnCacheHit(ctx, "analysis")
	if len(rec.events) != len(want) {
		t.Error("Reset should detach the recorder")
	}
}

func TestSetNilIsIgnored(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	rec := &recorder{}
	SetPipelineHooks(rec)
	SetPipelineHooks(nil)
	SetHTTPHooks(nil)

	if Pipeline() != rec {
		t.Errorf("Pipeline() = %T after SetPipelineHooks(nil)", Pipeline())
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Errorf("HTTP() = %T after SetHTTPHooks(nil)", HTTP())
	}
}
