package postgres

import (
	"context"
	"testing"
	"time"
)

func TestShortenFuncName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"github.com/linnemanlabs/quicktriage/internal/triage/pgstore.(*Store).Put", "(*Store).Put"},
		{"github.com/linnemanlabs/quicktriage/internal/triage.(*Service).Submit", "(*Service).Submit"},
		{"main.run", "run"},
		{"noslash", "noslash"},
	}

	for _, tt := range tests {
		if got := shortenFuncName(tt.in); got != tt.want {
			t.Errorf("shortenFuncName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWithHTTPMethod(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	if got := httpMethodFromContext(ctx); got != "" {
		t.Errorf("method from empty ctx = %q, want empty", got)
	}

	ctx = WithHTTPMethod(ctx, "POST")
	if got := httpMethodFromContext(ctx); got != "POST" {
		t.Errorf("method = %q, want POST", got)
	}

	// empty method leaves the context untouched
	ctx2 := WithHTTPMethod(context.Background(), "")
	if got := httpMethodFromContext(ctx2); got != "" {
		t.Errorf("method after empty set = %q, want empty", got)
	}
}

func TestQueryObserver(t *testing.T) {
	// not parallel: mutates the global observer
	t.Cleanup(func() { SetQueryObserver(nil) })

	var calls int
	SetQueryObserver(QueryObserverFunc(func(_ context.Context, method, route, outcome string, dur time.Duration) {
		calls++
		if method != "GET" || route != "/api/v1/triage/{id}" || outcome != "ok" {
			t.Errorf("observer got (%s, %s, %s)", method, route, outcome)
		}
		if dur <= 0 {
			t.Error("expected positive duration")
		}
	}))

	obs := getQueryObserver()
	if obs == nil {
		t.Fatal("observer not set")
	}
	obs.ObserveQuery(context.Background(), "GET", "/api/v1/triage/{id}", "ok", time.Millisecond)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}

	SetQueryObserver(nil)
	if getQueryObserver() != nil {
		t.Error("observer not cleared")
	}
}
