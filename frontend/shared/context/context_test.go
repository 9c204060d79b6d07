package context

import (
	"context"
	"testing"
)

type fakeSession struct{ name string }

func TestViewSessionRoundTrip(t *testing.T) {
	ctx := NewContextWithViewSession(context.Background(), &fakeSession{name: "a"})
	got, ok := GetViewSessionFromContext[*fakeSession](ctx)
	if !ok || got.name != "a" {
		t.Fatalf("expected stored session, got %+v %v", got, ok)
	}
	if _, ok := GetViewSessionFromContext[string](ctx); ok {
		t.Fatalf("expected type mismatch to miss")
	}
}
