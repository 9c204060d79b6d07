package html

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"warehouse/frontend/shared/nav"
)

func TestLayoutEscapesAndWrapsBody(t *testing.T) {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<p>inner</p>")
		return err
	})

	var sb strings.Builder
	if err := Layout("A <b> title", nav.BuildTopNavData("/products"), body).Render(context.Background(), &sb); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, "<title>A &lt;b&gt; title</title>") {
		t.Fatalf("expected escaped title, got %s", out)
	}
	if !strings.Contains(out, "<p>inner</p>") {
		t.Fatalf("expected body in output")
	}
	if !strings.Contains(out, `href="/products" class="active"`) {
		t.Fatalf("expected active products link, got %s", out)
	}
	if !strings.Contains(out, `readCookie("X-CSRF-Token")`) {
		t.Fatalf("expected csrf script")
	}
}
