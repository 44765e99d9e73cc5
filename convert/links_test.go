package convert

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/danielegts/enex2notion/notion"
)

// fakeSearcher resolves titles from a fixed map.
type fakeSearcher struct {
	pages map[string]string
	err   error
}

func (f *fakeSearcher) PageURL(_ context.Context, title string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if url, ok := f.pages[title]; ok {
		return url, nil
	}
	return "", notion.ErrPageNotFound
}

const internalHref = "evernote:///view/92167309/s714/00ac2d45-dead-beef/00ac2d45-dead-beef/"

func newTestResolver(t *testing.T, titles map[string]string, s notion.Searcher) *LinkResolver {
	t.Helper()
	return NewLinkResolver(context.Background(), titles, s, zaptest.NewLogger(t))
}

func TestResolveExternalURLPassthrough(t *testing.T) {
	r := newTestResolver(t, nil, &fakeSearcher{})
	if got := r.Resolve("https://example.com"); got != "https://example.com" {
		t.Errorf("external url rewritten to %q", got)
	}
}

func TestResolveExactKey(t *testing.T) {
	r := newTestResolver(t,
		map[string]string{internalHref: "my note"},
		&fakeSearcher{pages: map[string]string{"my note": "https://www.notion.so/my-note"}})

	if got := r.Resolve(internalHref); got != "https://www.notion.so/my-note" {
		t.Errorf("Resolve() = %q", got)
	}
}

func TestResolveSubstringFallback(t *testing.T) {
	// key differs from the href but contains the note id
	key := "evernote:///view/1/s1/00AC2D45-DEAD-BEEF/00AC2D45-DEAD-BEEF/"
	r := newTestResolver(t,
		map[string]string{key: "fallback note"},
		&fakeSearcher{pages: map[string]string{"fallback note": "https://www.notion.so/fallback"}})

	if got := r.Resolve(internalHref); got != "https://www.notion.so/fallback" {
		t.Errorf("Resolve() = %q", got)
	}
}

func TestResolveUnescapesTitle(t *testing.T) {
	r := newTestResolver(t,
		map[string]string{internalHref: "a &amp; b"},
		&fakeSearcher{pages: map[string]string{"a & b": "https://www.notion.so/ab"}})

	if got := r.Resolve(internalHref); got != "https://www.notion.so/ab" {
		t.Errorf("Resolve() = %q", got)
	}
}

func TestResolveFailureFallsBack(t *testing.T) {
	log, logs := observedLogger()

	r := NewLinkResolver(context.Background(),
		map[string]string{internalHref: "my note"},
		&fakeSearcher{err: errors.New("boom")}, log)

	if got := r.Resolve(internalHref); got != internalHref {
		t.Errorf("failed resolution must keep the original href, got %q", got)
	}
	if !hasLogEntry(logs, "Notion URL retrieval failed") {
		t.Error("expected retrieval failure log")
	}
}

func TestResolveMissingMappingFallsBack(t *testing.T) {
	log, logs := observedLogger()

	r := NewLinkResolver(context.Background(), map[string]string{}, &fakeSearcher{}, log)

	if got := r.Resolve(internalHref); got != internalHref {
		t.Errorf("missing mapping must keep the original href, got %q", got)
	}
	if !hasLogEntry(logs, "Notion URL retrieval failed") {
		t.Error("expected retrieval failure log")
	}
}

func TestResolveWithoutSearcher(t *testing.T) {
	r := newTestResolver(t, map[string]string{internalHref: "my note"}, nil)
	if got := r.Resolve(internalHref); got != internalHref {
		t.Errorf("resolver without search capability must keep hrefs, got %q", got)
	}
}
