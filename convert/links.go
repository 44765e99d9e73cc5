package convert

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/danielegts/enex2notion/notion"
)

// LinkResolver rewrites internal note links (evernote:// scheme) to
// destination page URLs. The titles table maps internal note URLs to note
// titles and is read-only for the resolver's lifetime, a single resolver may
// serve parallel note conversions.
type LinkResolver struct {
	ctx      context.Context
	titles   map[string]string
	searcher notion.Searcher
	log      *zap.Logger
}

// NewLinkResolver creates a resolver. ctx bounds the external search calls
// issued while resolving and should cover the whole conversion batch.
func NewLinkResolver(ctx context.Context, titles map[string]string, searcher notion.Searcher, log *zap.Logger) *LinkResolver {
	return &LinkResolver{ctx: ctx, titles: titles, searcher: searcher, log: log}
}

// LoadLinksDict reads an internal-URL to title mapping from a JSON file.
func LoadLinksDict(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read links dictionary: %w", err)
	}
	var titles map[string]string
	if err := json.Unmarshal(data, &titles); err != nil {
		return nil, fmt.Errorf("unable to parse links dictionary: %w", err)
	}
	return titles, nil
}

// Resolve maps an href to its destination URL. External URLs pass through
// unchanged. Internal links resolve via title lookup and page search, any
// failure along the way logs an error and falls back to the original href so
// a run is always produced.
func (r *LinkResolver) Resolve(href string) string {
	if !strings.Contains(href, "evernote://") {
		return href
	}
	if r.searcher == nil {
		return href
	}

	title, err := r.lookupTitle(href)
	if err != nil {
		r.log.Error("Notion URL retrieval failed", zap.String("url", href), zap.Error(err))
		return href
	}

	url, err := r.searcher.PageURL(r.ctx, html.UnescapeString(title))
	if err != nil {
		r.log.Error("Notion URL retrieval failed", zap.String("url", href), zap.String("title", title), zap.Error(err))
		return href
	}
	return url
}

// lookupTitle finds the note title for an internal link: exact key match
// first, then a case-insensitive substring search of the note id against the
// table keys. The substring fallback takes the first match in map iteration
// order, ambiguous ids are not tie-broken.
func (r *LinkResolver) lookupTitle(href string) (string, error) {
	if title, ok := r.titles[href]; ok {
		return title, nil
	}

	parts := strings.Split(href, "/")
	if len(parts) < 2 {
		return "", errors.New("malformed internal link")
	}
	id := strings.ToLower(parts[len(parts)-2])

	for key, title := range r.titles {
		if strings.Contains(strings.ToLower(key), id) {
			return title, nil
		}
	}
	return "", fmt.Errorf("no title mapping for note id %q", id)
}
