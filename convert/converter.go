// Package convert implements the markup to block-tree conversion engine: it
// walks parsed note markup, classifies every element, reconstructs nesting
// the source only implies through indentation cues, and emits an ordered
// forest of typed blocks with resolved rich text runs and resource
// references.
package convert

import (
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/danielegts/enex2notion/enex"
	"github.com/danielegts/enex2notion/notion"
)

// Options controls per-note conversion behavior.
type Options struct {
	// AddMeta prepends a callout block with note metadata to the forest.
	AddMeta bool
	// RasterizeSVG converts inline SVG payloads to PNG bitmaps.
	RasterizeSVG bool
	// MaxRasterDim clamps the larger dimension of rasterized SVGs.
	MaxRasterDim int
}

// Converter drives conversion of a single note. All state is local to one
// traversal, notes may be converted in parallel with one Converter each.
type Converter struct {
	res   enex.ResourceSet
	links *LinkResolver
	opts  Options
	log   *zap.Logger
}

// NewConverter creates a converter for one note. links may be nil, internal
// note links then keep their original values.
func NewConverter(note *enex.Note, links *LinkResolver, opts Options, log *zap.Logger) *Converter {
	return &Converter{
		res:   note.ResourceSet(),
		links: links,
		opts:  opts,
		log:   log,
	}
}

// ParseNote converts a note body into an ordered block forest. A note whose
// markup cannot be parsed at all yields a nil forest and an error level log,
// nothing raises past this boundary.
func ParseNote(note *enex.Note, links *LinkResolver, opts Options, log *zap.Logger) []*notion.Block {
	c := NewConverter(note, links, opts, log)

	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		ValidateInput: false,
		Permissive:    true,
	}
	if err := doc.ReadFromString(note.Content); err != nil {
		log.Error("Failed to extract note content", zap.String("title", note.Title), zap.Error(err))
		return nil
	}
	root := doc.Root()
	if root == nil || root.Tag != "en-note" {
		log.Error("Failed to extract note content", zap.String("title", note.Title))
		return nil
	}

	forest := c.convertChildren(root)
	if forest == nil {
		// distinguishes an empty note from a failed one
		forest = []*notion.Block{}
	}

	if opts.AddMeta {
		forest = append([]*notion.Block{metaBlock(note)}, forest...)
	}
	return forest
}

// convertChildren dispatches the element's children and rebuilds their
// indentation hierarchy. Used both at the note root and inside flattened
// wrapper elements, nesting cues apply uniformly at every level.
func (c *Converter) convertChildren(el *etree.Element) []*notion.Block {
	cur := newIndentCursor()
	for _, item := range el.Child {
		for _, ib := range c.dispatch(item) {
			cur.place(ib)
		}
	}
	return cur.forest()
}

// metaBlock builds the note metadata callout: created, updated, URL and tags
// each on their own line, in that order. The URL line is omitted when the
// note has no source URL.
func metaBlock(note *enex.Note) *notion.Block {
	lines := []string{
		"Created: " + note.Created.Format("2006-01-02 15:04:05"),
		"Updated: " + note.Updated.Format("2006-01-02 15:04:05"),
	}
	if note.SourceURL != "" {
		lines = append(lines, "URL: "+note.SourceURL)
	}
	lines = append(lines, "Tags: "+strings.Join(note.Tags, ", "))
	return notion.NewCalloutBlock("ℹ️", strings.Join(lines, "\n"))
}
