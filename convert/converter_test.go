package convert

import (
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/danielegts/enex2notion/enex"
	"github.com/danielegts/enex2notion/notion"
)

func testNote(body string, resources ...*enex.Resource) *enex.Note {
	return &enex.Note{
		Title:     "test",
		Content:   `<?xml version="1.0" encoding="UTF-8"?><en-note>` + body + `</en-note>`,
		Resources: resources,
	}
}

func parseBody(t *testing.T, body string, resources ...*enex.Resource) []*notion.Block {
	t.Helper()
	log := zaptest.NewLogger(t)
	return ParseNote(testNote(body, resources...), nil, Options{}, log)
}

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return zap.New(core), logs
}

func hasLogEntry(logs *observer.ObservedLogs, substr string) bool {
	for _, entry := range logs.All() {
		if strings.Contains(entry.Message, substr) {
			return true
		}
	}
	return false
}

func TestParseNoteSimpleText(t *testing.T) {
	forest := parseBody(t, `<div>hello</div>`)

	if len(forest) != 1 {
		t.Fatalf("expected 1 block, got %d", len(forest))
	}
	if forest[0].Type != notion.BlockText || forest[0].AsPlainText() != "hello" {
		t.Errorf("unexpected block: %+v", forest[0])
	}
}

func TestParseNoteEmpty(t *testing.T) {
	forest := parseBody(t, ``)
	if forest == nil {
		t.Fatal("empty note must yield an empty forest, not a failed one")
	}
	if len(forest) != 0 {
		t.Fatalf("expected no blocks, got %d", len(forest))
	}
}

func TestParseNoteMalformed(t *testing.T) {
	log, logs := observedLogger()

	note := &enex.Note{Title: "broken", Content: "<<< not markup"}
	forest := ParseNote(note, nil, Options{}, log)

	if forest != nil {
		t.Fatalf("expected nil forest, got %d blocks", len(forest))
	}
	if !hasLogEntry(logs, "Failed to extract note content") {
		t.Error("expected extraction failure log")
	}
}

func TestParseNoteMeta(t *testing.T) {
	log := zaptest.NewLogger(t)

	note := testNote(`<div>body</div>`)
	note.Created = time.Date(2021, 11, 18, 0, 0, 0, 0, time.UTC)
	note.Updated = time.Date(2021, 11, 19, 10, 30, 0, 0, time.UTC)
	note.SourceURL = "https://example.com"
	note.Tags = []string{"tag1", "tag2"}

	forest := ParseNote(note, nil, Options{AddMeta: true}, log)
	if len(forest) != 2 {
		t.Fatalf("expected meta + body, got %d blocks", len(forest))
	}

	meta := forest[0]
	if meta.Type != notion.BlockCallout || meta.Icon != "ℹ️" {
		t.Fatalf("unexpected meta block: %+v", meta)
	}
	want := "Created: 2021-11-18 00:00:00\n" +
		"Updated: 2021-11-19 10:30:00\n" +
		"URL: https://example.com\n" +
		"Tags: tag1, tag2"
	if got := meta.AsPlainText(); got != want {
		t.Errorf("meta content mismatch:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestParseNoteMetaWithoutURL(t *testing.T) {
	log := zaptest.NewLogger(t)

	note := testNote(`<div>body</div>`)
	note.Tags = []string{"tag"}

	forest := ParseNote(note, nil, Options{AddMeta: true}, log)
	if len(forest) != 2 {
		t.Fatalf("expected meta + body, got %d blocks", len(forest))
	}
	if strings.Contains(forest[0].AsPlainText(), "URL:") {
		t.Error("URL line must be omitted when the note has no source URL")
	}
	if !strings.Contains(forest[0].AsPlainText(), "Tags: tag") {
		t.Error("tags line missing")
	}
}

func TestWrapperFlatteningWithStrings(t *testing.T) {
	forest := parseBody(t, `<div><div>paragraph1</div>subparagraph1<div>paragraph2</div>subparagraph2<div><br/></div></div>`)

	want := []string{"paragraph1", "subparagraph1", "paragraph2", "subparagraph2", ""}
	if len(forest) != len(want) {
		t.Fatalf("expected %d blocks, got %d: %+v", len(want), len(forest), forest)
	}
	for i, text := range want {
		if forest[i].Type != notion.BlockText || forest[i].AsPlainText() != text {
			t.Errorf("block %d = %q, want %q", i, forest[i].AsPlainText(), text)
		}
	}
}

func TestWrapperFlatteningTrailingString(t *testing.T) {
	forest := parseBody(t, `<div><div>paragraph1</div>subparagraph1</div>`)

	if len(forest) != 2 {
		t.Fatalf("expected 2 blocks, got %d: %+v", len(forest), forest)
	}
	if forest[0].AsPlainText() != "paragraph1" || forest[1].AsPlainText() != "subparagraph1" {
		t.Errorf("stray string must become its own block: %q, %q",
			forest[0].AsPlainText(), forest[1].AsPlainText())
	}
}

func TestWrapperFlattening(t *testing.T) {
	forest := parseBody(t, `<div><div>text</div><div><br/></div></div>`)

	if len(forest) != 2 {
		t.Fatalf("expected 2 flattened blocks, got %d", len(forest))
	}
	if forest[0].AsPlainText() != "text" {
		t.Errorf("first block = %q", forest[0].AsPlainText())
	}
	if forest[1].Type != notion.BlockText || forest[1].AsPlainText() != "" {
		t.Errorf("line-break-only child must become an empty text block, got %+v", forest[1])
	}
}
