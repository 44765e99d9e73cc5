package convert

import (
	"testing"

	"github.com/danielegts/enex2notion/notion"
)

func TestListBulleted(t *testing.T) {
	forest := parseBody(t, `<ul><li><div>one</div></li><li><div>two</div></li></ul>`)

	if len(forest) != 2 {
		t.Fatalf("expected 2 items, got %d", len(forest))
	}
	for i, want := range []string{"one", "two"} {
		if forest[i].Type != notion.BlockBulleted || forest[i].AsPlainText() != want {
			t.Errorf("item %d: %+v", i, forest[i])
		}
	}
}

func TestListNumbered(t *testing.T) {
	forest := parseBody(t, `<ol><li><div>first</div></li></ol>`)

	if len(forest) != 1 || forest[0].Type != notion.BlockNumbered {
		t.Fatalf("expected numbered item: %+v", forest)
	}
}

func TestListTodo(t *testing.T) {
	forest := parseBody(t, `<ul>
		<li><div><en-todo checked="true"/>done</div></li>
		<li><div><en-todo checked="false"/>pending</div></li>
	</ul>`)

	if len(forest) != 2 {
		t.Fatalf("expected 2 items, got %d", len(forest))
	}
	if forest[0].Type != notion.BlockTodo || !forest[0].Checked || forest[0].AsPlainText() != "done" {
		t.Errorf("checked item: %+v", forest[0])
	}
	if forest[1].Type != notion.BlockTodo || forest[1].Checked || forest[1].AsPlainText() != "pending" {
		t.Errorf("unchecked item: %+v", forest[1])
	}
}

func TestListNestedAttachesToPrecedingItem(t *testing.T) {
	forest := parseBody(t, `<ul>
		<li><div>parent</div></li>
		<ul><li><div>nested</div></li></ul>
		<li><div>sibling</div></li>
	</ul>`)

	if len(forest) != 2 {
		t.Fatalf("expected 2 top items, got %d: %+v", len(forest), forest)
	}
	parent := forest[0]
	if parent.AsPlainText() != "parent" || len(parent.Children) != 1 {
		t.Fatalf("nested list must hang off the preceding item: %+v", parent)
	}
	if parent.Children[0].AsPlainText() != "nested" {
		t.Errorf("nested item = %q", parent.Children[0].AsPlainText())
	}
	if forest[1].AsPlainText() != "sibling" {
		t.Errorf("sibling item = %q", forest[1].AsPlainText())
	}
}

func TestListNestedInsideItem(t *testing.T) {
	forest := parseBody(t, `<ul><li><div>outer</div><ul><li><div>inner</div></li></ul></li></ul>`)

	if len(forest) != 1 {
		t.Fatalf("expected 1 item, got %d", len(forest))
	}
	item := forest[0]
	if item.AsPlainText() != "outer" || len(item.Children) != 1 {
		t.Fatalf("inner list must become item children: %+v", item)
	}
	if item.Children[0].AsPlainText() != "inner" {
		t.Errorf("inner item = %q", item.Children[0].AsPlainText())
	}
}

func TestListStrayText(t *testing.T) {
	log, logs := observedLogger()

	note := testNote(`<ul><li><div>item</div></li>stray text</ul>`)
	forest := ParseNote(note, nil, Options{}, log)

	if len(forest) != 2 {
		t.Fatalf("stray text must become a sibling block after the list: %+v", forest)
	}
	if forest[0].Type != notion.BlockBulleted {
		t.Errorf("first block: %+v", forest[0])
	}
	if forest[1].Type != notion.BlockText || forest[1].AsPlainText() != "stray text" {
		t.Errorf("stray block: %+v", forest[1])
	}
	if !hasLogEntry(logs, "inside list") {
		t.Error("expected stray content warning")
	}
}

func TestListStrayElement(t *testing.T) {
	log, logs := observedLogger()

	note := testNote(`<ul><li><div>item</div></li><div>not an item</div></ul>`)
	forest := ParseNote(note, nil, Options{}, log)

	if len(forest) != 2 {
		t.Fatalf("stray element must become a sibling block after the list: %+v", forest)
	}
	if forest[1].Type != notion.BlockText || forest[1].AsPlainText() != "not an item" {
		t.Errorf("stray block: %+v", forest[1])
	}
	if !hasLogEntry(logs, "Unexpected tag inside list") {
		t.Error("expected stray tag warning")
	}
}
