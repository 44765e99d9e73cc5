package convert

import (
	"testing"

	"github.com/danielegts/enex2notion/notion"
)

func TestIndentSingleStepNesting(t *testing.T) {
	forest := parseBody(t, `
		<div>root</div>
		<div style="padding-left:40px;">child</div>
		<div style="padding-left:80px;">grandchild</div>`)

	if len(forest) != 1 {
		t.Fatalf("expected 1 root, got %d", len(forest))
	}
	root := forest[0]
	if root.AsPlainText() != "root" || len(root.Children) != 1 {
		t.Fatalf("unexpected root: %+v", root)
	}
	child := root.Children[0]
	if child.AsPlainText() != "child" || len(child.Children) != 1 {
		t.Fatalf("unexpected child: %+v", child)
	}
	if got := child.Children[0].AsPlainText(); got != "grandchild" {
		t.Errorf("grandchild = %q", got)
	}
}

func TestIndentPopToAncestor(t *testing.T) {
	forest := parseBody(t, `
		<div>a</div>
		<div style="padding-left:40px;">b</div>
		<div style="padding-left:80px;">c</div>
		<div style="padding-left:40px;">d</div>
		<div>e</div>`)

	if len(forest) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(forest))
	}
	a := forest[0]
	if len(a.Children) != 2 {
		t.Fatalf("expected b and d under a, got %d children", len(a.Children))
	}
	if a.Children[0].AsPlainText() != "b" || a.Children[1].AsPlainText() != "d" {
		t.Errorf("children of a: %q, %q", a.Children[0].AsPlainText(), a.Children[1].AsPlainText())
	}
	if len(a.Children[0].Children) != 1 || a.Children[0].Children[0].AsPlainText() != "c" {
		t.Errorf("c must stay under b")
	}
	if forest[1].AsPlainText() != "e" {
		t.Errorf("zero indentation must return to root, got %q", forest[1].AsPlainText())
	}
}

func TestIndentMultiStepJump(t *testing.T) {
	forest := parseBody(t, `
		<div>a</div>
		<div style="padding-left:120px;">deep</div>`)

	if len(forest) != 1 {
		t.Fatalf("expected 1 root, got %d", len(forest))
	}
	if len(forest[0].Children) != 1 {
		t.Fatalf("jump must nest exactly one level, got %d children", len(forest[0].Children))
	}
	// 120px is three steps, all rendered literally
	if got := forest[0].Children[0].AsPlainText(); got != "            deep" {
		t.Errorf("visual depth must become leading spaces, got %q", got)
	}
}

func TestIndentAnomalousSequence(t *testing.T) {
	forest := parseBody(t, `
		<div>test1</div>
		<div style="padding-left:80px;">test2</div>
		<div style="padding-left:40px;">test3</div>`)

	if len(forest) != 1 {
		t.Fatalf("expected 1 root, got %d", len(forest))
	}
	children := forest[0].Children
	if len(children) != 2 {
		t.Fatalf("both blocks must attach under the root, got %d children", len(children))
	}
	// a broken sequence keeps every declared depth as literal spaces, even
	// after the indentation decreases again
	if got := children[0].AsPlainText(); got != "        test2" {
		t.Errorf("jump block = %q", got)
	}
	if got := children[1].AsPlainText(); got != "    test3" {
		t.Errorf("post-jump block = %q", got)
	}
}

func TestIndentRecoversAfterAnomaly(t *testing.T) {
	forest := parseBody(t, `
		<div>test1</div>
		<div style="padding-left:80px;">test2</div>
		<div>test3</div>
		<div style="padding-left:40px;">test4</div>`)

	if len(forest) != 2 {
		t.Fatalf("zero indentation must end the broken sequence, got %d roots", len(forest))
	}
	if forest[1].AsPlainText() != "test3" || len(forest[1].Children) != 1 {
		t.Fatalf("clean nesting must resume: %+v", forest[1])
	}
	if got := forest[1].Children[0].AsPlainText(); got != "test4" {
		t.Errorf("recovered child = %q", got)
	}
}

func TestIndentLeadingIndentedBlock(t *testing.T) {
	forest := parseBody(t, `<div style="padding-left:40px;">floating</div>`)

	if len(forest) != 1 {
		t.Fatalf("expected 1 synthesized root, got %d", len(forest))
	}
	root := forest[0]
	if root.Type != notion.BlockText || root.AsPlainText() != "" {
		t.Fatalf("expected empty text anchor, got %+v", root)
	}
	if len(root.Children) != 1 || root.Children[0].AsPlainText() != "floating" {
		t.Fatalf("indented block must hang off the anchor: %+v", root.Children)
	}
}
