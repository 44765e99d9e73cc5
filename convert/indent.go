package convert

import (
	"strings"

	"github.com/danielegts/enex2notion/notion"
)

// indentUnit is the pixel depth of one nesting level in the source markup.
const indentUnit = 40

// indented pairs a dispatched block with the pixel indentation its source
// element carried.
type indented struct {
	block *notion.Block
	px    int
}

// indentCursor rebuilds parent/child nesting from pixel indentation cues.
// The stack holds the open ancestor chain: stack[i] is the block whose
// children sit at level i+1, so the current attach level is len(stack).
type indentCursor struct {
	roots []*notion.Block
	stack []*notion.Block
	last  *notion.Block // most recent block at the current attach level
	// level at which an anomalous jump started, -1 while the sequence is
	// well formed
	anomalyBase int
}

func newIndentCursor() *indentCursor {
	return &indentCursor{anomalyBase: -1}
}

// place attaches the block at the level its indentation implies. A jump of
// more than one step breaks the sequence: no intermediate blocks are
// fabricated, the block nests a single level and its whole visual depth is
// kept as literal leading spaces (4 per step). The sequence stays broken, and
// following indented blocks keep their literal depth under the same parent,
// until indentation returns to where the jump started.
func (c *indentCursor) place(ib indented) {
	level := ib.px / indentUnit

	// an indented block with no preceding sibling still needs a root-level
	// home, anchor it under a synthesized empty one
	if len(c.roots) == 0 && level > 0 {
		c.attach(notion.NewTextBlock(nil))
	}

	if c.anomalyBase >= 0 {
		if level > c.anomalyBase {
			prefixText(ib.block, strings.Repeat(" ", level*4))
			c.attach(ib.block)
			return
		}
		c.anomalyBase = -1
	}

	switch {
	case level <= len(c.stack):
		for len(c.stack) > level {
			c.last = c.pop()
		}
	case level == len(c.stack)+1:
		c.stack = append(c.stack, c.last)
	default:
		c.anomalyBase = len(c.stack)
		prefixText(ib.block, strings.Repeat(" ", level*4))
		c.stack = append(c.stack, c.last)
	}
	c.attach(ib.block)
}

func (c *indentCursor) attach(b *notion.Block) {
	if len(c.stack) == 0 {
		c.roots = append(c.roots, b)
	} else {
		parent := c.stack[len(c.stack)-1]
		parent.Children = append(parent.Children, b)
	}
	c.last = b
}

func (c *indentCursor) pop() *notion.Block {
	top := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	return top
}

func (c *indentCursor) forest() []*notion.Block {
	return c.roots
}

func prefixText(b *notion.Block, prefix string) {
	if len(b.Text) == 0 {
		return
	}
	b.Text[0].Text = prefix + b.Text[0].Text
}
