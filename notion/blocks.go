// Package notion defines the destination block model the conversion engine
// emits: a forest of typed blocks with rich text runs and resource
// references, shaped after Notion's block taxonomy.
package notion

import (
	"strings"

	"github.com/danielegts/enex2notion/enex"
)

// BlockType distinguishes the different kinds of destination blocks.
type BlockType string

const (
	BlockText     BlockType = "text"
	BlockHeading1 BlockType = "heading_1"
	BlockHeading2 BlockType = "heading_2"
	BlockHeading3 BlockType = "heading_3"
	BlockDivider  BlockType = "divider"
	BlockBulleted BlockType = "bulleted_list_item"
	BlockNumbered BlockType = "numbered_list_item"
	BlockTodo     BlockType = "to_do"
	BlockTable    BlockType = "table"
	BlockCode     BlockType = "code"
	BlockCallout  BlockType = "callout"
	BlockBookmark BlockType = "bookmark"
	BlockImage    BlockType = "image"
	BlockVideo    BlockType = "video"
	BlockAudio    BlockType = "audio"
	BlockFile     BlockType = "file"
	BlockPDF      BlockType = "pdf"
	BlockEmbed    BlockType = "embed"
)

// Block is a single node of the output forest. Type selects which payload
// fields are meaningful, Children always represent strictly deeper nesting
// in document order.
type Block struct {
	Type     BlockType      `json:"type"`
	Text     []TextRun      `json:"text,omitempty"`
	Checked  bool           `json:"checked,omitempty"`
	Resource *enex.Resource `json:"resource,omitempty"`
	URL      string         `json:"url,omitempty"`
	Rows     [][][]TextRun  `json:"rows,omitempty"`
	Icon     string         `json:"icon,omitempty"`
	Width    *int           `json:"width,omitempty"`
	Height   *int           `json:"height,omitempty"`
	Children []*Block       `json:"children,omitempty"`
}

// NewTextBlock creates a plain text block.
func NewTextBlock(runs []TextRun) *Block {
	return &Block{Type: BlockText, Text: MergeRuns(runs)}
}

// NewHeadingBlock creates a heading block of the given level (1 to 3).
func NewHeadingBlock(level int, runs []TextRun) *Block {
	var bt BlockType
	switch level {
	case 1:
		bt = BlockHeading1
	case 2:
		bt = BlockHeading2
	default:
		bt = BlockHeading3
	}
	return &Block{Type: bt, Text: MergeRuns(runs)}
}

// NewDividerBlock creates a divider block.
func NewDividerBlock() *Block {
	return &Block{Type: BlockDivider}
}

// NewListItemBlock creates a bulleted or numbered list item.
func NewListItemBlock(bt BlockType, runs []TextRun) *Block {
	return &Block{Type: bt, Text: MergeRuns(runs)}
}

// NewTodoBlock creates a checkable list item.
func NewTodoBlock(runs []TextRun, checked bool) *Block {
	return &Block{Type: BlockTodo, Text: MergeRuns(runs), Checked: checked}
}

// NewTableBlock creates a table block from a grid of cell contents.
func NewTableBlock(rows [][][]TextRun) *Block {
	return &Block{Type: BlockTable, Rows: rows}
}

// NewCodeBlock creates a code block with verbatim content.
func NewCodeBlock(text string) *Block {
	return &Block{Type: BlockCode, Text: []TextRun{{Text: text}}}
}

// NewCalloutBlock creates a callout with an icon and plain text content.
func NewCalloutBlock(icon, text string) *Block {
	return &Block{Type: BlockCallout, Icon: icon, Text: []TextRun{{Text: text}}}
}

// NewBookmarkBlock creates a bookmark pointing at an external URL.
func NewBookmarkBlock(url string) *Block {
	return &Block{Type: BlockBookmark, URL: url}
}

// NewResourceBlock creates a media block for an extracted resource, choosing
// the variant by mime type prefix.
func NewResourceBlock(res *enex.Resource) *Block {
	var bt BlockType
	switch {
	case strings.HasPrefix(res.Mime, "image/"):
		bt = BlockImage
	case strings.HasPrefix(res.Mime, "video/"):
		bt = BlockVideo
	case strings.HasPrefix(res.Mime, "audio/"):
		bt = BlockAudio
	case res.Mime == "application/pdf":
		bt = BlockPDF
	default:
		bt = BlockFile
	}
	return &Block{Type: bt, Resource: res}
}

// NewEmbedBlock creates an inline image embed referencing an external URL.
func NewEmbedBlock(url string) *Block {
	return &Block{Type: BlockEmbed, URL: url}
}

// AsPlainText extracts the concatenated text content of the block itself,
// excluding children.
func (b *Block) AsPlainText() string {
	var buf strings.Builder
	for _, run := range b.Text {
		buf.WriteString(run.Text)
	}
	return buf.String()
}
