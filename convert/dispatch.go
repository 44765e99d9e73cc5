package convert

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/danielegts/enex2notion/css"
	"github.com/danielegts/enex2notion/notion"
)

// blockTags are element tags that always form blocks of their own. A div or
// span holding any of these is a structural container, not a paragraph.
var blockTags = map[string]bool{
	"div": true, "ul": true, "ol": true, "table": true,
	"h1": true, "h2": true, "h3": true, "hr": true,
}

// dispatch classifies one markup node and produces its blocks, paired with
// the pixel indentation the node carried. One node can yield several blocks
// (a table plus hoisted embeds, a list plus stray content) or none at all
// (skip markers, empty wrappers).
func (c *Converter) dispatch(node etree.Token) []indented {
	switch t := node.(type) {
	case *etree.CharData:
		if strings.TrimSpace(t.Data) == "" {
			return nil
		}
		return []indented{{block: notion.NewTextBlock([]notion.TextRun{{Text: t.Data}})}}
	case *etree.Element:
		return c.dispatchElement(t)
	}
	return nil
}

func (c *Converter) dispatchElement(el *etree.Element) []indented {
	style := css.ParseInline(el.SelectAttrValue("style", ""))
	px := style.PaddingLeftPx()

	// skip markers drop the whole subtree
	switch {
	case el.Tag == "en-crypt":
		c.log.Debug("Skipping encrypted block")
		return nil
	case style.HasMarker("--en-task-group"):
		c.log.Debug("Skipping task group block")
		return nil
	case style.HasMarker("--en-clipped-content"):
		c.log.Debug("Skipping webclip block")
		return nil
	}

	switch el.Tag {
	case "h1", "h2", "h3":
		level := int(el.Tag[1] - '0')
		runs, hoisted := c.resolveRuns(el)
		return withHoisted(indented{block: notion.NewHeadingBlock(level, runs), px: px}, hoisted, px)

	case "hr":
		return []indented{{block: notion.NewDividerBlock(), px: px}}

	case "ul", "ol":
		return c.listBlocks(el, px)

	case "table":
		return c.tableBlocks(el, px)

	case "en-media":
		if b := c.mediaBlock(el); b != nil {
			return []indented{{block: b, px: px}}
		}
		return nil

	case "img":
		if b := c.imageBlock(el); b != nil {
			return []indented{{block: b, px: px}}
		}
		return nil
	}

	switch {
	case style.HasMarker("--en-codeblock"):
		return []indented{{block: c.codeBlock(el), px: px}}
	case style.HasMarker("--en-richlink"):
		href, _ := style.Marker("--en-href")
		return []indented{{block: notion.NewBookmarkBlock(href), px: px}}
	}

	if isContainer(el) {
		var out []indented
		for _, child := range el.Child {
			out = append(out, c.dispatch(child)...)
		}
		return out
	}

	return c.textBlocks(el, px)
}

// textBlocks is the default rule: resolve the element's inline content into
// a text block. Media found inside follows as siblings. An element with no
// text at all collapses to nothing, unless a line break gave it visible
// height, then it keeps an empty text block.
func (c *Converter) textBlocks(el *etree.Element, px int) []indented {
	runs, hoisted := c.resolveRuns(el)

	if isBlankRuns(runs) {
		if hasLineBreak(el) {
			return withHoisted(indented{block: notion.NewTextBlock(nil), px: px}, hoisted, px)
		}
		var out []indented
		for _, b := range hoisted {
			out = append(out, indented{block: b, px: px})
		}
		return out
	}
	return withHoisted(indented{block: notion.NewTextBlock(runs), px: px}, hoisted, px)
}

// codeBlock joins each direct child line of a code container with newlines
// into a single code block.
func (c *Converter) codeBlock(el *etree.Element) *notion.Block {
	var lines []string
	for _, child := range el.ChildElements() {
		lines = append(lines, plainText(child))
	}
	if len(lines) == 0 {
		lines = append(lines, plainText(el))
	}
	return notion.NewCodeBlock(strings.Join(lines, "\n"))
}

func withHoisted(first indented, hoisted []*notion.Block, px int) []indented {
	out := []indented{first}
	for _, b := range hoisted {
		out = append(out, indented{block: b, px: px})
	}
	return out
}

// isContainer reports whether the element holds block-forming children.
// Such an element is flattened: every child is dispatched on its own and
// stray text between the blocks becomes sibling text blocks in document
// order, never one merged paragraph.
func isContainer(el *etree.Element) bool {
	if el.Tag != "div" && el.Tag != "span" {
		return false
	}
	for _, child := range el.ChildElements() {
		if blockTags[child.Tag] {
			return true
		}
	}
	return false
}

func isBlankRuns(runs []notion.TextRun) bool {
	for _, r := range runs {
		if strings.TrimSpace(r.Text) != "" {
			return false
		}
	}
	return true
}

func hasLineBreak(el *etree.Element) bool {
	for _, child := range el.ChildElements() {
		if child.Tag == "br" {
			return true
		}
	}
	return false
}

func plainText(el *etree.Element) string {
	var buf strings.Builder
	collectPlainText(el, &buf)
	return buf.String()
}

func collectPlainText(el *etree.Element, buf *strings.Builder) {
	for _, child := range el.Child {
		switch t := child.(type) {
		case *etree.CharData:
			buf.WriteString(t.Data)
		case *etree.Element:
			if t.Tag == "br" {
				buf.WriteString("\n")
				continue
			}
			collectPlainText(t, buf)
		}
	}
}
