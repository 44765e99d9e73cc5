package convert

import (
	"github.com/beevik/etree"

	"github.com/danielegts/enex2notion/css"
	"github.com/danielegts/enex2notion/notion"
)

// resolveRuns walks an inline markup subtree depth-first, accumulating the
// active property set, and returns the merged run sequence. Embedded media
// found inside the subtree does not belong in a text block, it is returned
// separately so the caller can hoist it to a following sibling position.
func (c *Converter) resolveRuns(el *etree.Element) ([]notion.TextRun, []*notion.Block) {
	var (
		runs    []notion.TextRun
		hoisted []*notion.Block
	)
	c.collectRuns(el, notion.RunProps{}, &runs, &hoisted)
	return notion.MergeRuns(runs), hoisted
}

func (c *Converter) collectRuns(el *etree.Element, props notion.RunProps, runs *[]notion.TextRun, hoisted *[]*notion.Block) {
	for _, child := range el.Child {
		switch node := child.(type) {
		case *etree.CharData:
			if node.Data != "" {
				*runs = append(*runs, notion.TextRun{Text: node.Data, Props: props})
			}
		case *etree.Element:
			c.collectElementRuns(node, props, runs, hoisted)
		}
	}
}

func (c *Converter) collectElementRuns(el *etree.Element, props notion.RunProps, runs *[]notion.TextRun, hoisted *[]*notion.Block) {
	switch el.Tag {
	case "b", "strong":
		props.Bold = true
	case "i", "em":
		props.Italic = true
	case "u":
		props.Underline = true
	case "s", "strike", "del":
		props.Strikethrough = true
	case "span":
		style := css.ParseInline(el.SelectAttrValue("style", ""))
		if color := style.Color(); color != "" {
			props.Color = color
		}
		if style.Bold() {
			props.Bold = true
		}
		if style.Italic() {
			props.Italic = true
		}
	case "a":
		if href := el.SelectAttrValue("href", ""); href != "" {
			props.Link = c.resolveHref(href)
		}
	case "br":
		*runs = append(*runs, notion.TextRun{Text: "\n", Props: props})
		return
	case "en-todo":
		// checkable-item markers are consumed by the list builder
		return
	case "en-crypt":
		// encrypted payloads never reach the output
		return
	case "en-media":
		if b := c.mediaBlock(el); b != nil {
			*hoisted = append(*hoisted, b)
		}
		return
	case "img":
		if b := c.imageBlock(el); b != nil {
			*hoisted = append(*hoisted, b)
		}
		return
	}
	c.collectRuns(el, props, runs, hoisted)
}

// resolveHref rewrites internal note links to destination page URLs when a
// resolver is available, anything else passes through unchanged.
func (c *Converter) resolveHref(href string) string {
	if c.links == nil {
		return href
	}
	return c.links.Resolve(href)
}
