package convert

import (
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/danielegts/enex2notion/notion"
)

// listBlocks converts a list container into one block per item. Nested list
// containers found between items become children of the immediately
// preceding item. Stray content directly inside the container (neither an
// item nor a nested list) is malformed markup: it is logged and emitted as
// sibling text blocks after the list.
func (c *Converter) listBlocks(el *etree.Element, px int) []indented {
	itemType := notion.BlockBulleted
	if el.Tag == "ol" {
		itemType = notion.BlockNumbered
	}

	var (
		items  []indented
		strays []*notion.Block
		last   *notion.Block
	)
	for _, child := range el.Child {
		switch t := child.(type) {
		case *etree.CharData:
			if strings.TrimSpace(t.Data) == "" {
				continue
			}
			c.log.Warn("Non-empty string element inside list, moving it outside")
			strays = append(strays, notion.NewTextBlock([]notion.TextRun{{Text: t.Data}}))

		case *etree.Element:
			switch t.Tag {
			case "li":
				last = c.listItem(t, itemType)
				items = append(items, indented{block: last, px: px})
			case "ul", "ol":
				nested := c.listBlocks(t, 0)
				if last != nil {
					for _, n := range nested {
						last.Children = append(last.Children, n.block)
					}
					continue
				}
				for _, n := range nested {
					items = append(items, indented{block: n.block, px: px})
				}
			default:
				c.log.Warn("Unexpected tag inside list, moving it outside", zap.String("tag", t.Tag))
				runs, hoisted := c.resolveRuns(t)
				strays = append(strays, notion.NewTextBlock(runs))
				strays = append(strays, hoisted...)
			}
		}
	}

	for _, s := range strays {
		items = append(items, indented{block: s, px: px})
	}
	return items
}

// listItem builds one item block. A checkable-item marker anywhere inside
// the item turns it into a todo block carrying the marker's checked state.
// Nested lists and embedded media become the item's children in encounter
// order.
func (c *Converter) listItem(li *etree.Element, itemType notion.BlockType) *notion.Block {
	var (
		runs     []notion.TextRun
		children []*notion.Block
	)
	for _, child := range li.Child {
		switch t := child.(type) {
		case *etree.CharData:
			if strings.TrimSpace(t.Data) != "" {
				runs = append(runs, notion.TextRun{Text: t.Data})
			}
		case *etree.Element:
			if t.Tag == "ul" || t.Tag == "ol" {
				for _, n := range c.listBlocks(t, 0) {
					children = append(children, n.block)
				}
				continue
			}
			c.collectElementRuns(t, notion.RunProps{}, &runs, &children)
		}
	}

	var b *notion.Block
	if todo := li.FindElement(".//en-todo"); todo != nil {
		b = notion.NewTodoBlock(runs, todo.SelectAttrValue("checked", "") == "true")
	} else {
		b = notion.NewListItemBlock(itemType, runs)
	}
	b.Children = children
	return b
}
