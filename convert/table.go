package convert

import (
	"strconv"

	"github.com/beevik/etree"

	"github.com/danielegts/enex2notion/notion"
)

// tableBlocks converts a table element into a grid of resolved cell
// contents. Column spans expand into extra cells and short rows are padded
// on the right so the grid is always rectangular. Embedded media discovered
// inside cells cannot live in the table representation, it is hoisted to
// sibling blocks following the table in scan order (top to bottom, left to
// right).
func (c *Converter) tableBlocks(el *etree.Element, px int) []indented {
	var (
		rows    [][][]notion.TextRun
		hoisted []*notion.Block
		maxCols int
	)

	for _, tr := range tableRows(el) {
		var row [][]notion.TextRun
		for _, cell := range tr.ChildElements() {
			if cell.Tag != "td" && cell.Tag != "th" {
				continue
			}
			runs, embeds := c.resolveRuns(cell)
			hoisted = append(hoisted, embeds...)

			row = append(row, runs)
			if span, err := strconv.Atoi(cell.SelectAttrValue("colspan", "1")); err == nil {
				for i := 1; i < span; i++ {
					row = append(row, emptyCell())
				}
			}
		}
		if len(row) == 0 {
			continue
		}
		if len(row) > maxCols {
			maxCols = len(row)
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil
	}

	for i := range rows {
		for len(rows[i]) < maxCols {
			rows[i] = append(rows[i], emptyCell())
		}
	}

	return withHoisted(indented{block: notion.NewTableBlock(rows), px: px}, hoisted, px)
}

// tableRows collects tr elements, looking through tbody/thead/tfoot
// groupings.
func tableRows(el *etree.Element) []*etree.Element {
	var rows []*etree.Element
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "tr":
			rows = append(rows, child)
		case "tbody", "thead", "tfoot":
			rows = append(rows, tableRows(child)...)
		}
	}
	return rows
}

func emptyCell() []notion.TextRun {
	return []notion.TextRun{{}}
}
