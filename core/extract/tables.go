package extract

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/gaurav-prasanna/wikitables/core"
)

// Upper bounds for span attributes, as browsers clamp them.
const (
	maxColspan = 1000
	maxRowspan = 65534
)

// ClassSelector compiles a selector for tables carrying every class in
// class (space separated).
func ClassSelector(class string) (cascadia.Selector, error) {
	classes := strings.Fields(class)
	if len(classes) == 0 {
		return nil, errors.New("empty class filter")
	}
	sel, err := cascadia.Compile("table." + strings.Join(classes, "."))
	if err != nil {
		return nil, fmt.Errorf("invalid class filter: %w", err)
	}
	return sel, nil
}

// Tables returns the tables whose class list contains class, in document
// order. Each table's Index is its position among all tables of the page.
func (e *HTMLExtractor) Tables(markup string, class string) ([]core.Table, error) {
	sel, err := ClassSelector(class)
	if err != nil {
		return nil, &core.ParseError{Class: class, Err: err}
	}

	doc, err := parseDocument(markup)
	if err != nil {
		return nil, &core.ParseError{Class: class, Err: err}
	}

	var tables []core.Table
	doc.Find("table").Each(func(i int, s *goquery.Selection) {
		if !sel.Match(s.Get(0)) {
			return
		}
		t := parseTable(s)
		if t.Width() == 0 {
			return
		}
		t.Index = i
		tables = append(tables, t)
	})

	if len(tables) == 0 {
		return nil, &core.ParseError{Class: class, Err: core.ErrNoTables}
	}
	return tables, nil
}

// gridRow is one expanded row of a table.
type gridRow struct {
	cells  []string
	header bool
}

// span is a cell that continues into following rows.
type span struct {
	text      string
	remaining int
}

// parseTable expands a <table> into a rectangular grid. Cells with rowspan or
// colspan are repeated into every slot they cover. Header rows are the rows
// of <thead> and any leading rows made only of <th> cells.
func parseTable(s *goquery.Selection) core.Table {
	pending := make(map[int]span)
	var grid []gridRow
	width := 0

	ownRows(s).Each(func(_ int, tr *goquery.Selection) {
		var row []string
		occupied := make(map[int]bool)
		put := func(col int, text string) {
			for len(row) <= col {
				row = append(row, "")
			}
			row[col] = text
			occupied[col] = true
		}

		for col, sp := range pending {
			put(col, sp.text)
			sp.remaining--
			if sp.remaining == 0 {
				delete(pending, col)
			} else {
				pending[col] = sp
			}
		}

		cells := tr.ChildrenFiltered("th, td")
		allTH := cells.Length() > 0
		col := 0
		cells.Each(func(_ int, cell *goquery.Selection) {
			allTH = allTH && goquery.NodeName(cell) == "th"
			text := cellText(cell)
			colspan := spanAttr(cell, "colspan", maxColspan)
			rowspan := spanAttr(cell, "rowspan", maxRowspan)
			for k := 0; k < colspan; k++ {
				for occupied[col] {
					col++
				}
				put(col, text)
				if rowspan > 1 {
					pending[col] = span{text: text, remaining: rowspan - 1}
				}
				col++
			}
		})

		inHead := goquery.NodeName(tr.Parent()) == "thead"
		grid = append(grid, gridRow{cells: row, header: inHead || allTH})
		if len(row) > width {
			width = len(row)
		}
	})

	t := core.Table{}
	body := false
	for _, r := range grid {
		cells := pad(r.cells, width)
		if r.header && !body {
			t.Header = append(t.Header, cells)
			continue
		}
		body = true
		t.Rows = append(t.Rows, cells)
	}
	return t
}

// ownRows returns the rows of s, excluding rows of nested tables.
func ownRows(s *goquery.Selection) *goquery.Selection {
	return s.Find("tr").FilterFunction(func(_ int, tr *goquery.Selection) bool {
		return tr.Closest("table").IsSelection(s)
	})
}

// spanAttr reads a rowspan/colspan attribute. Missing, malformed or
// non-positive values count as 1.
func spanAttr(s *goquery.Selection, name string, limit int) int {
	raw, ok := s.Attr(name)
	if !ok {
		return 1
	}
	raw = strings.TrimSpace(raw)
	end := 0
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(raw[:end])
	if err != nil || n < 1 {
		return 1
	}
	if n > limit {
		return limit
	}
	return n
}

func pad(cells []string, width int) []string {
	for len(cells) < width {
		cells = append(cells, "")
	}
	return cells
}
