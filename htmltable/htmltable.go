// Package htmltable extracts named tables from semi-structured HTML documents.
//
// Sections are located by the text of the paragraph preceding their table,
// columns are resolved by their header text, never by position.
package htmltable

import (
	"fmt"
	"io"
	"iter"
	"slices"
	"strings"

	"github.com/etnz/statements/date"
	"github.com/shopspring/decimal"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"
)

// Document is a parsed HTML document.
type Document struct {
	root *html.Node
}

// Parse reads an HTML document. The encoding is detected from the document
// itself (BOM or meta tag) and defaults to UTF-8.
func Parse(r io.Reader) (*Document, error) {
	utf8, err := charset.NewReader(r, "text/html")
	if err != nil {
		return nil, fmt.Errorf("cannot detect document encoding: %w", err)
	}
	root, err := html.Parse(utf8)
	if err != nil {
		return nil, fmt.Errorf("cannot parse html: %w", err)
	}
	return &Document{root: root}, nil
}

// Paragraph returns the lines of the first paragraph whose text contains
// substr. Lines are separated by <br> elements and trimmed.
func (d *Document) Paragraph(substr string) ([]string, bool) {
	p := d.findParagraph(substr)
	if p == nil {
		return nil, false
	}
	var lines []string
	var cur strings.Builder
	for c := range p.ChildNodes() {
		if c.Type == html.ElementNode && c.DataAtom == atom.Br {
			lines = append(lines, strings.TrimSpace(cur.String()))
			cur.Reset()
			continue
		}
		cur.WriteString(text(c))
	}
	lines = append(lines, strings.TrimSpace(cur.String()))
	return lines, true
}

// FindSection returns the first table following a paragraph that contains
// title. ok is false if there is no such paragraph: documents omit sections
// without content.
func (d *Document) FindSection(title string) (t *Table, ok bool, err error) {
	p := d.findParagraph(title)
	if p == nil {
		return nil, false, nil
	}
	for n := p.NextSibling; n != nil; n = n.NextSibling {
		if n.Type == html.ElementNode && n.DataAtom == atom.Table {
			return newTable(title, n), true, nil
		}
	}
	return nil, true, fmt.Errorf("section %q has no table", title)
}

func (d *Document) findParagraph(substr string) *html.Node {
	for n := range d.root.Descendants() {
		if n.Type == html.ElementNode && n.DataAtom == atom.P && strings.Contains(text(n), substr) {
			return n
		}
	}
	return nil
}

// Table is the content of a section table, as text.
type Table struct {
	Section string
	header  []string
	rows    [][]string
}

func newTable(section string, n *html.Node) *Table {
	t := &Table{Section: section}
	for tr := range ownRows(n) {
		var cells []string
		for td := range tr.ChildNodes() {
			if td.Type == html.ElementNode && (td.DataAtom == atom.Td || td.DataAtom == atom.Th) {
				cells = append(cells, strings.TrimSpace(text(td)))
			}
		}
		if t.header == nil {
			t.header = cells
			continue
		}
		t.rows = append(t.rows, cells)
	}
	return t
}

// ownRows iterates over the rows of table, directly or under its row groups.
// Rows of tables nested in cells are not included.
func ownRows(table *html.Node) iter.Seq[*html.Node] {
	return func(yield func(*html.Node) bool) {
		for c := range table.ChildNodes() {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.DataAtom {
			case atom.Tr:
				if !yield(c) {
					return
				}
			case atom.Thead, atom.Tbody, atom.Tfoot:
				for tr := range c.ChildNodes() {
					if tr.Type == html.ElementNode && tr.DataAtom == atom.Tr && !yield(tr) {
						return
					}
				}
			}
		}
	}
}

// Header returns the header cells.
func (t *Table) Header() []string { return t.header }

// Columns maps the header cells matching one of labels to their index.
// Other header cells are ignored, and labels absent from the header are
// only reported when a row reads them.
func (t *Table) Columns(labels ...string) *Columns {
	c := &Columns{section: t.Section, index: make(map[string]int)}
	for i, h := range t.header {
		if slices.Contains(labels, h) {
			if _, dup := c.index[h]; !dup {
				c.index[h] = i
			}
		}
	}
	return c
}

// Rows iterates over the data rows, skipping the header, empty rows and rows
// whose first cell contains one of markers.
//
// Each row carries the first cell of the last skipped marker row before it,
// as some tables group rows under banners.
func (t *Table) Rows(cols *Columns, markers ...string) iter.Seq[Row] {
	return func(yield func(Row) bool) {
		banner := ""
		for _, cells := range t.rows {
			if !slices.ContainsFunc(cells, func(c string) bool { return c != "" }) {
				continue
			}
			if slices.ContainsFunc(markers, func(m string) bool { return strings.Contains(cells[0], m) }) {
				banner = cells[0]
				continue
			}
			if !yield(Row{cols: cols, cells: cells, Banner: banner}) {
				return
			}
		}
	}
}

// Columns is a label to index lookup built from a header row.
type Columns struct {
	section string
	index   map[string]int
}

// Has reports whether label was found in the header.
func (c *Columns) Has(label string) bool {
	_, ok := c.index[label]
	return ok
}

// Row is a data row of a Table.
type Row struct {
	cols   *Columns
	cells  []string
	Banner string // first cell of the preceding marker row, if any
}

// Text returns the trimmed text of the cell in column label.
func (r Row) Text(label string) (string, error) {
	i, ok := r.cols.index[label]
	if !ok {
		return "", &MissingColumnError{Section: r.cols.section, Label: label}
	}
	if i >= len(r.cells) {
		return "", &CellError{Label: label, Err: fmt.Errorf("row has only %d cells", len(r.cells))}
	}
	return r.cells[i], nil
}

// Decimal returns the number in column label. Thousands separators (spaces)
// are ignored.
func (r Row) Decimal(label string) (decimal.Decimal, error) {
	s, err := r.Text(label)
	if err != nil {
		return decimal.Zero, err
	}
	d, err := ParseNumber(s)
	if err != nil {
		return decimal.Zero, &CellError{Label: label, Value: s, Err: err}
	}
	return d, nil
}

// Date returns the statement date (DD.MM.YYYY) in column label.
func (r Row) Date(label string) (date.Date, error) {
	s, err := r.Text(label)
	if err != nil {
		return date.Date{}, err
	}
	d, err := date.ParseStatement(s)
	if err != nil {
		return date.Date{}, &CellError{Label: label, Value: s, Err: err}
	}
	return d, nil
}

// ParseNumber parses a number that may contain space thousands separators.
func ParseNumber(s string) (decimal.Decimal, error) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\u00a0', '\u202f':
			return -1
		}
		return r
	}, s)
	return decimal.NewFromString(s)
}

// text returns the concatenated text of n and its descendants.
func text(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := range n.Descendants() {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}
