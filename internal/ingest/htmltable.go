// Package ingest converts pasted HTML table fragments into raw grids.
// Copying a range out of a web spreadsheet puts an HTML <table> on the
// clipboard rather than plain text; decoding it here lets that paste take
// the normal grid pipeline. Spreadsheet binaries remain out of scope —
// decoding those stays with the caller's spreadsheet library.
package ingest

import (
	"errors"
	"strings"

	"cyberassess/internal/models"

	"golang.org/x/net/html"
)

// LooksLikeTable reports whether a pasted blob is an HTML table fragment
// rather than plain text.
func LooksLikeTable(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "<table") &&
		(strings.Contains(lower, "<td") || strings.Contains(lower, "<th"))
}

// DecodeTable parses an HTML fragment and converts the first <table> into a
// grid of string cells, one row per <tr>, one cell per <td>/<th>.
func DecodeTable(content string) (models.Grid, error) {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return nil, err
	}

	table := findFirstNode(doc, "table")
	if table == nil {
		return nil, ErrNoTable
	}

	grid := models.Grid{}
	for _, tr := range findNodes(table, "tr") {
		row := models.Row{}
		for _, cell := range findCells(tr) {
			row = append(row, models.StringCell(extractText(cell)))
		}
		if len(row) > 0 {
			grid = append(grid, row)
		}
	}

	return grid, nil
}

// ErrNoTable is returned when the fragment contains no table element.
var ErrNoTable = errors.New("no table element found in pasted content")

// findFirstNode returns the first node with the given tag, depth first.
func findFirstNode(root *html.Node, tagName string) *html.Node {
	if root.Type == html.ElementNode && root.Data == tagName {
		return root
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirstNode(c, tagName); found != nil {
			return found
		}
	}
	return nil
}

// findNodes finds all nodes with a specific tag name
func findNodes(root *html.Node, tagName string) []*html.Node {
	var nodes []*html.Node

	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tagName {
			nodes = append(nodes, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}

	traverse(root)
	return nodes
}

// findCells collects the td/th children of a row, without descending into
// nested tables.
func findCells(tr *html.Node) []*html.Node {
	var cells []*html.Node

	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if n.Data == "td" || n.Data == "th" {
				cells = append(cells, n)
				return
			}
			if n.Data == "table" {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}

	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		traverse(c)
	}
	return cells
}

// extractText gets all text content from a node and its children
func extractText(node *html.Node) string {
	var text strings.Builder

	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}

	traverse(node)
	return strings.TrimSpace(text.String())
}
