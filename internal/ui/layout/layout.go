// Package layout provides cell-based geometry for DOM subtrees rendered in
// a terminal grid. Widths are measured in character cells; element sizing
// honors an inline style attribute with a small fixed vocabulary
// (width, padding-left, padding-right, gap).
package layout

import (
	"strconv"
	"strings"
	"sync"

	"github.com/rivo/uniseg"
	"golang.org/x/net/html"

	"github.com/vellum-editor/vellum/internal/dom"
)

// Direction is the text direction of a layout container.
type Direction int

const (
	DirectionLTR Direction = iota
	DirectionRTL
)

// String returns "ltr" or "rtl".
func (d Direction) String() string {
	if d == DirectionRTL {
		return "rtl"
	}
	return "ltr"
}

// ParseDirection maps "rtl" to DirectionRTL; anything else is LTR.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), "rtl") {
		return DirectionRTL
	}
	return DirectionLTR
}

// Insets holds horizontal padding in cells.
type Insets struct {
	Left  int
	Right int
}

// Sum returns the total horizontal padding.
func (i Insets) Sum() int { return i.Left + i.Right }

// style holds the parsed inline style of an element.
type style struct {
	width    int
	hasWidth bool
	padding  Insets
	gap      int
	hasGap   bool
}

// parseStyle reads the fixed style vocabulary from a style attribute value.
// Unknown properties and malformed values are ignored.
func parseStyle(raw string) style {
	var s style
	for _, decl := range strings.Split(raw, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < 0 {
			continue
		}
		switch strings.TrimSpace(name) {
		case "width":
			s.width = n
			s.hasWidth = true
		case "padding-left":
			s.padding.Left = n
		case "padding-right":
			s.padding.Right = n
		case "gap":
			s.gap = n
			s.hasGap = true
		}
	}
	return s
}

// Measurer computes cell widths for DOM subtrees. Padding is cached per
// element after the first style read; the toolbar's padding is assumed
// stable for its lifetime.
type Measurer struct {
	mu             sync.Mutex
	containerWidth int
	paddingCache   map[*html.Node]Insets
}

// NewMeasurer returns a measurer with no container width set.
func NewMeasurer() *Measurer {
	return &Measurer{paddingCache: make(map[*html.Node]Insets)}
}

// SetContainerWidth records the width, in cells, of the layout container.
func (m *Measurer) SetContainerWidth(w int) {
	m.mu.Lock()
	m.containerWidth = w
	m.mu.Unlock()
}

// ContainerWidth returns the recorded container width.
func (m *Measurer) ContainerWidth() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.containerWidth
}

// Padding returns the element's horizontal padding, reading and caching it
// from the style attribute on first use.
func (m *Measurer) Padding(el *html.Node) Insets {
	m.mu.Lock()
	defer m.mu.Unlock()
	if in, ok := m.paddingCache[el]; ok {
		return in
	}
	var in Insets
	if raw, ok := dom.GetAttr(el, "style"); ok {
		in = parseStyle(raw).padding
	}
	m.paddingCache[el] = in
	return in
}

// NodeWidth returns the cell width of a node. Text nodes measure their
// grapheme width; elements with an explicit style width use it, and other
// elements sum their children plus padding and inter-child gaps.
func (m *Measurer) NodeWidth(n *html.Node) int {
	if n == nil {
		return 0
	}
	if n.Type == html.TextNode {
		return uniseg.StringWidth(n.Data)
	}

	var s style
	if raw, ok := dom.GetAttr(n, "style"); ok {
		s = parseStyle(raw)
	}
	if s.hasWidth {
		return s.width
	}

	width := s.padding.Sum()
	count := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		width += m.NodeWidth(c)
		count++
	}
	if count > 1 {
		width += s.gap * (count - 1)
	}
	return width
}

// ContentWidth returns the total cell width of the element's children,
// including inter-child gaps but excluding the element's own padding.
func (m *Measurer) ContentWidth(el *html.Node) int {
	var s style
	if raw, ok := dom.GetAttr(el, "style"); ok {
		s = parseStyle(raw)
	}
	width := 0
	count := 0
	for c := el.FirstChild; c != nil; c = c.NextSibling {
		width += m.NodeWidth(c)
		count++
	}
	if count > 1 {
		width += s.gap * (count - 1)
	}
	return width
}

// TrailingEdge returns the position of the last child's trailing edge in
// container coordinates: measured from the left edge in LTR, mirrored in
// RTL so that smaller means further overflow.
func (m *Measurer) TrailingEdge(el *html.Node, dir Direction) int {
	pad := m.Padding(el)
	content := m.ContentWidth(el)
	if dir == DirectionRTL {
		return m.ContainerWidth() - pad.Right - content
	}
	return pad.Left + content
}

// Overflows reports whether the element's content exceeds the container's
// content box: a right-edge comparison in LTR, mirrored in RTL.
func (m *Measurer) Overflows(el *html.Node, dir Direction) bool {
	pad := m.Padding(el)
	edge := m.TrailingEdge(el, dir)
	if dir == DirectionRTL {
		return edge < pad.Left
	}
	return edge > m.ContainerWidth()-pad.Right
}
