package render

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"regularfa/internal/automaton"
)

const (
	nodeRadius = 30.0
	margin     = 90.0
)

// Node colours, keyed by role
const (
	ColorAccepting = "green"
	ColorStart     = "blue"
	ColorState     = "lightblue"
)

const stylesheet = `
body { font-family: sans-serif; margin: 0; padding: 16px; background: #fff; }
h1 { font-size: 20px; text-align: center; }
svg text { font-size: 16px; font-weight: bold; text-anchor: middle; dominant-baseline: central; }
svg text.label { font-size: 13px; font-weight: normal; fill: #333; }
svg path.edge { fill: none; stroke: #555; stroke-width: 1.5; }
svg circle { stroke: #333; stroke-width: 1.5; }
`

type point struct {
	x, y float64
}

func (p point) add(q point) point     { return point{p.x + q.x, p.y + q.y} }
func (p point) sub(q point) point     { return point{p.x - q.x, p.y - q.y} }
func (p point) scale(f float64) point { return point{p.x * f, p.y * f} }
func (p point) length() float64       { return math.Hypot(p.x, p.y) }
func (p point) String() string        { return num(p.x) + " " + num(p.y) }

func (p point) rotate(rad float64) point {
	sin, cos := math.Sincos(rad)
	return point{p.x*cos - p.y*sin, p.x*sin + p.y*cos}
}

func (p point) unit() point {
	if l := p.length(); l > 0 {
		return p.scale(1 / l)
	}
	return point{0, -1}
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// edge groups every symbol leading from one state to another
type edge struct {
	from, to automaton.State
	symbols  []string
}

// StateColor returns the fill colour of s in the diagram of a
func StateColor(a *automaton.Automaton, s automaton.State) string {
	switch {
	case a.IsAccepting(s):
		return ColorAccepting
	case s == a.Start():
		return ColorStart
	default:
		return ColorState
	}
}

// Document builds an HTML page with an SVG diagram of a
func Document(a *automaton.Automaton, title string) *html.Node {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html, "html")
	doc.AppendChild(root)

	head := element(atom.Head, "head")
	head.AppendChild(element(atom.Meta, "meta", "charset", "utf-8"))
	head.AppendChild(withText(element(atom.Title, "title"), title))
	head.AppendChild(withText(element(atom.Style, "style"), stylesheet))
	root.AppendChild(head)

	body := element(atom.Body, "body")
	body.AppendChild(withText(element(atom.H1, "h1"), title))
	body.AppendChild(diagram(a))
	root.AppendChild(body)

	return doc
}

// WriteHTML renders the diagram page of a to w
func WriteHTML(w io.Writer, a *automaton.Automaton, title string) error {
	if err := html.Render(w, Document(a, title)); err != nil {
		return fmt.Errorf("failed to render diagram: %w", err)
	}
	return nil
}

func diagram(a *automaton.Automaton) *html.Node {
	states := a.States()
	ring := 40.0 * float64(len(states))
	if ring < 120 {
		ring = 120
	}
	size := 2 * (ring + margin)
	center := point{size / 2, size / 2}

	positions := make(map[automaton.State]point, len(states))
	for i, s := range states {
		if len(states) == 1 {
			positions[s] = center
			continue
		}
		angle := -math.Pi/2 + 2*math.Pi*float64(i)/float64(len(states))
		positions[s] = center.add(point{math.Cos(angle), math.Sin(angle)}.scale(ring))
	}

	svg := element(atom.Svg, "svg",
		"xmlns", "http://www.w3.org/2000/svg",
		"width", num(size),
		"height", num(size),
		"viewBox", "0 0 "+num(size)+" "+num(size),
	)
	svg.Namespace = "svg"

	defs := svgElement("defs")
	marker := svgElement("marker",
		"id", "arrow", "viewBox", "0 0 10 10", "refX", "10", "refY", "5",
		"markerWidth", "8", "markerHeight", "8", "orient", "auto-start-reverse")
	marker.AppendChild(svgElement("path", "d", "M 0 0 L 10 5 L 0 10 z", "fill", "#555"))
	defs.AppendChild(marker)
	svg.AppendChild(defs)

	for _, e := range groupEdges(a) {
		svg.AppendChild(drawEdge(e, positions, center))
	}

	for _, s := range states {
		p := positions[s]
		g := svgElement("g", "class", "state", "data-state", string(s))
		g.AppendChild(svgElement("circle",
			"cx", num(p.x), "cy", num(p.y), "r", num(nodeRadius),
			"fill", StateColor(a, s)))
		if a.IsAccepting(s) {
			g.AppendChild(svgElement("circle",
				"cx", num(p.x), "cy", num(p.y), "r", num(nodeRadius-5), "fill", "none"))
		}
		g.AppendChild(withText(svgElement("text", "x", num(p.x), "y", num(p.y)), string(s)))
		svg.AppendChild(g)
	}

	return svg
}

func groupEdges(a *automaton.Automaton) []*edge {
	var edges []*edge
	index := make(map[[2]automaton.State]*edge)
	for _, t := range a.Transitions() {
		key := [2]automaton.State{t.From, t.To}
		e, ok := index[key]
		if !ok {
			e = &edge{from: t.From, to: t.To}
			index[key] = e
			edges = append(edges, e)
		}
		e.symbols = append(e.symbols, string(t.Symbol))
	}
	return edges
}

func drawEdge(e *edge, positions map[automaton.State]point, center point) *html.Node {
	g := svgElement("g", "class", "transition",
		"data-from", string(e.from), "data-to", string(e.to))
	label := strings.Join(e.symbols, ",")

	from, to := positions[e.from], positions[e.to]
	var d string
	var at point

	if e.from == e.to {
		// loop pointing away from the centre of the ring
		out := from.sub(center).unit()
		start := from.add(out.rotate(-0.45).scale(nodeRadius))
		end := from.add(out.rotate(0.45).scale(nodeRadius))
		c1 := from.add(out.rotate(-0.7).scale(nodeRadius * 3))
		c2 := from.add(out.rotate(0.7).scale(nodeRadius * 3))
		d = "M " + start.String() + " C " + c1.String() + " " + c2.String() + " " + end.String()
		at = from.add(out.scale(nodeRadius * 2.7))
	} else {
		// bend to the right so opposite edges do not overlap
		delta := to.sub(from)
		normal := point{-delta.y, delta.x}.unit()
		control := from.add(delta.scale(0.5)).add(normal.scale(delta.length() * 0.15))
		start := from.add(control.sub(from).unit().scale(nodeRadius))
		end := to.add(control.sub(to).unit().scale(nodeRadius))
		d = "M " + start.String() + " Q " + control.String() + " " + end.String()
		at = start.scale(0.25).add(control.scale(0.5)).add(end.scale(0.25))
	}

	g.AppendChild(svgElement("path", "class", "edge", "d", d, "marker-end", "url(#arrow)"))
	g.AppendChild(withText(svgElement("text", "class", "label", "x", num(at.x), "y", num(at.y)), label))
	return g
}

func element(a atom.Atom, tag string, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: tag}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func svgElement(tag string, attrs ...string) *html.Node {
	n := element(0, tag, attrs...)
	n.Namespace = "svg"
	return n
}

func withText(n *html.Node, text string) *html.Node {
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}
