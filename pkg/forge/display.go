package forge

import "fmt"

// Fixed display palette. The frontend renders the graph with
// vis-network; these values match its node/edge color options.
const (
	colorNodeBackground = "#8d99ae"
	colorNodeBorder     = "#2b2d42"
	colorHighlightBg    = "#edf2f4"
	colorHighlightBd    = "#ef233c"
	colorEdge           = "#8d99ae"
	colorEdgeHighlight  = "#ef233c"
)

// HighlightStyle carries the background/border pair used for node
// highlight and hover states.
type HighlightStyle struct {
	Background string `json:"background"`
	Border     string `json:"border"`
}

// NodeColor is the vis-network color block attached to every node.
type NodeColor struct {
	Background string         `json:"background"`
	Border     string         `json:"border"`
	Highlight  HighlightStyle `json:"highlight"`
	Hover      HighlightStyle `json:"hover"`
}

// EdgeColor is the vis-network color block attached to every edge.
type EdgeColor struct {
	Color     string `json:"color"`
	Highlight string `json:"highlight"`
	Hover     string `json:"hover"`
}

// FontStyle holds node label font settings.
type FontStyle struct {
	Size int `json:"size"`
}

// DisplayNode is a renderer-facing graph node. The integer id is
// assigned by enumeration order over the concept graph's nodes and has
// no semantic meaning.
type DisplayNode struct {
	ID    int       `json:"id"`
	Label string    `json:"label"`
	Title string    `json:"title"`
	Font  FontStyle `json:"font"`
	Shape string    `json:"shape"`
	Color NodeColor `json:"color"`
}

// DisplayEdge is a renderer-facing graph edge. Width is derived from
// the similarity weight at projection time.
type DisplayEdge struct {
	From  int       `json:"from"`
	To    int       `json:"to"`
	Title string    `json:"title"`
	Width int       `json:"width"`
	Color EdgeColor `json:"color"`
}

// DisplayData is the serializable node/edge payload handed to the
// presentation layer. It is a one-way projection and is never read
// back into a ConceptGraph.
type DisplayData struct {
	Nodes []DisplayNode `json:"nodes"`
	Edges []DisplayEdge `json:"edges"`
}

// ToDisplay projects a concept graph into its renderer-facing form.
// It is pure and total: node ids follow the graph's node order, and
// edge width and title are recomputed from each edge weight.
func ToDisplay(graph *ConceptGraph) DisplayData {
	data := DisplayData{
		Nodes: make([]DisplayNode, 0, len(graph.Nodes)),
		Edges: make([]DisplayEdge, 0, len(graph.Edges)),
	}

	for id, term := range graph.Nodes {
		data.Nodes = append(data.Nodes, DisplayNode{
			ID:    id,
			Label: term,
			Title: term,
			Font:  FontStyle{Size: 16},
			Shape: "dot",
			Color: NodeColor{
				Background: colorNodeBackground,
				Border:     colorNodeBorder,
				Highlight:  HighlightStyle{Background: colorHighlightBg, Border: colorHighlightBd},
				Hover:      HighlightStyle{Background: colorHighlightBg, Border: colorHighlightBd},
			},
		})
	}

	for _, edge := range graph.Edges {
		data.Edges = append(data.Edges, DisplayEdge{
			From:  edge.Source,
			To:    edge.Target,
			Title: fmt.Sprintf("Similarity: %.2f", edge.Weight),
			Width: edgeWidth(edge.Weight),
			Color: EdgeColor{
				Color:     colorEdge,
				Highlight: colorEdgeHighlight,
				Hover:     colorEdgeHighlight,
			},
		})
	}

	return data
}

// edgeWidth maps a similarity weight onto a 1-5 pixel stroke width.
func edgeWidth(weight float64) int {
	width := int(weight*4) + 1
	if width < 1 {
		return 1
	}
	return width
}
