package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

const (
	MaxGraphNodes = 10
	MaxGraphEdges = 14
)

type Node struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

type Edge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label"`
}

// Graph is the case diagram returned for a DiagramPrompt.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// ParseGraph decodes a model reply as strict JSON. Surrounding whitespace is
// allowed, code fences and trailing text are not. Nodes and edges beyond the
// prompt's limits are dropped.
func ParseGraph(text string) (*Graph, error) {
	dec := json.NewDecoder(strings.NewReader(strings.TrimSpace(text)))

	var raw struct {
		Nodes *[]Node `json:"nodes"`
		Edges *[]Edge `json:"edges"`
	}
	if err := dec.Decode(&raw); err != nil {
		return nil, newError(ErrCodeBadOutput, "diagram is not valid JSON", err)
	}
	if dec.More() {
		return nil, newError(ErrCodeBadOutput, "diagram has trailing content", nil)
	}
	if raw.Nodes == nil || raw.Edges == nil {
		return nil, newError(ErrCodeBadOutput, "diagram needs nodes and edges arrays", nil)
	}

	graph := &Graph{Nodes: *raw.Nodes, Edges: *raw.Edges}
	if len(graph.Nodes) > MaxGraphNodes {
		graph.Nodes = graph.Nodes[:MaxGraphNodes]
	}
	if len(graph.Edges) > MaxGraphEdges {
		graph.Edges = graph.Edges[:MaxGraphEdges]
	}
	return graph, nil
}

// JSON renders the graph indented for printing.
func (g *Graph) JSON() (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return "", fmt.Errorf("encode diagram: %w", err)
	}
	return buf.String(), nil
}
