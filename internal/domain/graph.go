package domain

import "context"

// GraphNode is a knowledge-graph node as served to the visualizer.
type GraphNode struct {
	ID   int64   `json:"id"`
	Name string  `json:"name"`
	Type *string `json:"type"`
}

// GraphEdge is a labelled relationship between two nodes.
type GraphEdge struct {
	ID    int64  `json:"id"`
	From  int64  `json:"from"`
	To    int64  `json:"to"`
	Label string `json:"label"`
}

// GraphData is the body of GET /api/graph-data.
type GraphData struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// ExtractedNode is a node proposed by the model.
type ExtractedNode struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// StoredName is the persisted node name, "Name (Type)" when a type is known.
func (n ExtractedNode) StoredName() string {
	if n.Type == "" {
		return n.ID
	}
	return n.ID + " (" + n.Type + ")"
}

// ExtractedRelationship is a relationship proposed by the model.
type ExtractedRelationship struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
}

// ExtractedGraph is the strict shape of the model's graph answer.
type ExtractedGraph struct {
	Nodes         []ExtractedNode         `json:"nodes"`
	Relationships []ExtractedRelationship `json:"relationships"`
}

// GraphExtraction reports what an extraction wrote.
type GraphExtraction struct {
	NodesAdded         int `json:"nodes_added"`
	RelationshipsAdded int `json:"relationships_added"`
}

// GraphRepository persists the knowledge graph.
type GraphRepository interface {
	Load(ctx context.Context) (*GraphData, error)
	Save(ctx context.Context, graph *ExtractedGraph) (*GraphExtraction, error)
}

// GraphService extracts and serves the knowledge graph.
type GraphService interface {
	GraphData(ctx context.Context) (*GraphData, error)
	Extract(ctx context.Context, text string) (*GraphExtraction, error)
}
