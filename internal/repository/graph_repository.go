package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"alexandria-server/internal/domain"
)

// PostgresGraphRepository stores the knowledge graph in nodes/relationships.
type PostgresGraphRepository struct {
	db *sql.DB
}

func NewPostgresGraphRepository(db *sql.DB) *PostgresGraphRepository {
	return &PostgresGraphRepository{db: db}
}

// Load returns every node and relationship.
func (r *PostgresGraphRepository) Load(ctx context.Context) (*domain.GraphData, error) {
	data := &domain.GraphData{
		Nodes: []domain.GraphNode{},
		Edges: []domain.GraphEdge{},
	}

	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM nodes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	for rows.Next() {
		var (
			id   int64
			name sql.NullString
		)
		if err := rows.Scan(&id, &name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("db error: %w", err)
		}
		node := splitNodeName(name.String)
		node.ID = id
		data.Nodes = append(data.Nodes, node)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("db error: %w", err)
	}
	rows.Close()

	rows, err = r.db.QueryContext(ctx, `SELECT id, source, target, label FROM relationships ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			edge  domain.GraphEdge
			label sql.NullString
		)
		if err := rows.Scan(&edge.ID, &edge.From, &edge.To, &label); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		edge.Label = label.String
		data.Edges = append(data.Edges, edge)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return data, nil
}

// Save inserts nodes (ignoring duplicates) and the relationships between them
// in one transaction.
func (r *PostgresGraphRepository) Save(ctx context.Context, graph *domain.ExtractedGraph) (*domain.GraphExtraction, error) {
	result := &domain.GraphExtraction{}

	storedNames := make(map[string]string, len(graph.Nodes))
	for _, n := range graph.Nodes {
		storedNames[n.ID] = n.StoredName()
	}
	resolve := func(ref string) string {
		if name, ok := storedNames[ref]; ok {
			return name
		}
		return ref
	}

	err := WithTx(ctx, r.db, func(ctx context.Context, tx DBTX) error {
		for _, n := range graph.Nodes {
			res, err := tx.ExecContext(ctx,
				`INSERT INTO nodes (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`,
				n.StoredName())
			if err != nil {
				return fmt.Errorf("insert node: %w", err)
			}
			if affected, err := res.RowsAffected(); err == nil {
				result.NodesAdded += int(affected)
			}
		}

		ids := make(map[string]int64)
		lookup := func(name string) (int64, bool, error) {
			if id, ok := ids[name]; ok {
				return id, true, nil
			}
			var id int64
			err := tx.QueryRowContext(ctx, `SELECT id FROM nodes WHERE name = $1`, name).Scan(&id)
			if errors.Is(err, sql.ErrNoRows) {
				return 0, false, nil
			}
			if err != nil {
				return 0, false, fmt.Errorf("lookup node: %w", err)
			}
			ids[name] = id
			return id, true, nil
		}

		for _, rel := range graph.Relationships {
			src, ok, err := lookup(resolve(rel.Source))
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			tgt, ok, err := lookup(resolve(rel.Target))
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			label := rel.Type
			if label == "" {
				label = "related"
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO relationships (source, target, label) VALUES ($1, $2, $3)`,
				src, tgt, label); err != nil {
				return fmt.Errorf("insert relationship: %w", err)
			}
			result.RelationshipsAdded++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// splitNodeName turns "Name (Type)" into name and type.
func splitNodeName(stored string) domain.GraphNode {
	if i := strings.LastIndex(stored, "("); i >= 0 && strings.HasSuffix(stored, ")") {
		typ := strings.TrimSpace(stored[i+1 : len(stored)-1])
		return domain.GraphNode{Name: strings.TrimSpace(stored[:i]), Type: &typ}
	}
	return domain.GraphNode{Name: stored}
}
