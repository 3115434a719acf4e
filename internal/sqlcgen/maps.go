package sqlcgen

import (
	"context"
)

const getMapDefinition = `-- name: GetMapDefinition :one
SELECT m.id,
       m.name,
       m.group_selector,
       m.options,
       m.width,
       m.height,
       m.center_x,
       m.center_y,
       m.updated_at
FROM map_definitions m
WHERE m.id = $1
`

func (q *Queries) GetMapDefinition(ctx context.Context, id string) (MapDefinition, error) {
	row := q.db.QueryRow(ctx, getMapDefinition, id)
	var i MapDefinition
	err := row.Scan(&i.ID, &i.Name, &i.GroupSelector, &i.Options, &i.Width, &i.Height, &i.CenterX, &i.CenterY, &i.UpdatedAt)
	return i, err
}

const listMapDefinitions = `-- name: ListMapDefinitions :many
SELECT m.id,
       m.name,
       m.group_selector,
       m.options,
       m.width,
       m.height,
       m.center_x,
       m.center_y,
       m.updated_at
FROM map_definitions m
ORDER BY m.name ASC
`

func (q *Queries) ListMapDefinitions(ctx context.Context) ([]MapDefinition, error) {
	rows, err := q.db.Query(ctx, listMapDefinitions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []MapDefinition
	for rows.Next() {
		var i MapDefinition
		if err := rows.Scan(&i.ID, &i.Name, &i.GroupSelector, &i.Options, &i.Width, &i.Height, &i.CenterX, &i.CenterY, &i.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createMapDefinition = `-- name: CreateMapDefinition :one
INSERT INTO map_definitions (name, group_selector, options, width, height, center_x, center_y)
VALUES ($1, $2, COALESCE($3, '{}'::jsonb), $4, $5, $6, $7)
RETURNING id, name, group_selector, options, width, height, center_x, center_y, updated_at
`

type CreateMapDefinitionParams struct {
	Name          string
	GroupSelector *string
	Options       map[string]any
	Width         int32
	Height        int32
	CenterX       int32
	CenterY       int32
}

func (q *Queries) CreateMapDefinition(ctx context.Context, arg CreateMapDefinitionParams) (MapDefinition, error) {
	row := q.db.QueryRow(ctx, createMapDefinition, arg.Name, arg.GroupSelector, arg.Options, arg.Width, arg.Height, arg.CenterX, arg.CenterY)
	var i MapDefinition
	err := row.Scan(&i.ID, &i.Name, &i.GroupSelector, &i.Options, &i.Width, &i.Height, &i.CenterX, &i.CenterY, &i.UpdatedAt)
	return i, err
}

const touchMapDefinition = `-- name: TouchMapDefinition :exec
UPDATE map_definitions
SET updated_at = now()
WHERE id = $1
`

func (q *Queries) TouchMapDefinition(ctx context.Context, id string) error {
	_, err := q.db.Exec(ctx, touchMapDefinition, id)
	return err
}

const deleteMapNodes = `-- name: DeleteMapNodes :exec
DELETE FROM map_nodes
WHERE map_id = $1
`

func (q *Queries) DeleteMapNodes(ctx context.Context, mapID string) error {
	_, err := q.db.Exec(ctx, deleteMapNodes, mapID)
	return err
}

const insertMapNode = `-- name: InsertMapNode :exec
INSERT INTO map_nodes (map_id, node_id, source_id, x, y)
VALUES ($1, $2, $3, $4, $5)
`

type InsertMapNodeParams struct {
	MapID    string
	NodeID   int32
	SourceID *string
	X        float64
	Y        float64
}

func (q *Queries) InsertMapNode(ctx context.Context, arg InsertMapNodeParams) error {
	_, err := q.db.Exec(ctx, insertMapNode, arg.MapID, arg.NodeID, arg.SourceID, arg.X, arg.Y)
	return err
}

const listMapNodes = `-- name: ListMapNodes :many
SELECT n.map_id, n.node_id, n.source_id, n.x, n.y
FROM map_nodes n
WHERE n.map_id = $1
ORDER BY n.node_id ASC
`

func (q *Queries) ListMapNodes(ctx context.Context, mapID string) ([]MapNode, error) {
	rows, err := q.db.Query(ctx, listMapNodes, mapID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []MapNode
	for rows.Next() {
		var i MapNode
		if err := rows.Scan(&i.MapID, &i.NodeID, &i.SourceID, &i.X, &i.Y); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
