package sqlcgen

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX matches the minimal interface needed from pgxpool.Pool or pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, optionsAndArgs ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, optionsAndArgs ...any) pgx.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

func (q *Queries) WithTx(tx pgx.Tx) *Queries {
	return &Queries{db: tx}
}

const listEntities = `-- name: ListEntities :many
SELECT e.id,
       e.device_id,
       e.sub_id,
       e.type_tag,
       e.label,
       e.parent_ref,
       e.address,
       e.holding,
       e.x,
       e.y
FROM entities e
WHERE ($1::text IS NULL
       OR e.group_selector = $1
       OR ($2 AND e.group_selector LIKE $1 || '.%'))
ORDER BY e.created_at ASC
`

type ListEntitiesParams struct {
	GroupSelector    *string
	IncludeSubgroups bool
}

func (q *Queries) ListEntities(ctx context.Context, arg ListEntitiesParams) ([]Entity, error) {
	rows, err := q.db.Query(ctx, listEntities, arg.GroupSelector, arg.IncludeSubgroups)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Entity
	for rows.Next() {
		var i Entity
		if err := rows.Scan(&i.ID, &i.DeviceID, &i.SubID, &i.TypeTag, &i.Label, &i.ParentRef, &i.Address, &i.Holding, &i.X, &i.Y); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listSubLinks = `-- name: ListSubLinks :many
SELECT l.id,
       l.local_sub,
       l.local_device,
       l.remote_sub,
       l.remote_device,
       l.color
FROM sub_links l
ORDER BY l.created_at ASC
`

func (q *Queries) ListSubLinks(ctx context.Context) ([]SubLink, error) {
	rows, err := q.db.Query(ctx, listSubLinks)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []SubLink
	for rows.Next() {
		var i SubLink
		if err := rows.Scan(&i.ID, &i.LocalSub, &i.LocalDevice, &i.RemoteSub, &i.RemoteDevice, &i.Color); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getEntityStatus = `-- name: GetEntityStatus :one
SELECT s.status
FROM entity_status s
WHERE s.entity_id = $1
`

func (q *Queries) GetEntityStatus(ctx context.Context, entityID string) (string, error) {
	row := q.db.QueryRow(ctx, getEntityStatus, entityID)
	var status string
	err := row.Scan(&status)
	return status, err
}

const upsertEntityStatus = `-- name: UpsertEntityStatus :exec
INSERT INTO entity_status (entity_id, status, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (entity_id)
DO UPDATE SET status = EXCLUDED.status, updated_at = now()
`

type UpsertEntityStatusParams struct {
	EntityID string
	Status   string
}

func (q *Queries) UpsertEntityStatus(ctx context.Context, arg UpsertEntityStatusParams) error {
	_, err := q.db.Exec(ctx, upsertEntityStatus, arg.EntityID, arg.Status)
	return err
}

const listDeviceTargets = `-- name: ListDeviceTargets :many
SELECT e.id, e.address
FROM entities e
WHERE e.device_id IS NOT NULL
  AND e.address IS NOT NULL
ORDER BY e.created_at ASC
`

func (q *Queries) ListDeviceTargets(ctx context.Context) ([]DeviceTarget, error) {
	rows, err := q.db.Query(ctx, listDeviceTargets)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []DeviceTarget
	for rows.Next() {
		var i DeviceTarget
		if err := rows.Scan(&i.EntityID, &i.Address); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listUnlabeledDeviceTargets = `-- name: ListUnlabeledDeviceTargets :many
SELECT e.id, e.address
FROM entities e
WHERE e.device_id IS NOT NULL
  AND e.address IS NOT NULL
  AND (e.label IS NULL OR e.label = '')
ORDER BY e.created_at ASC
`

func (q *Queries) ListUnlabeledDeviceTargets(ctx context.Context) ([]DeviceTarget, error) {
	rows, err := q.db.Query(ctx, listUnlabeledDeviceTargets)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []DeviceTarget
	for rows.Next() {
		var i DeviceTarget
		if err := rows.Scan(&i.EntityID, &i.Address); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const setEntityLabelIfUnset = `-- name: SetEntityLabelIfUnset :execrows
UPDATE entities
SET label = $2
WHERE id = $1
  AND (label IS NULL OR label = '')
`

type SetEntityLabelIfUnsetParams struct {
	EntityID string
	Label    string
}

func (q *Queries) SetEntityLabelIfUnset(ctx context.Context, arg SetEntityLabelIfUnsetParams) (int64, error) {
	tag, err := q.db.Exec(ctx, setEntityLabelIfUnset, arg.EntityID, arg.Label)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
