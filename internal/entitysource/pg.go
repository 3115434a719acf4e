package entitysource

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"hawkmon/console-go/internal/sqlcgen"
	"hawkmon/console-go/internal/topology"
)

// Queries is the minimal DB interface the Postgres source needs.
// *sqlcgen.Queries satisfies this.
type Queries interface {
	ListEntities(ctx context.Context, arg sqlcgen.ListEntitiesParams) ([]sqlcgen.Entity, error)
	ListSubLinks(ctx context.Context) ([]sqlcgen.SubLink, error)
	GetEntityStatus(ctx context.Context, entityID string) (string, error)
}

// PGSource reads entities from the inventory database.
type PGSource struct {
	q Queries
}

func NewPGSource(q Queries) *PGSource {
	return &PGSource{q: q}
}

func (s *PGSource) ListEntities(ctx context.Context, f Filter) ([]topology.RawEntity, error) {
	rows, err := s.q.ListEntities(ctx, sqlcgen.ListEntitiesParams{
		GroupSelector:    f.GroupSelector,
		IncludeSubgroups: f.IncludeSubgroups,
	})
	if err != nil {
		return nil, fmt.Errorf("list entities: %w", err)
	}

	out := make([]topology.RawEntity, 0, len(rows))
	for _, row := range rows {
		e := topology.RawEntity{
			ID:      row.ID,
			Holding: row.Holding,
			X:       row.X,
			Y:       row.Y,
			Status:  topology.StatusUnknown,
		}
		if row.DeviceID != nil {
			e.DeviceID = *row.DeviceID
		}
		if row.SubID != nil {
			e.SubID = *row.SubID
		}
		if row.TypeTag != nil {
			e.TypeTag = *row.TypeTag
		}
		if row.Label != nil {
			e.Label = *row.Label
		}
		if row.ParentRef != nil {
			e.ParentRef = *row.ParentRef
		}

		status, err := s.q.GetEntityStatus(ctx, row.ID)
		switch {
		case err == nil:
			e.Status = ParseStatus(status)
		case errors.Is(err, pgx.ErrNoRows):
			e.Status = topology.StatusNotInit
		default:
			return nil, fmt.Errorf("entity status %s: %w", row.ID, err)
		}

		out = append(out, e)
	}
	return out, nil
}

func (s *PGSource) ListSubLinks(ctx context.Context) (topology.LinkTable, error) {
	rows, err := s.q.ListSubLinks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sub links: %w", err)
	}

	table := make(topology.LinkTable)
	for _, row := range rows {
		l := topology.SubLink{
			LocalSub:     row.LocalSub,
			LocalDevice:  row.LocalDevice,
			RemoteSub:    row.RemoteSub,
			RemoteDevice: row.RemoteDevice,
		}
		if row.Color != nil {
			l.Color = *row.Color
		}
		table[l.LocalDevice] = append(table[l.LocalDevice], l)

		// Index the mirrored direction so the remote device resolves the
		// same link from its own side.
		mirrored := topology.SubLink{
			LocalSub:     row.RemoteSub,
			LocalDevice:  row.RemoteDevice,
			RemoteSub:    row.LocalSub,
			RemoteDevice: row.LocalDevice,
			Color:        l.Color,
		}
		table[mirrored.LocalDevice] = append(table[mirrored.LocalDevice], mirrored)
	}
	return table, nil
}

func (s *PGSource) EntityStatus(ctx context.Context, entityID string) (topology.Status, error) {
	status, err := s.q.GetEntityStatus(ctx, entityID)
	if errors.Is(err, pgx.ErrNoRows) {
		return topology.StatusNotInit, nil
	}
	if err != nil {
		return topology.StatusUnknown, fmt.Errorf("entity status %s: %w", entityID, err)
	}
	return ParseStatus(status), nil
}
