package entitysource

import (
	"context"

	"hawkmon/console-go/internal/topology"
)

// StaticSource serves a fixed entity set from memory. It backs tests and
// the empty-map path, where no inventory database is configured.
type StaticSource struct {
	Entities []topology.RawEntity
	Links    topology.LinkTable
	Statuses map[string]topology.Status
}

func (s *StaticSource) ListEntities(_ context.Context, f Filter) ([]topology.RawEntity, error) {
	out := make([]topology.RawEntity, 0, len(s.Entities))
	for _, e := range s.Entities {
		if st, ok := s.Statuses[e.ID]; ok {
			e.Status = st
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *StaticSource) ListSubLinks(context.Context) (topology.LinkTable, error) {
	if s.Links == nil {
		return topology.LinkTable{}, nil
	}
	return s.Links, nil
}

func (s *StaticSource) EntityStatus(_ context.Context, entityID string) (topology.Status, error) {
	if st, ok := s.Statuses[entityID]; ok {
		return st, nil
	}
	return topology.StatusNotInit, nil
}
