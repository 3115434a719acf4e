// Package entitysource supplies raw monitored entities and their declared
// relationships to the map-building pipeline.
package entitysource

import (
	"context"

	"hawkmon/console-go/internal/topology"
)

// Filter narrows the entity listing for one map build.
type Filter struct {
	GroupSelector    *string
	IncludeSubgroups bool
}

// Source is the inventory boundary the pipeline consumes.
type Source interface {
	// ListEntities returns the raw entities matching the filter. An
	// unavailable backend returns an error; callers degrade to an empty
	// node set and report it.
	ListEntities(ctx context.Context, f Filter) ([]topology.RawEntity, error)

	// ListSubLinks returns the configured sub-component links, indexed by
	// declaring device id.
	ListSubLinks(ctx context.Context) (topology.LinkTable, error)

	// EntityStatus returns the current health state of one entity.
	EntityStatus(ctx context.Context, entityID string) (topology.Status, error)
}

// ParseStatus maps a stored status string onto the ordinal scale. Unknown
// strings map to StatusUnknown rather than failing the build.
func ParseStatus(s string) topology.Status {
	switch s {
	case "normal", "ok":
		return topology.StatusNormal
	case "not_init":
		return topology.StatusNotInit
	case "warning":
		return topology.StatusWarning
	case "critical":
		return topology.StatusCritical
	case "alert_fired":
		return topology.StatusAlertFired
	default:
		return topology.StatusUnknown
	}
}
