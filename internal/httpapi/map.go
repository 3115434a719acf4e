package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"hawkmon/console-go/internal/entitysource"
	"hawkmon/console-go/internal/layout"
	"hawkmon/console-go/internal/render"
	"hawkmon/console-go/internal/sqlcgen"
	"hawkmon/console-go/internal/topology"
)

type mapDefinition struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	GroupSelector *string        `json:"group_selector,omitempty"`
	Options       map[string]any `json:"options,omitempty"`
	Width         int32          `json:"width"`
	Height        int32          `json:"height"`
	CenterX       int32          `json:"center_x"`
	CenterY       int32          `json:"center_y"`
}

type mapCreate struct {
	Name          string         `json:"name"`
	GroupSelector *string        `json:"group_selector,omitempty"`
	Options       map[string]any `json:"options,omitempty"`
	Width         int32          `json:"width,omitempty"`
	Height        int32          `json:"height,omitempty"`
	CenterX       int32          `json:"center_x,omitempty"`
	CenterY       int32          `json:"center_y,omitempty"`
}

func toMapDefinition(d sqlcgen.MapDefinition) mapDefinition {
	return mapDefinition{
		ID:            d.ID,
		Name:          d.Name,
		GroupSelector: d.GroupSelector,
		Options:       d.Options,
		Width:         d.Width,
		Height:        d.Height,
		CenterX:       d.CenterX,
		CenterY:       d.CenterY,
	}
}

// optionsFromDefinition merges the stored JSON option bag over the
// defaults. Unknown keys are ignored; bad value types fall back to the
// default rather than failing the build.
func optionsFromDefinition(d sqlcgen.MapDefinition) topology.Options {
	opts := topology.DefaultOptions()
	if d.Width > 0 {
		opts.Width = int(d.Width)
	}
	if d.Height > 0 {
		opts.Height = int(d.Height)
	}
	opts.CenterX = int(d.CenterX)
	opts.CenterY = int(d.CenterY)

	raw := d.Options
	if raw == nil {
		return opts
	}
	if v, ok := raw["algorithm"].(string); ok {
		if a := topology.Algorithm(strings.ToLower(v)); a.Valid() {
			opts.Algorithm = a
		}
	}
	if v, ok := raw["radius"].(float64); ok && v > 0 {
		opts.Radius = v
	}
	if v, ok := raw["spacing"].(float64); ok && v > 0 {
		opts.Spacing = v
	}
	if v, ok := raw["zoom"].(float64); ok && v > 0 {
		opts.Zoom = v
	}
	if v, ok := raw["text_filter"].(string); ok {
		opts.TextFilter = v
	}
	if v, ok := raw["include_subgroups"].(bool); ok {
		opts.IncludeSubgroups = v
	}
	if v, ok := raw["no_root"].(bool); ok {
		opts.NoRoot = v
	}
	if v, ok := raw["empty_map"].(bool); ok {
		opts.EmptyMap = v
	}
	return opts
}

// buildMap runs the full pipeline for one stored definition: entities →
// graph → external layout → post-process. Layout failures surface as-is;
// no partially-coordinated graph is ever returned.
func (h *Handler) buildMap(ctx context.Context, def sqlcgen.MapDefinition) (topology.Graph, error) {
	opts := optionsFromDefinition(def)

	var (
		entities []topology.RawEntity
		links    topology.LinkTable
	)
	if !opts.EmptyMap {
		var err error
		entities, err = h.source.ListEntities(ctx, entitysource.Filter{
			GroupSelector:    def.GroupSelector,
			IncludeSubgroups: opts.IncludeSubgroups,
		})
		if err != nil {
			return topology.Graph{}, err
		}
		links, err = h.source.ListSubLinks(ctx)
		if err != nil {
			return topology.Graph{}, err
		}
	}

	g := topology.BuildGraph(entities, links, opts)
	h.metrics.IncMapBuild()

	if len(g.Nodes) > 0 {
		doc := topology.GraphDescription(g, opts)

		start := time.Now()
		res, err := h.engine.Layout(ctx, doc, opts.Algorithm)
		if err != nil {
			h.metrics.ObserveLayoutRun(string(opts.Algorithm), "error", time.Since(start))
			return topology.Graph{}, err
		}
		h.metrics.ObserveLayoutRun(string(opts.Algorithm), "ok", time.Since(start))

		g = topology.SetCoordinates(g, res.Coords, res.Scale)
	}

	return topology.PostProcess(g, opts), nil
}

// writeBuildError maps pipeline failures onto responses. Nothing is
// rendered on failure; stale or partial coordinates never reach the
// client.
func (h *Handler) writeBuildError(w http.ResponseWriter, mapID string, err error) {
	switch {
	case errors.Is(err, layout.ErrLayoutTool), errors.Is(err, layout.ErrLayoutParse):
		h.log.Error().Err(err).Str("map_id", mapID).Msg("map layout failed")
		h.writeError(w, http.StatusBadGateway, "layout_failed", "layout tool failed", nil)
	default:
		h.log.Error().Err(err).Str("map_id", mapID).Msg("entity source unavailable")
		h.writeError(w, http.StatusServiceUnavailable, "entity_source_unavailable", "failed to load entities", nil)
	}
}

func (h *Handler) loadDefinition(w http.ResponseWriter, r *http.Request) (sqlcgen.MapDefinition, bool) {
	id := chi.URLParam(r, "id")
	def, err := h.maps.GetMapDefinition(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			h.writeError(w, http.StatusNotFound, "not_found", "map not found", map[string]any{"id": id})
		case isInvalidUUID(err):
			h.writeError(w, http.StatusBadRequest, "invalid_id", "map id is not a valid uuid", map[string]any{"id": id})
		default:
			h.log.Error().Err(err).Str("id", id).Msg("get map definition failed")
			h.writeError(w, http.StatusInternalServerError, "db_error", "failed to fetch map", nil)
		}
		return sqlcgen.MapDefinition{}, false
	}
	return def, true
}

func (h *Handler) handleListMaps(w http.ResponseWriter, r *http.Request) {
	if !h.ensureMaps(w) {
		return
	}

	rows, err := h.maps.ListMapDefinitions(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list maps failed")
		h.writeError(w, http.StatusInternalServerError, "db_error", "failed to list maps", nil)
		return
	}

	resp := make([]mapDefinition, 0, len(rows))
	for _, d := range rows {
		resp = append(resp, toMapDefinition(d))
	}

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleCreateMap(w http.ResponseWriter, r *http.Request) {
	var req mapCreate
	if err := decodeJSONStrict(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "validation_failed", "invalid json body", map[string]any{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		h.writeError(w, http.StatusBadRequest, "validation_failed", "name is required", nil)
		return
	}

	if !h.ensureMaps(w) {
		return
	}

	width, height := req.Width, req.Height
	if width <= 0 {
		width = 900
	}
	if height <= 0 {
		height = 600
	}

	row, err := h.maps.CreateMapDefinition(r.Context(), sqlcgen.CreateMapDefinitionParams{
		Name:          strings.TrimSpace(req.Name),
		GroupSelector: req.GroupSelector,
		Options:       req.Options,
		Width:         width,
		Height:        height,
		CenterX:       req.CenterX,
		CenterY:       req.CenterY,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("create map failed")
		h.writeError(w, http.StatusInternalServerError, "db_error", "failed to create map", nil)
		return
	}

	h.writeJSON(w, http.StatusCreated, toMapDefinition(row))
}

func (h *Handler) handleGetMap(w http.ResponseWriter, r *http.Request) {
	if !h.ensureMaps(w) {
		return
	}
	def, ok := h.loadDefinition(w, r)
	if !ok {
		return
	}

	g, err := h.buildMap(r.Context(), def)
	if err != nil {
		h.writeBuildError(w, def.ID, err)
		return
	}

	h.writeJSON(w, http.StatusOK, render.Build(g))
}

func (h *Handler) handleRegenerateMap(w http.ResponseWriter, r *http.Request) {
	if !h.ensureMaps(w) {
		return
	}
	if h.pool == nil {
		h.writeError(w, http.StatusServiceUnavailable, "db_unavailable", "database not configured", nil)
		return
	}
	def, ok := h.loadDefinition(w, r)
	if !ok {
		return
	}

	g, err := h.buildMap(r.Context(), def)
	if err != nil {
		h.writeBuildError(w, def.ID, err)
		return
	}

	// Replace the stored node set in one transaction so concurrent readers
	// never see a half-written map.
	err = h.pool.WithTx(r.Context(), func(q *sqlcgen.Queries) error {
		if err := q.DeleteMapNodes(r.Context(), def.ID); err != nil {
			return err
		}
		for _, n := range g.Nodes {
			var sourceID *string
			if n.SourceID != "" {
				s := n.SourceID
				sourceID = &s
			}
			if err := q.InsertMapNode(r.Context(), sqlcgen.InsertMapNodeParams{
				MapID:    def.ID,
				NodeID:   int32(n.ID),
				SourceID: sourceID,
				X:        n.X,
				Y:        n.Y,
			}); err != nil {
				return err
			}
		}
		return q.TouchMapDefinition(r.Context(), def.ID)
	})
	if err != nil {
		h.log.Error().Err(err).Str("map_id", def.ID).Msg("persist regenerated map failed")
		h.writeError(w, http.StatusInternalServerError, "db_error", "failed to persist map", nil)
		return
	}

	h.writeJSON(w, http.StatusOK, render.Build(g))
}

type mapNodePayload struct {
	NodeID   int32   `json:"node_id"`
	SourceID *string `json:"source_id,omitempty"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

// handleGetMapNodes returns the node positions persisted by the last
// regenerate, without running the pipeline again.
func (h *Handler) handleGetMapNodes(w http.ResponseWriter, r *http.Request) {
	if !h.ensureMaps(w) {
		return
	}
	if h.pool == nil {
		h.writeError(w, http.StatusServiceUnavailable, "db_unavailable", "database not configured", nil)
		return
	}
	def, ok := h.loadDefinition(w, r)
	if !ok {
		return
	}

	rows, err := h.pool.Queries().ListMapNodes(r.Context(), def.ID)
	if err != nil {
		h.log.Error().Err(err).Str("map_id", def.ID).Msg("list map nodes failed")
		h.writeError(w, http.StatusInternalServerError, "db_error", "failed to list map nodes", nil)
		return
	}

	resp := make([]mapNodePayload, 0, len(rows))
	for _, n := range rows {
		resp = append(resp, mapNodePayload{
			NodeID:   n.NodeID,
			SourceID: n.SourceID,
			X:        n.X,
			Y:        n.Y,
		})
	}

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetMapHTML(w http.ResponseWriter, r *http.Request) {
	if !h.ensureMaps(w) {
		return
	}
	def, ok := h.loadDefinition(w, r)
	if !ok {
		return
	}

	g, err := h.buildMap(r.Context(), def)
	if err != nil {
		h.writeBuildError(w, def.ID, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.HTML(w, g, def.Name); err != nil {
		h.log.Error().Err(err).Str("map_id", def.ID).Msg("render map html failed")
	}
}
