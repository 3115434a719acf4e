package entitysource

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"

	"hawkmon/console-go/internal/sqlcgen"
	"hawkmon/console-go/internal/topology"
)

type fakeSourceQueries struct {
	listFn   func(ctx context.Context, arg sqlcgen.ListEntitiesParams) ([]sqlcgen.Entity, error)
	linksFn  func(ctx context.Context) ([]sqlcgen.SubLink, error)
	statusFn func(ctx context.Context, entityID string) (string, error)
}

func (f *fakeSourceQueries) ListEntities(ctx context.Context, arg sqlcgen.ListEntitiesParams) ([]sqlcgen.Entity, error) {
	if f.listFn == nil {
		return nil, nil
	}
	return f.listFn(ctx, arg)
}

func (f *fakeSourceQueries) ListSubLinks(ctx context.Context) ([]sqlcgen.SubLink, error) {
	if f.linksFn == nil {
		return nil, nil
	}
	return f.linksFn(ctx)
}

func (f *fakeSourceQueries) GetEntityStatus(ctx context.Context, entityID string) (string, error) {
	if f.statusFn == nil {
		return "", pgx.ErrNoRows
	}
	return f.statusFn(ctx, entityID)
}

func strptr(s string) *string { return &s }

func TestParseStatus(t *testing.T) {
	cases := []struct {
		in   string
		want topology.Status
	}{
		{"normal", topology.StatusNormal},
		{"ok", topology.StatusNormal},
		{"not_init", topology.StatusNotInit},
		{"warning", topology.StatusWarning},
		{"critical", topology.StatusCritical},
		{"alert_fired", topology.StatusAlertFired},
		{"whatever", topology.StatusUnknown},
		{"", topology.StatusUnknown},
	}
	for _, tc := range cases {
		if got := ParseStatus(tc.in); got != tc.want {
			t.Errorf("ParseStatus(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestPGSource_ListEntities_MapsRowsAndStatuses(t *testing.T) {
	q := &fakeSourceQueries{
		listFn: func(_ context.Context, arg sqlcgen.ListEntitiesParams) ([]sqlcgen.Entity, error) {
			if arg.GroupSelector == nil || *arg.GroupSelector != "dc1" {
				t.Fatalf("group selector not passed through: %v", arg.GroupSelector)
			}
			if !arg.IncludeSubgroups {
				t.Fatal("subgroup flag not passed through")
			}
			return []sqlcgen.Entity{
				{ID: "a", DeviceID: strptr("a"), Label: strptr("alpha")},
				{ID: "m", DeviceID: strptr("a"), SubID: strptr("eth0"), Label: strptr("eth0")},
				{ID: "fresh", DeviceID: strptr("fresh")},
			}, nil
		},
		statusFn: func(_ context.Context, entityID string) (string, error) {
			switch entityID {
			case "a":
				return "critical", nil
			case "m":
				return "normal", nil
			default:
				return "", pgx.ErrNoRows
			}
		},
	}

	src := NewPGSource(q)
	sel := "dc1"
	got, err := src.ListEntities(context.Background(), Filter{GroupSelector: &sel, IncludeSubgroups: true})
	if err != nil {
		t.Fatalf("ListEntities: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("got %d entities, want 3", len(got))
	}
	if got[0].Status != topology.StatusCritical {
		t.Fatalf("entity a status %v, want critical", got[0].Status)
	}
	if got[1].SubID != "eth0" || got[1].Classify() != topology.SubComponent {
		t.Fatalf("entity m not mapped to a sub-component: %+v", got[1])
	}
	if got[2].Status != topology.StatusNotInit {
		t.Fatalf("unmonitored entity status %v, want not_init", got[2].Status)
	}
}

func TestPGSource_ListSubLinks_IndexesBothDirections(t *testing.T) {
	q := &fakeSourceQueries{
		linksFn: func(context.Context) ([]sqlcgen.SubLink, error) {
			return []sqlcgen.SubLink{
				{LocalSub: "eth0", LocalDevice: "a", RemoteSub: "eth1", RemoteDevice: "b", Color: strptr("#112233")},
			}, nil
		},
	}

	src := NewPGSource(q)
	table, err := src.ListSubLinks(context.Background())
	if err != nil {
		t.Fatalf("ListSubLinks: %v", err)
	}

	if len(table["a"]) != 1 || len(table["b"]) != 1 {
		t.Fatalf("link not indexed on both sides: %+v", table)
	}
	forward, mirrored := table["a"][0], table["b"][0]
	if forward.RemoteDevice != "b" || mirrored.RemoteDevice != "a" {
		t.Fatalf("mirrored direction wrong: %+v / %+v", forward, mirrored)
	}
	if mirrored.LocalSub != "eth1" || mirrored.Color != "#112233" {
		t.Fatalf("mirrored entry lost fields: %+v", mirrored)
	}
}

func TestPGSource_EntityStatus_NoRowsIsNotInit(t *testing.T) {
	src := NewPGSource(&fakeSourceQueries{})

	st, err := src.EntityStatus(context.Background(), "x")
	if err != nil {
		t.Fatalf("EntityStatus: %v", err)
	}
	if st != topology.StatusNotInit {
		t.Fatalf("status %v, want not_init", st)
	}
}
