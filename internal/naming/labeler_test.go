package naming

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"hawkmon/console-go/internal/sqlcgen"
)

type fakeLabelQueries struct {
	listFn func(ctx context.Context) ([]sqlcgen.DeviceTarget, error)
	setFn  func(ctx context.Context, arg sqlcgen.SetEntityLabelIfUnsetParams) (int64, error)
}

func (f *fakeLabelQueries) ListUnlabeledDeviceTargets(ctx context.Context) ([]sqlcgen.DeviceTarget, error) {
	if f.listFn == nil {
		return nil, nil
	}
	return f.listFn(ctx)
}

func (f *fakeLabelQueries) SetEntityLabelIfUnset(ctx context.Context, arg sqlcgen.SetEntityLabelIfUnsetParams) (int64, error) {
	if f.setFn == nil {
		return 0, nil
	}
	return f.setFn(ctx, arg)
}

func TestLabeler_NoResolverConfiguredWritesNothing(t *testing.T) {
	writes := 0
	q := &fakeLabelQueries{
		listFn: func(context.Context) ([]sqlcgen.DeviceTarget, error) {
			return []sqlcgen.DeviceTarget{{EntityID: "a", Address: "10.0.0.1"}}, nil
		},
		setFn: func(context.Context, sqlcgen.SetEntityLabelIfUnsetParams) (int64, error) {
			writes++
			return 1, nil
		},
	}
	// An empty resolver server means every lookup reports no result.
	l := NewLabeler(zerolog.Nop(), q, NewResolver("", 0), 0)

	l.pass(context.Background())

	if writes != 0 {
		t.Fatalf("labeler wrote %d labels without a resolver", writes)
	}
}

func TestLabeler_ListFailureIsLoggedNotFatal(t *testing.T) {
	q := &fakeLabelQueries{
		listFn: func(context.Context) ([]sqlcgen.DeviceTarget, error) {
			return nil, errors.New("db down")
		},
	}
	l := NewLabeler(zerolog.Nop(), q, NewResolver("", 0), 0)

	// Must simply return; the next tick retries.
	l.pass(context.Background())
}
