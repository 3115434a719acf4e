package statuspoll

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"hawkmon/console-go/internal/sqlcgen"
)

type fakeQueries struct {
	listFn   func(ctx context.Context) ([]sqlcgen.DeviceTarget, error)
	upsertFn func(ctx context.Context, arg sqlcgen.UpsertEntityStatusParams) error
}

func (f *fakeQueries) ListDeviceTargets(ctx context.Context) ([]sqlcgen.DeviceTarget, error) {
	if f.listFn == nil {
		return nil, nil
	}
	return f.listFn(ctx)
}

func (f *fakeQueries) UpsertEntityStatus(ctx context.Context, arg sqlcgen.UpsertEntityStatusParams) error {
	if f.upsertFn == nil {
		return nil
	}
	return f.upsertFn(ctx, arg)
}

func TestNew_Defaults(t *testing.T) {
	p := New(zerolog.Nop(), &fakeQueries{}, Options{}, nil)

	if p.interval != time.Minute {
		t.Fatalf("interval %v, want 1m", p.interval)
	}
	if p.workers != 8 {
		t.Fatalf("workers %d, want 8", p.workers)
	}
	if p.community != "public" {
		t.Fatalf("community %q, want public", p.community)
	}
	if p.port != 161 {
		t.Fatalf("port %d, want 161", p.port)
	}
	if p.timeout != 900*time.Millisecond {
		t.Fatalf("timeout %v, want 900ms", p.timeout)
	}
}

func TestBackoffDuration(t *testing.T) {
	base := time.Minute
	cases := []struct {
		failures int
		want     time.Duration
	}{
		{0, time.Minute},
		{1, 2 * time.Minute},
		{2, 4 * time.Minute},
		{4, 15 * time.Minute},
		{10, 15 * time.Minute},
	}
	for _, tc := range cases {
		if got := backoffDuration(base, tc.failures); got != tc.want {
			t.Errorf("backoffDuration(%v, %d) = %v, want %v", base, tc.failures, got, tc.want)
		}
	}
}

func TestSweep_NoTargetsIsNoop(t *testing.T) {
	upserts := 0
	q := &fakeQueries{
		upsertFn: func(context.Context, sqlcgen.UpsertEntityStatusParams) error {
			upserts++
			return nil
		},
	}
	p := New(zerolog.Nop(), q, Options{}, nil)

	if err := p.sweep(context.Background()); err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if upserts != 0 {
		t.Fatalf("sweep wrote %d statuses with no targets", upserts)
	}
}

func TestSweep_ListFailurePropagates(t *testing.T) {
	boom := errors.New("db down")
	q := &fakeQueries{
		listFn: func(context.Context) ([]sqlcgen.DeviceTarget, error) {
			return nil, boom
		},
	}
	p := New(zerolog.Nop(), q, Options{}, nil)

	if err := p.sweep(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want the listing failure", err)
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	p := New(zerolog.Nop(), &fakeQueries{}, Options{Interval: time.Hour}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
