package naming

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"hawkmon/console-go/internal/sqlcgen"
)

// Queries is the minimal DB interface the labeler needs.
// *sqlcgen.Queries satisfies this.
type Queries interface {
	ListUnlabeledDeviceTargets(ctx context.Context) ([]sqlcgen.DeviceTarget, error)
	SetEntityLabelIfUnset(ctx context.Context, arg sqlcgen.SetEntityLabelIfUnsetParams) (int64, error)
}

// Labeler backfills display labels for devices that were discovered by
// address only. It resolves PTR records and writes the shortened
// hostname back, never overwriting a label set by an operator.
type Labeler struct {
	log      zerolog.Logger
	q        Queries
	resolver *Resolver
	interval time.Duration
}

func NewLabeler(log zerolog.Logger, q Queries, resolver *Resolver, interval time.Duration) *Labeler {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &Labeler{
		log:      log.With().Str("component", "labeler").Logger(),
		q:        q,
		resolver: resolver,
		interval: interval,
	}
}

func (l *Labeler) Run(ctx context.Context) {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.pass(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.pass(ctx)
		}
	}
}

func (l *Labeler) pass(ctx context.Context) {
	targets, err := l.q.ListUnlabeledDeviceTargets(ctx)
	if err != nil {
		l.log.Error().Err(err).Msg("list unlabeled targets failed")
		return
	}
	if len(targets) == 0 {
		return
	}

	labeled := 0
	for _, t := range targets {
		if ctx.Err() != nil {
			return
		}
		label, ok, err := l.resolver.LookupLabel(ctx, t.Address)
		if err != nil {
			l.log.Debug().Err(err).Str("address", t.Address).Msg("ptr lookup failed")
			continue
		}
		if !ok {
			continue
		}
		n, err := l.q.SetEntityLabelIfUnset(ctx, sqlcgen.SetEntityLabelIfUnsetParams{
			EntityID: t.EntityID,
			Label:    label,
		})
		if err != nil {
			l.log.Error().Err(err).Str("entity_id", t.EntityID).Msg("set label failed")
			continue
		}
		labeled += int(n)
	}

	if labeled > 0 {
		l.log.Info().Int("targets", len(targets)).Int("labeled", labeled).Msg("label backfill pass complete")
	}
}
