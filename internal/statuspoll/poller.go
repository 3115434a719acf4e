// Package statuspoll keeps entity health states current by probing
// monitored devices over SNMP in the background. The post-processor reads
// the stored states back when coloring map nodes.
package statuspoll

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/gosnmp/gosnmp"
	"github.com/rs/zerolog"

	"hawkmon/console-go/internal/metrics"
	"hawkmon/console-go/internal/sqlcgen"
	"hawkmon/console-go/internal/topology"
)

const oidSysUpTime = "1.3.6.1.2.1.1.3.0"

// Queries is the minimal DB interface the poller needs.
// *sqlcgen.Queries satisfies this.
type Queries interface {
	ListDeviceTargets(ctx context.Context) ([]sqlcgen.DeviceTarget, error)
	UpsertEntityStatus(ctx context.Context, arg sqlcgen.UpsertEntityStatusParams) error
}

type Options struct {
	Interval  time.Duration
	Workers   int
	Community string
	Port      uint16
	Timeout   time.Duration
	Retries   int
}

type Poller struct {
	log       zerolog.Logger
	q         Queries
	interval  time.Duration
	workers   int
	community string
	port      uint16
	timeout   time.Duration
	retries   int
	metrics   *metrics.Metrics
}

func New(log zerolog.Logger, q Queries, opts Options, m *metrics.Metrics) *Poller {
	interval := opts.Interval
	if interval <= 0 {
		interval = time.Minute
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 8
	}
	community := strings.TrimSpace(opts.Community)
	if community == "" {
		community = "public"
	}
	port := opts.Port
	if port == 0 {
		port = 161
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 900 * time.Millisecond
	}
	retries := opts.Retries
	if retries < 0 {
		retries = 0
	}
	return &Poller{
		log:       log,
		q:         q,
		interval:  interval,
		workers:   workers,
		community: community,
		port:      port,
		timeout:   timeout,
		retries:   retries,
		metrics:   m,
	}
}

// Run polls until the context is canceled, backing off after consecutive
// failing sweeps.
func (p *Poller) Run(ctx context.Context) {
	if p == nil || p.q == nil {
		return
	}

	timer := time.NewTimer(p.interval)
	defer timer.Stop()

	var consecutiveFailures int
	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		if err := p.sweep(ctx); err != nil {
			consecutiveFailures++
			p.log.Error().Err(err).Int("failures", consecutiveFailures).Msg("status sweep failed")
		} else {
			consecutiveFailures = 0
		}

		timer.Reset(backoffDuration(p.interval, consecutiveFailures))
	}
}

func backoffDuration(base time.Duration, failures int) time.Duration {
	if base <= 0 {
		base = time.Minute
	}
	if failures <= 0 {
		return base
	}
	if failures > 4 {
		failures = 4
	}
	d := base * time.Duration(1<<failures)
	if d > 15*time.Minute {
		return 15 * time.Minute
	}
	return d
}

func (p *Poller) sweep(ctx context.Context) error {
	targets, err := p.q.ListDeviceTargets(ctx)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		return nil
	}

	start := time.Now()

	jobs := make(chan sqlcgen.DeviceTarget, p.workers*2)
	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range jobs {
				status := p.probe(t.Address)
				if err := p.q.UpsertEntityStatus(ctx, sqlcgen.UpsertEntityStatusParams{
					EntityID: t.EntityID,
					Status:   status.String(),
				}); err != nil {
					p.log.Warn().Err(err).Str("entity_id", t.EntityID).Msg("status write failed")
				}
			}
		}()
	}

	sent := 0
loop:
	for _, t := range targets {
		select {
		case <-ctx.Done():
			break loop
		case jobs <- t:
			sent++
		}
	}
	close(jobs)
	wg.Wait()

	if p.metrics != nil {
		p.metrics.ObserveStatusSweep(sent, time.Since(start))
	}
	p.log.Debug().Int("targets", sent).Dur("elapsed", time.Since(start)).Msg("status sweep complete")
	return ctx.Err()
}

// probe checks one device via an SNMP sysUpTime read. A response maps to
// normal, anything else to critical; the node coloring downstream treats
// the distinction the same way an alert state would.
func (p *Poller) probe(address string) topology.Status {
	s := &gosnmp.GoSNMP{
		Target:    address,
		Port:      p.port,
		Community: p.community,
		Version:   gosnmp.Version2c,
		Timeout:   p.timeout,
		Retries:   p.retries,
	}
	if err := s.Connect(); err != nil {
		return topology.StatusCritical
	}
	defer s.Conn.Close()

	pkt, err := s.Get([]string{oidSysUpTime})
	if err != nil || pkt == nil || pkt.Error != gosnmp.NoError || len(pkt.Variables) == 0 {
		return topology.StatusCritical
	}
	return topology.StatusNormal
}
