package pruner

import (
	"context"
	"fmt"
	"time"

	"github.com/nicjohnson145/kvgate/internal/storage"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const pruneTimeout = 5 * time.Minute

type PrunerConfig struct {
	Logger        zerolog.Logger
	StorageClient storage.Client
	Retention     time.Duration
	Schedule      string

	NowFunc func() time.Time // for unit tests
}

func NewPruner(conf PrunerConfig) (*Pruner, error) {
	if conf.Retention <= 0 {
		return nil, fmt.Errorf("audit retention must be positive, got %v", conf.Retention)
	}
	if _, err := cron.ParseStandard(conf.Schedule); err != nil {
		return nil, fmt.Errorf("error parsing prune schedule %q: %w", conf.Schedule, err)
	}

	p := &Pruner{
		log:       conf.Logger,
		store:     conf.StorageClient,
		retention: conf.Retention,
		schedule:  conf.Schedule,
		nowFunc:   conf.NowFunc,
		cron:      cron.New(cron.WithLocation(time.UTC)),
	}
	if p.nowFunc == nil {
		p.nowFunc = func() time.Time {
			return time.Now().UTC()
		}
	}

	if _, err := p.cron.AddFunc(p.schedule, p.run); err != nil {
		return nil, fmt.Errorf("error scheduling prune: %w", err)
	}

	return p, nil
}

// Pruner drops audit events once they age past the retention period
type Pruner struct {
	log       zerolog.Logger
	store     storage.Client
	retention time.Duration
	schedule  string
	nowFunc   func() time.Time
	cron      *cron.Cron
}

func (p *Pruner) Start() {
	p.log.Info().Str("schedule", p.schedule).Dur("retention", p.retention).Msg("starting audit pruner")
	p.cron.Start()
}

// Stop halts the schedule and waits for an in-flight prune, up to ctx
func (p *Pruner) Stop(ctx context.Context) error {
	done := p.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pruner) run() {
	ctx, cancel := context.WithTimeout(context.Background(), pruneTimeout)
	defer cancel()

	if _, err := p.PruneOnce(ctx); err != nil {
		p.log.Err(err).Msg("error pruning audit events")
	}
}

func (p *Pruner) PruneOnce(ctx context.Context) (int64, error) {
	cutoff := p.nowFunc().Add(-p.retention)
	removed, err := p.store.PruneAuditEvents(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("error pruning events before %v: %w", cutoff, err)
	}

	p.log.Debug().Int64("removed", removed).Time("cutoff", cutoff).Msg("pruned audit events")
	return removed, nil
}
