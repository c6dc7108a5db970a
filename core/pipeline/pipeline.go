// Package pipeline runs extraction for one or more jurisdictions:
// term validation, then per jurisdiction extract → build → sink, with
// every local failure collected as a warning.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/gaurav-prasanna/legispipe/core"
	"github.com/gaurav-prasanna/legispipe/core/build"
	"github.com/gaurav-prasanna/legispipe/core/extract"
	"github.com/gaurav-prasanna/legispipe/core/metadata"
)

const defaultParallelism = 4

// ErrUnknownSession marks a scraped session name the metadata does not know.
var ErrUnknownSession = errors.New("session not in metadata")

// SinkFactory hands out the sink for one jurisdiction.
type SinkFactory interface {
	For(jurisdiction string) core.Sink
}

// Request names what one run extracts.
type Request struct {
	Jurisdictions []string
	Term          string
	// Chambers defaults to the jurisdiction's chambers plus joint.
	Chambers   []core.Chamber
	LatestOnly bool
	// CheckSessions reconciles the site's session list against metadata.
	CheckSessions bool
}

// Result is one jurisdiction's outcome.
type Result struct {
	Jurisdiction string
	Committees   int
	Legislators  int
	Warnings     []error
}

// Report is the outcome of a run, in request order.
type Report struct {
	Results []*Result
}

// Warnings returns the number of warnings across all jurisdictions.
func (r *Report) Warnings() int {
	n := 0
	for _, res := range r.Results {
		n += len(res.Warnings)
	}
	return n
}

// Pipeline wires adapters to a fetcher and a sink.
type Pipeline struct {
	registry    *extract.Registry
	fetcher     core.Fetcher
	sinks       SinkFactory
	validator   core.TermValidator
	meta        *metadata.Table
	logger      zerolog.Logger
	parallelism int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger. Adapters get a child carrying the jurisdiction.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithParallelism caps how many jurisdictions run at once.
func WithParallelism(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.parallelism = n
		}
	}
}

// WithMetadata supplies the jurisdiction table. It also serves as the
// term validator unless WithTermValidator overrides it.
func WithMetadata(t *metadata.Table) Option {
	return func(p *Pipeline) { p.meta = t }
}

// WithTermValidator sets the term validator.
func WithTermValidator(v core.TermValidator) Option {
	return func(p *Pipeline) { p.validator = v }
}

// New creates a Pipeline.
func New(registry *extract.Registry, fetcher core.Fetcher, sinks SinkFactory, opts ...Option) *Pipeline {
	p := &Pipeline{
		registry:    registry,
		fetcher:     fetcher,
		sinks:       sinks,
		logger:      log.Logger,
		parallelism: defaultParallelism,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.validator == nil && p.meta != nil {
		p.validator = p.meta
	}
	return p
}

type job struct {
	adapter  extract.Adapter
	chambers []core.Chamber
	result   *Result
}

// Run validates every requested jurisdiction's term, then extracts them
// in parallel. A *core.ConfigError means nothing was extracted. Any other
// error is a sink or context failure; the report then holds what was
// saved up to that point.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Report, error) {
	if len(req.Jurisdictions) == 0 {
		return nil, &core.ConfigError{Msg: "no jurisdictions requested"}
	}
	if p.validator == nil {
		return nil, &core.ConfigError{Msg: "no term metadata"}
	}

	jobs := make([]*job, 0, len(req.Jurisdictions))
	for _, id := range req.Jurisdictions {
		j, err := p.prepare(id, req)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}

	report := &Report{Results: make([]*Result, len(jobs))}
	for i, j := range jobs {
		report.Results[i] = j.result
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(p.parallelism)
	for _, j := range jobs {
		group.Go(func() error {
			return p.runJurisdiction(groupCtx, j, req)
		})
	}
	return report, group.Wait()
}

func (p *Pipeline) prepare(id string, req Request) (*job, error) {
	adapter, err := p.registry.Lookup(id)
	if err != nil {
		return nil, err
	}
	latestOnly := req.LatestOnly
	if l, ok := adapter.(extract.LatestTermOnly); ok && l.LatestTermOnly() {
		latestOnly = true
	}
	if err := p.validator.ValidateTerm(adapter.ID(), req.Term, latestOnly); err != nil {
		return nil, err
	}

	chambers := req.Chambers
	if len(chambers) == 0 {
		chambers = []core.Chamber{core.Upper, core.Lower}
		if p.meta != nil {
			if j, err := p.meta.Jurisdiction(adapter.ID()); err == nil {
				chambers = append([]core.Chamber(nil), j.Chambers...)
			}
		}
		chambers = append(chambers, core.Joint)
	}
	return &job{adapter: adapter, chambers: chambers, result: &Result{Jurisdiction: adapter.ID()}}, nil
}

func (p *Pipeline) runJurisdiction(ctx context.Context, j *job, req Request) error {
	id := j.adapter.ID()
	logger := p.logger.With().Str("jurisdiction", id).Logger()
	env := extract.NewEnv(p.fetcher, logger)
	sink := p.sinks.For(id)
	defer func() { j.result.Warnings = env.Warnings() }()

	logger.Info().Str("term", req.Term).Msg("extracting")

	if req.CheckSessions {
		p.checkSessions(ctx, env, j.adapter)
	}

	for _, chamber := range j.chambers {
		if err := ctx.Err(); err != nil {
			return err
		}
		if ce, ok := j.adapter.(extract.CommitteeExtractor); ok {
			n, err := p.committees(ctx, env, sink, ce, chamber)
			j.result.Committees += n
			if err != nil {
				return fmt.Errorf("%s: %w", id, err)
			}
		}
		if le, ok := j.adapter.(extract.LegislatorExtractor); ok {
			n, err := p.legislators(ctx, env, sink, le, req.Term, chamber)
			j.result.Legislators += n
			if err != nil {
				return fmt.Errorf("%s: %w", id, err)
			}
		}
	}

	logger.Info().
		Int("committees", j.result.Committees).
		Int("legislators", j.result.Legislators).
		Int("warnings", len(env.Warnings())).
		Msg("done")
	return nil
}

// committees extracts and saves one chamber's committees. Only a sink
// failure is returned; everything else becomes a warning.
func (p *Pipeline) committees(ctx context.Context, env *extract.Env, sink core.Sink, ce extract.CommitteeExtractor, chamber core.Chamber) (int, error) {
	raws, err := ce.Committees(ctx, env, chamber)
	if errors.Is(err, core.ErrUnsupported) {
		return 0, nil
	}
	if err != nil {
		env.Warn(fmt.Errorf("%s committees: %w", chamber, err))
		return 0, nil
	}

	saved := 0
	for _, raw := range raws {
		c, err := build.Committee(raw)
		if err != nil {
			env.Warn(err)
			continue
		}
		if err := sink.SaveCommittee(ctx, c); err != nil {
			return saved, fmt.Errorf("saving committee %q: %w", c.Name, err)
		}
		saved++
	}
	return saved, nil
}

func (p *Pipeline) legislators(ctx context.Context, env *extract.Env, sink core.Sink, le extract.LegislatorExtractor, term string, chamber core.Chamber) (int, error) {
	raws, err := le.Legislators(ctx, env, term, chamber)
	if errors.Is(err, core.ErrUnsupported) {
		return 0, nil
	}
	if err != nil {
		env.Warn(fmt.Errorf("%s legislators: %w", chamber, err))
		return 0, nil
	}

	saved := 0
	for _, raw := range raws {
		l, warnings, err := build.Legislator(raw)
		for _, w := range warnings {
			env.Warn(w)
		}
		if err != nil {
			env.Warn(err)
			continue
		}
		if err := sink.SaveLegislator(ctx, l); err != nil {
			return saved, fmt.Errorf("saving legislator %q: %w", l.Name, err)
		}
		saved++
	}
	return saved, nil
}

func (p *Pipeline) checkSessions(ctx context.Context, env *extract.Env, adapter extract.Adapter) {
	lister, ok := adapter.(extract.SessionLister)
	if !ok || p.meta == nil {
		return
	}
	j, err := p.meta.Jurisdiction(adapter.ID())
	if err != nil {
		env.Warn(err)
		return
	}
	scraped, err := lister.Sessions(ctx, env)
	if err != nil {
		env.Warn(fmt.Errorf("listing sessions: %w", err))
		return
	}
	for _, name := range j.UnknownSessions(scraped) {
		env.Warn(fmt.Errorf("%q: %w", name, ErrUnknownSession))
	}
}
