package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sony/gobreaker"

	"github.com/matzehuels/mindmap/pkg/config"
	mmerrors "github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/graph"
	"github.com/matzehuels/mindmap/pkg/integrations/gemini"
	"github.com/matzehuels/mindmap/pkg/integrations/mistral"
	"github.com/matzehuels/mindmap/pkg/observability"
)

// AdapterName is the name reported by [Adapter.Name].
const AdapterName = "adapter"

// DefaultTimeout bounds a single backend call.
const DefaultTimeout = 45 * time.Second

// BreakerSettings configures the per-backend circuit breakers.
type BreakerSettings struct {
	// ConsecutiveFailures trips the breaker. Zero disables tripping.
	ConsecutiveFailures uint32
	// OpenTimeout is how long a tripped breaker rejects calls.
	OpenTimeout time.Duration
	// HalfOpenRequests is the number of probe calls allowed after OpenTimeout.
	HalfOpenRequests uint32
}

// DefaultBreakerSettings returns the breaker configuration used by [NewAdapter].
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		ConsecutiveFailures: 5,
		OpenTimeout:         60 * time.Second,
		HalfOpenRequests:    1,
	}
}

// Options configures an [Adapter].
type Options struct {
	Timeout time.Duration
	Breaker BreakerSettings
	Logger  *log.Logger
}

func (o *Options) setDefaults() {
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.Breaker == (BreakerSettings{}) {
		o.Breaker = DefaultBreakerSettings()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

type guarded struct {
	Extractor
	cb *gobreaker.CircuitBreaker
}

// Adapter runs extraction against an ordered list of backends.
// It is safe for concurrent use.
type Adapter struct {
	standard []*guarded
	research []*guarded
	timeout  time.Duration
	logger   *log.Logger
}

// NewAdapter builds an adapter from cfg. Backends whose credentials are
// missing or placeholders are not enabled.
func NewAdapter(cfg config.Config, logger *log.Logger) *Adapter {
	var gem, mis Extractor
	if cfg.GeminiEnabled() {
		gem = NewGemini(gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL))
	}
	if cfg.MistralEnabled() {
		mis = NewMistral(mistral.NewClient(cfg.MistralAPIKey, cfg.MistralModel, cfg.MistralBaseURL))
	}
	return NewAdapterWithBackends(
		present(mis, gem),
		present(gem, mis),
		Options{Timeout: cfg.BackendTimeout, Logger: logger},
	)
}

func present(xs ...Extractor) []Extractor {
	var out []Extractor
	for _, x := range xs {
		if x != nil {
			out = append(out, x)
		}
	}
	return out
}

// NewAdapterWithBackends builds an adapter over explicit backend chains,
// one per mode, in priority order. Backends sharing a name share a breaker.
func NewAdapterWithBackends(standard, research []Extractor, opts Options) *Adapter {
	opts.setDefaults()
	breakers := make(map[string]*gobreaker.CircuitBreaker)
	guard := func(chain []Extractor) []*guarded {
		out := make([]*guarded, 0, len(chain))
		for _, e := range chain {
			cb, ok := breakers[e.Name()]
			if !ok {
				cb = newBreaker(e.Name(), opts.Breaker, opts.Logger)
				breakers[e.Name()] = cb
			}
			out = append(out, &guarded{Extractor: e, cb: cb})
		}
		return out
	}
	return &Adapter{
		standard: guard(standard),
		research: guard(research),
		timeout:  opts.Timeout,
		logger:   opts.Logger,
	}
}

func newBreaker(name string, s BreakerSettings, logger *log.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: s.HalfOpenRequests,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return s.ConsecutiveFailures > 0 && counts.ConsecutiveFailures >= s.ConsecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed", "backend", name, "from", from.String(), "to", to.String())
		},
		IsSuccessful: func(err error) bool {
			// A caller giving up says nothing about the backend.
			return err == nil || errors.Is(err, context.Canceled)
		},
	})
}

// Name returns [AdapterName].
func (a *Adapter) Name() string { return AdapterName }

// Offline reports whether no backend is enabled.
func (a *Adapter) Offline() bool {
	return len(a.standard) == 0 && len(a.research) == 0
}

// Backends returns the backend names tried for a mode, in order.
func (a *Adapter) Backends(research bool) []string {
	chain := a.chain(research)
	names := make([]string, len(chain))
	for i, g := range chain {
		names[i] = g.Name()
	}
	return names
}

func (a *Adapter) chain(research bool) []*guarded {
	if research {
		return a.research
	}
	return a.standard
}

// Extract returns the graph from the first backend that succeeds with at
// least one node. Without any backend it returns [MockGraph].
func (a *Adapter) Extract(ctx context.Context, text string, research bool) (graph.Raw, error) {
	hooks := observability.Pipeline()
	hooks.OnExtractStart(ctx, research)
	start := time.Now()

	chain := a.chain(research)
	if len(chain) == 0 {
		a.logger.Debug("no extraction backend configured, using illustrative graph", "research", research)
		raw := MockGraph(research)
		hooks.OnExtractComplete(ctx, raw.Provenance, len(raw.Nodes), time.Since(start), nil)
		return raw, nil
	}

	var errs []error
	for _, b := range chain {
		raw, err := a.try(ctx, b, text, research)
		if err == nil {
			a.logger.Debug("extracted graph", "backend", b.Name(), "nodes", len(raw.Nodes), "edges", len(raw.Edges))
			hooks.OnExtractComplete(ctx, raw.Provenance, len(raw.Nodes), time.Since(start), nil)
			return raw, nil
		}
		a.logger.Warn("extraction backend failed", "backend", b.Name(), "err", err)
		hooks.OnBackendFailure(ctx, b.Name(), err)
		errs = append(errs, fmt.Errorf("%s: %w", b.Name(), err))
		if ctx.Err() != nil {
			break
		}
	}

	err := mmerrors.Wrap(mmerrors.ErrCodeTotalFailure, errors.Join(errs...), "all extraction backends failed")
	hooks.OnExtractComplete(ctx, "", 0, time.Since(start), err)
	return graph.Raw{}, err
}

func (a *Adapter) try(ctx context.Context, b *guarded, text string, research bool) (graph.Raw, error) {
	v, err := b.cb.Execute(func() (any, error) {
		ctx, cancel := context.WithTimeout(ctx, a.timeout)
		defer cancel()

		raw, err := b.Extract(ctx, text, research)
		if err != nil {
			return nil, err
		}
		if len(raw.Nodes) == 0 {
			return nil, mmerrors.New(mmerrors.ErrCodeBackendFailure, "%s returned no nodes", b.Name())
		}
		if raw.Provenance == "" {
			raw.Provenance = b.Name()
		}
		return raw, nil
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return graph.Raw{}, mmerrors.Wrap(mmerrors.ErrCodeBackendFailure, err, "%s unavailable", b.Name())
	}
	if err != nil {
		return graph.Raw{}, err
	}
	return v.(graph.Raw), nil
}

// IsOffline reports whether e is an adapter without enabled backends.
func IsOffline(e Extractor) bool {
	o, ok := e.(interface{ Offline() bool })
	return ok && o.Offline()
}

// Backends returns the backend chain of e for a mode, or e's own name
// when e is a single backend.
func Backends(e Extractor, research bool) []string {
	if a, ok := e.(*Adapter); ok {
		return a.Backends(research)
	}
	return []string{e.Name()}
}
