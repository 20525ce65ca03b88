package route

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lightfab/picroute/pkg/cache"
	"github.com/lightfab/picroute/pkg/observability"
	"github.com/lightfab/picroute/pkg/port"
)

// Runner executes routing runs with result caching and logging layered
// on top of the pure pipeline. It is the entry point the CLI and the
// HTTP server share.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching; a nil
// logger discards output.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{Cache: c, Logger: logger}
}

// Options controls one execution.
type Options struct {
	// Params is the layout parameter set.
	Params Params

	// Refresh forces a fresh run even when a cached result exists.
	Refresh bool
}

// Execute runs the pipeline for the given inputs.
//
// Parameters are validated before the cache is consulted, so an invalid
// configuration fails identically whether or not a result is cached.
// Cache keys are content hashes of all three inputs; any change to the
// ports, the netlist, or the parameters produces a distinct key.
//
// On success the returned bond pad ports have been added to in.Registry,
// on cached and fresh paths alike.
func (r *Runner) Execute(ctx context.Context, in Input, opts Options) (*Result, error) {
	if err := opts.Params.Validate(); err != nil {
		return nil, err
	}

	key, err := r.cacheKey(in, opts.Params)
	if err != nil {
		return nil, err
	}

	result, err := r.lookup(ctx, key, opts.Refresh)
	if err != nil {
		return nil, err
	}

	if result == nil {
		start := time.Now()
		result, err = Run(ctx, in, opts.Params)
		if err != nil {
			return nil, err
		}
		r.Logger.Info("routing complete",
			"groups", result.Stats.Groups,
			"left", result.Stats.LeftPads,
			"bottom", result.Stats.BottomPads,
			"traces", result.Stats.Traces,
			"duration", time.Since(start).Round(time.Millisecond))
		r.store(ctx, key, result)
	}

	for _, w := range result.Warnings {
		r.Logger.Warn("contact grouping", "reason", w.Reason, "group", w.Group, "port", w.Port)
	}

	for _, p := range result.BondPorts {
		if err := in.Registry.Add(p); err != nil {
			return nil, fmt.Errorf("register bond pad port: %w", err)
		}
	}

	result.RunID = uuid.New().String()
	return result, nil
}

// cacheKey derives the content-addressed cache key for a run.
func (r *Runner) cacheKey(in Input, params Params) (string, error) {
	portsDoc, err := json.Marshal(port.Exchange{BBox: in.BBox, Ports: in.Registry.Ports()})
	if err != nil {
		return "", fmt.Errorf("hash ports: %w", err)
	}
	netlistDoc, err := json.Marshal(in.Netlist)
	if err != nil {
		return "", fmt.Errorf("hash netlist: %w", err)
	}
	paramsDoc, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("hash params: %w", err)
	}
	return cache.RouteKey(cache.Hash(portsDoc), cache.Hash(netlistDoc), cache.Hash(paramsDoc)), nil
}

// lookup consults the cache. A corrupt entry is treated as a miss.
// Cache backend failures are non-fatal: the run proceeds uncached.
func (r *Runner) lookup(ctx context.Context, key string, refresh bool) (*Result, error) {
	if refresh {
		return nil, nil
	}

	data, found, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache lookup failed", "error", err)
		return nil, nil
	}
	if !found {
		observability.Cache().OnCacheMiss(ctx, key)
		return nil, nil
	}

	result, err := unmarshalCache(data)
	if err != nil {
		r.Logger.Warn("discarding corrupt cache entry", "key", key, "error", err)
		_ = r.Cache.Delete(ctx, key)
		return nil, nil
	}

	observability.Cache().OnCacheHit(ctx, key)
	r.Logger.Debug("cache hit", "key", key)
	result.CacheHit = true
	return result, nil
}

// store writes a result to the cache. Failures are logged, not returned.
func (r *Runner) store(ctx context.Context, key string, result *Result) {
	data, err := result.marshalCache()
	if err != nil {
		r.Logger.Warn("cache encode failed", "error", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLRoute); err != nil {
		r.Logger.Warn("cache store failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, key, len(data))
}
