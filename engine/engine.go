// Package engine serves constructed model handles for the logical names of
// a validated catalog.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/cloudwego/eino/components/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/singleflight"

	"github.com/vybdev/modelcat/cache"
	"github.com/vybdev/modelcat/catalog"
	"github.com/vybdev/modelcat/config"
	"github.com/vybdev/modelcat/llm"
	"github.com/vybdev/modelcat/logging"
)

// ErrNotReady is returned by lookups made before a catalog has been loaded.
var ErrNotReady = errors.New("model catalog is not loaded")

var tracer = otel.Tracer("github.com/vybdev/modelcat/engine")

// Engine owns the serving catalog, the provider registry and the two model
// caches. All methods are safe for concurrent use.
type Engine struct {
	src      catalog.Source
	registry *llm.Registry
	log      logrus.FieldLogger
	metrics  *metrics

	// reloadMu serializes Load and Reload.
	reloadMu sync.Mutex

	// mu guards set and the cache contents. Lookups hold it for reading
	// while populating the caches; swapping the set takes it for writing.
	mu    sync.RWMutex
	set   *catalog.Set
	chat  *cache.Cache[model.BaseChatModel]
	embed *cache.Cache[embedding.Embedder]

	state atomic.Int32
	calls singleflight.Group
}

type options struct {
	registry      *llm.Registry
	chatSize      int
	embeddingSize int
	registerer    prometheus.Registerer
	log           logrus.FieldLogger
}

// Option customizes an Engine.
type Option func(*options)

// WithRegistry replaces the built-in provider registry.
func WithRegistry(r *llm.Registry) Option {
	return func(o *options) { o.registry = r }
}

// WithCacheSizes sets the capacity of the chat and embedding caches.
func WithCacheSizes(chat, embedding int) Option {
	return func(o *options) {
		o.chatSize = chat
		o.embeddingSize = embedding
	}
}

// WithRegisterer registers the engine metrics with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

// WithLogger replaces logging.Log.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) { o.log = l }
}

// New returns an unloaded Engine reading its catalog from src.
func New(src catalog.Source, opts ...Option) (*Engine, error) {
	d := config.Default()
	o := options{
		chatSize:      d.Cache.ChatSize,
		embeddingSize: d.Cache.EmbeddingSize,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = llm.DefaultRegistry()
	}
	if o.log == nil {
		o.log = logging.Log
	}

	e := &Engine{
		src:      src,
		registry: o.registry,
		log:      o.log.WithField("catalog", src.String()),
		metrics:  newMetrics(o.registerer),
	}

	var err error
	e.chat, err = cache.New(o.chatSize, func(key string, _ model.BaseChatModel) {
		e.evicted(cacheChat, key)
	})
	if err != nil {
		return nil, fmt.Errorf("chat cache: %w", err)
	}
	e.embed, err = cache.New(o.embeddingSize, func(key string, _ embedding.Embedder) {
		e.evicted(cacheEmbedding, key)
	})
	if err != nil {
		return nil, fmt.Errorf("embedding cache: %w", err)
	}
	return e, nil
}

// FromConfig builds an Engine from the catalog path and cache sizes in cfg.
func FromConfig(cfg *config.Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	src, err := catalog.FileSource(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}
	opts = append([]Option{WithCacheSizes(cfg.Cache.ChatSize, cfg.Cache.EmbeddingSize)}, opts...)
	return New(src, opts...)
}

func (e *Engine) evicted(cacheName, key string) {
	e.metrics.evictions.WithLabelValues(cacheName).Inc()
	e.log.WithFields(logrus.Fields{"cache": cacheName, "model": key}).Debug("evicted model handle")
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	return State(e.state.Load())
}

// Load reads and validates the catalog. It is a no-op once the engine is
// Ready; from Unloaded or Failed it performs the first load.
func (e *Engine) Load(ctx context.Context) error {
	e.reloadMu.Lock()
	defer e.reloadMu.Unlock()
	if e.State() == Ready {
		return nil
	}
	return e.load(ctx)
}

// Reload replaces the serving catalog with a fresh read of the source and
// clears both caches. When the new catalog fails to load the previous one
// keeps serving and the error is returned.
func (e *Engine) Reload(ctx context.Context) error {
	e.reloadMu.Lock()
	defer e.reloadMu.Unlock()
	return e.load(ctx)
}

// load must be called with reloadMu held.
func (e *Engine) load(ctx context.Context) error {
	_, span := tracer.Start(ctx, "catalog.load")
	defer span.End()

	prev := e.State()
	e.state.Store(int32(Loading))
	e.log.Info("loading model catalog")

	set, err := catalog.Load(e.src)

	e.mu.Lock()
	e.chat.Purge()
	e.embed.Purge()
	if err == nil {
		e.set = set
	}
	serving := e.set
	e.mu.Unlock()

	e.metrics.loads.WithLabelValues(result(err)).Inc()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if serving == nil {
			e.state.Store(int32(Failed))
			e.log.WithError(err).Error("model catalog failed to load")
		} else {
			e.state.Store(int32(Ready))
			e.log.WithError(err).WithField("revision", serving.Revision).
				Warn("model catalog reload failed, keeping previous catalog")
		}
		return err
	}

	models, groups := set.Len()
	e.metrics.entries.WithLabelValues(string(catalog.KindModel)).Set(float64(models))
	e.metrics.entries.WithLabelValues(string(catalog.KindGroup)).Set(float64(groups))
	span.SetAttributes(
		attribute.String("catalog.revision", set.Revision),
		attribute.Int("catalog.models", models),
		attribute.Int("catalog.groups", groups),
	)
	e.state.Store(int32(Ready))
	e.log.WithFields(logrus.Fields{
		"revision": set.Revision,
		"models":   models,
		"groups":   groups,
		"previous": prev.String(),
	}).Info("model catalog loaded")
	return nil
}

// current returns the serving set. mu must be held.
func (e *Engine) current() (*catalog.Set, error) {
	if e.set == nil {
		return nil, ErrNotReady
	}
	return e.set, nil
}

// Revision returns the id of the serving catalog, or "" before the first
// successful load.
func (e *Engine) Revision() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.set == nil {
		return ""
	}
	return e.set.Revision
}

// Resolve returns the model entry name resolves to. An empty t accepts any
// type.
func (e *Engine) Resolve(name string, t catalog.ModelType) (*catalog.ModelEntry, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	set, err := e.current()
	if err != nil {
		return nil, err
	}
	return set.Resolve(name, t)
}

// Fallbacks returns the fallback names declared on name.
func (e *Engine) Fallbacks(name string, t catalog.ModelType) ([]string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	set, err := e.current()
	if err != nil {
		return nil, err
	}
	return set.Fallbacks(name, t)
}

// ListCatalog returns every model and group of type t, models first, then
// ordered by provider and name.
func (e *Engine) ListCatalog(t catalog.ModelType) ([]catalog.Item, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	set, err := e.current()
	if err != nil {
		return nil, err
	}
	return set.List(t), nil
}

// GetChatModel returns the chat model for name, constructing and caching it
// on first use. opts are bound to the returned view only; the cached handle
// is shared by every caller of name.
func (e *Engine) GetChatModel(ctx context.Context, name string, opts ...model.Option) (model.BaseChatModel, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	set, err := e.current()
	if err != nil {
		return nil, err
	}
	m, err := e.chatModel(ctx, set, name)
	if err != nil {
		return nil, err
	}
	return llm.Bind(m, opts...), nil
}

// GetFallbackChatModels returns one chat model per fallback declared on
// name, in declared order. A name listed twice yields the same handle twice.
func (e *Engine) GetFallbackChatModels(ctx context.Context, name string) ([]model.BaseChatModel, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	set, err := e.current()
	if err != nil {
		return nil, err
	}
	names, err := set.Fallbacks(name, catalog.ModelTypeLLM)
	if err != nil {
		return nil, err
	}
	out := make([]model.BaseChatModel, 0, len(names))
	for _, fb := range names {
		m, err := e.chatModel(ctx, set, fb)
		if err != nil {
			return nil, fmt.Errorf("fallback %s of %s: %w", fb, name, err)
		}
		out = append(out, m)
	}
	return out, nil
}

// GetEmbeddingModel returns the embedding model for name, constructing and
// caching it on first use.
func (e *Engine) GetEmbeddingModel(ctx context.Context, name string) (embedding.Embedder, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	set, err := e.current()
	if err != nil {
		return nil, err
	}

	if m, ok := e.embed.Get(name); ok {
		e.metrics.cacheRequests.WithLabelValues(cacheEmbedding, "hit").Inc()
		return m, nil
	}
	e.metrics.cacheRequests.WithLabelValues(cacheEmbedding, "miss").Inc()

	v, err, _ := e.calls.Do(cacheEmbedding+"/"+name, func() (any, error) {
		if m, ok := e.embed.Get(name); ok {
			return m, nil
		}
		entry, err := set.Resolve(name, catalog.ModelTypeEmbedding)
		if err != nil {
			return nil, err
		}
		m, err := e.registry.NewEmbedder(ctx, entry.Provider, entry.ArgsCopy())
		e.constructed(llm.KindEmbedding, name, entry, err)
		if err != nil {
			return nil, err
		}
		e.embed.Add(name, m)
		return m, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(embedding.Embedder), nil
}

// chatModel returns the cached chat model for name. mu must be held for
// reading.
func (e *Engine) chatModel(ctx context.Context, set *catalog.Set, name string) (model.BaseChatModel, error) {
	if m, ok := e.chat.Get(name); ok {
		e.metrics.cacheRequests.WithLabelValues(cacheChat, "hit").Inc()
		return m, nil
	}
	e.metrics.cacheRequests.WithLabelValues(cacheChat, "miss").Inc()

	v, err, _ := e.calls.Do(cacheChat+"/"+name, func() (any, error) {
		if m, ok := e.chat.Get(name); ok {
			return m, nil
		}
		entry, err := set.Resolve(name, catalog.ModelTypeLLM)
		if err != nil {
			return nil, err
		}
		m, err := e.registry.NewChatModel(ctx, entry.Provider, entry.ArgsCopy())
		e.constructed(llm.KindLLM, name, entry, err)
		if err != nil {
			return nil, err
		}
		e.chat.Add(name, m)
		return m, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(model.BaseChatModel), nil
}

func (e *Engine) constructed(kind llm.Kind, name string, entry *catalog.ModelEntry, err error) {
	e.metrics.constructions.WithLabelValues(kind.String(), entry.Provider, result(err)).Inc()
	fields := logrus.Fields{
		"name":     name,
		"model":    entry.Name,
		"provider": entry.Provider,
		"kind":     kind.String(),
	}
	if err != nil {
		e.log.WithFields(fields).WithError(err).Warn("model construction failed")
		return
	}
	e.log.WithFields(fields).Debug("constructed model")
}
