package deepsearch

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultDebounce = 300 * time.Millisecond
	defaultMaxHits  = 20

	// Queries already coalesce through the debounce; the limiter only guards
	// against programmatic callers bypassing it.
	defaultQueryRate = rate.Limit(10)
)

// Sink receives the bridge's rendering decisions. Implementations run on the
// bridge's worker goroutine and should hand off quickly.
type Sink interface {
	// Preview reports the total match count for the badge.
	Preview(count int)

	// Results delivers the ranked hits for the result body. A nil slice
	// clears the body.
	Results(resp *Response)

	// Unavailable reports that the index failed to initialize or a query
	// failed. The badge count must be treated as zero.
	Unavailable(err error)
}

// Bridge forwards the session's filter state to the deep-search index.
//
// Updates are debounced: a newer update that arrives before the pending
// timer fires replaces it, so only the last state within the window is
// queried. Every fired query carries a generation number; a response whose
// generation is no longer current is discarded instead of rendered, which
// guards against overlapping queries returning out of order. Closing the
// result view does not cancel an in-flight request; staleness, not
// cancellation, is the contract.
type Bridge struct {
	index    Index
	sink     Sink
	logger   *slog.Logger
	debounce time.Duration
	maxHits  int
	limiter  *rate.Limiter

	mu      sync.Mutex
	timer   *time.Timer
	pending func()
	closed  bool

	gen      atomic.Uint64
	initOnce sync.Once
	initErr  error
}

// BridgeOption configures a Bridge.
type BridgeOption func(*Bridge) error

// WithDebounce sets the debounce window for Update calls.
// Default is 300ms.
func WithDebounce(d time.Duration) BridgeOption {
	return func(b *Bridge) error {
		if d <= 0 {
			return ErrInvalidDebounce
		}
		b.debounce = d
		return nil
	}
}

// WithMaxHits sets how many ranked hits a query requests.
func WithMaxHits(n int) BridgeOption {
	return func(b *Bridge) error {
		if n < 1 {
			n = 1
		}
		b.maxHits = n
		return nil
	}
}

// WithBridgeLogger sets a custom logger.
// Default is slog.Default().
func WithBridgeLogger(logger *slog.Logger) BridgeOption {
	return func(b *Bridge) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// NewBridge creates a bridge between the session and a deep-search index.
func NewBridge(index Index, sink Sink, opts ...BridgeOption) (*Bridge, error) {
	if index == nil {
		return nil, ErrIndexRequired
	}
	if sink == nil {
		return nil, ErrSinkRequired
	}

	b := &Bridge{
		index:    index,
		sink:     sink,
		logger:   slog.Default(),
		debounce: defaultDebounce,
		maxHits:  defaultMaxHits,
		limiter:  rate.NewLimiter(defaultQueryRate, 1),
	}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// Update mirrors a new filter state into the bridge. The query only fires
// after the debounce window passes without a newer update; an empty state
// clears the preview instead of querying.
func (b *Bridge) Update(ctx context.Context, query string, filters Filters) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	if b.timer != nil {
		b.timer.Stop()
	}
	b.pending = func() {
		gen := b.gen.Add(1)
		b.run(ctx, gen, query, filters)
	}
	b.timer = time.AfterFunc(b.debounce, b.pending)
}

// Flush fires any pending update immediately. Intended for deterministic
// shutdown and tests.
func (b *Bridge) Flush() {
	b.mu.Lock()
	var fire func()
	if b.timer != nil && b.timer.Stop() {
		fire = b.pending
	}
	b.timer = nil
	b.pending = nil
	b.mu.Unlock()
	if fire != nil {
		fire()
	}
}

// Close stops any pending update. In-flight queries finish on their own;
// their responses are discarded once a later generation exists.
func (b *Bridge) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}

func (b *Bridge) run(ctx context.Context, gen uint64, query string, filters Filters) {
	if query == "" && len(filters) == 0 {
		if b.current(gen) {
			b.sink.Preview(0)
			b.sink.Results(nil)
		}
		return
	}

	b.initOnce.Do(func() {
		b.initErr = b.index.Init(ctx)
		if b.initErr != nil {
			b.logger.Error("deep-search index failed to initialize", "err", b.initErr)
		}
	})
	if b.initErr != nil {
		b.sink.Unavailable(b.initErr)
		return
	}

	if err := b.limiter.Wait(ctx); err != nil {
		return
	}

	resp, err := b.index.Search(ctx, query, filters, b.maxHits)
	if err != nil {
		// A query of nothing but stop words is an empty state, not a failure.
		if errors.Is(err, ErrEmptyQuery) {
			if b.current(gen) {
				b.sink.Preview(0)
				b.sink.Results(nil)
			}
			return
		}
		b.logger.Error("deep search failed", "query", query, "err", err)
		if b.current(gen) {
			b.sink.Unavailable(err)
		}
		return
	}

	if !b.current(gen) {
		b.logger.Debug("discarding stale deep-search response", "gen", gen)
		return
	}
	b.sink.Preview(resp.Total)
	b.sink.Results(resp)
}

// current reports whether gen is still the newest fired generation.
func (b *Bridge) current(gen uint64) bool {
	return b.gen.Load() == gen
}
