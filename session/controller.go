// Copyright 2025 the consulta authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package session

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/agc2020/consulta/catalog"
	"github.com/agc2020/consulta/core"
	"github.com/agc2020/consulta/deepsearch"
	"github.com/agc2020/consulta/search"
	"github.com/agc2020/consulta/view"
)

const defaultInputDebounce = 300 * time.Millisecond

// Controller owns one user session over a catalog file: the extracted
// records, the fuzzy index, the multi-value filter state, and the view
// synchronizer. All mutation goes through the controller's lock.
type Controller struct {
	path     string
	logger   *slog.Logger
	debounce time.Duration
	bridge   *deepsearch.Bridge
	controls map[string]string
	onUpdate func(view.Summary)

	mu           sync.Mutex
	page         *catalog.Page
	records      []core.Ato
	engine       *search.Engine
	view         *view.Synchronizer
	filters      *search.MultiFilters
	summary      view.Summary
	queryTimer   *time.Timer
	pendingQuery func()
	watch        *watcher
	closed       bool
}

// Option configures a Controller.
type Option func(*Controller) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// WithInputDebounce sets the query-input debounce window.
// Default is 300ms.
func WithInputDebounce(d time.Duration) Option {
	return func(c *Controller) error {
		if d <= 0 {
			return ErrInvalidDebounce
		}
		c.debounce = d
		return nil
	}
}

// WithBridge attaches a deep-search bridge. The controller mirrors every
// filter state change into it and closes it with the session.
func WithBridge(bridge *deepsearch.Bridge) Option {
	return func(c *Controller) error {
		c.bridge = bridge
		return nil
	}
}

// WithControlCategory maps a control name to a filter category, for controls
// that do not carry an explicit category themselves.
func WithControlCategory(control, category string) Option {
	return func(c *Controller) error {
		c.controls[control] = category
		return nil
	}
}

// WithUpdateFunc registers a callback invoked with the new summary after
// every recomputation. It runs under the controller's lock and must not call
// back into the controller.
func WithUpdateFunc(fn func(view.Summary)) Option {
	return func(c *Controller) error {
		c.onUpdate = fn
		return nil
	}
}

// NewController loads the catalog file at path and builds a ready session.
func NewController(path string, opts ...Option) (*Controller, error) {
	if path == "" {
		return nil, ErrCatalogPathRequired
	}

	c := &Controller{
		path:     path,
		logger:   slog.Default(),
		debounce: defaultInputDebounce,
		controls: make(map[string]string),
		filters:  search.NewMultiFilters(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.attach(); err != nil {
		return nil, err
	}
	c.summary = c.view.Summary()

	return c, nil
}

// attach extracts the catalog file and rebuilds the index, engine, and view.
// The filter state survives so a regeneration does not lose the user's
// constraints. Caller holds the lock.
func (c *Controller) attach() error {
	f, err := os.Open(c.path)
	if err != nil {
		return err
	}
	defer f.Close()

	page, records, err := catalog.Extract(f)
	if err != nil {
		return err
	}

	index, err := search.NewIndex(records)
	if err != nil {
		return err
	}
	engine, err := search.NewEngine(index, records, search.WithLogger(c.logger))
	if err != nil {
		return err
	}

	c.page = page
	c.records = records
	c.engine = engine
	c.view = view.NewSynchronizer(page)

	c.logger.Info("catalog attached", "path", c.path, "records", len(records))
	return nil
}

// SetQuery records new query input. The recomputation only fires after the
// debounce window passes without newer input, and carries the last value.
func (c *Controller) SetQuery(ctx context.Context, query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if c.queryTimer != nil {
		c.queryTimer.Stop()
	}
	c.pendingQuery = func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.closed {
			return
		}
		c.filters.Query = query
		c.recompute(ctx)
	}
	c.queryTimer = time.AfterFunc(c.debounce, c.pendingQuery)
}

// FlushQuery fires any pending query input immediately.
func (c *Controller) FlushQuery() {
	c.mu.Lock()
	var fire func()
	if c.queryTimer != nil && c.queryTimer.Stop() {
		fire = c.pendingQuery
	}
	c.queryTimer = nil
	c.pendingQuery = nil
	c.mu.Unlock()
	if fire != nil {
		fire()
	}
}

// Toggle flips a filter value and recomputes immediately. It reports whether
// the value is active afterwards.
func (c *Controller) Toggle(ctx context.Context, category, value string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false, ErrClosed
	}
	active, err := c.filters.Toggle(category, value)
	if err != nil {
		return false, err
	}
	c.recompute(ctx)
	return active, nil
}

// ToggleControl routes a control event to Toggle. A control whose name is a
// category acts on that category directly; otherwise the registered
// control-to-category mapping is consulted.
func (c *Controller) ToggleControl(ctx context.Context, control, value string) (bool, error) {
	category := control
	c.mu.Lock()
	if mapped, ok := c.controls[control]; ok {
		category = mapped
	}
	c.mu.Unlock()
	if _, err := search.CategoryValue(&core.Ato{}, category); err != nil {
		return false, ErrUnknownControl
	}
	return c.Toggle(ctx, category, value)
}

// Remove clears one active filter value, as when a badge is dismissed,
// and recomputes. Removing an inactive value is a no-op recomputation.
func (c *Controller) Remove(ctx context.Context, category, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.filters.Remove(category, value)
	c.recompute(ctx)
}

// Reset clears the query and every filter, restoring full visibility.
func (c *Controller) Reset(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if c.queryTimer != nil {
		c.queryTimer.Stop()
		c.queryTimer = nil
	}
	c.filters.Reset()
	c.recompute(ctx)
}

// Recompute re-runs the engine against the current state. Useful after an
// external change that bypassed the controller.
func (c *Controller) Recompute(ctx context.Context) view.Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recompute(ctx)
	return c.summary
}

// recompute runs the engine, applies visibility to the view, and mirrors the
// state into the deep-search bridge. Caller holds the lock.
func (c *Controller) recompute(ctx context.Context) {
	visible := c.engine.ComputeVisible(c.filters)
	c.summary = c.view.Apply(visible)

	if c.bridge != nil {
		c.bridge.Update(ctx, c.filters.QueryText(), deepsearch.Filters(c.filters.DeepFilters()))
	}
	if c.onUpdate != nil {
		c.onUpdate(c.summary)
	}
}

// Resync re-extracts the catalog file in place, keeping the filter state.
// Called by the regeneration watcher; safe to call repeatedly.
func (c *Controller) Resync(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if err := c.attach(); err != nil {
		return err
	}
	c.recompute(ctx)
	return nil
}

// Summary returns the last computed result-count summary.
func (c *Controller) Summary() view.Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.summary
}

// Records returns the extracted records in document order.
func (c *Controller) Records() []core.Ato {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.records
}

// Ranked returns the visible records in relevance order under the current
// state.
func (c *Controller) Ranked() []search.Match {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine.Ranked(c.filters)
}

// Page returns the catalog tree the view operates on.
func (c *Controller) Page() *catalog.Page {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// Close stops the watcher and any pending input, and closes the bridge.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	if c.queryTimer != nil {
		c.queryTimer.Stop()
		c.queryTimer = nil
	}
	w := c.watch
	c.watch = nil
	c.mu.Unlock()

	var err error
	if w != nil {
		err = w.close()
	}
	if c.bridge != nil {
		c.bridge.Close()
	}
	return err
}
