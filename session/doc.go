// Package session ties the catalog, the query engine, and the view together
// behind a single controller.
//
// The Controller owns the extracted records, the filter state, and the fuzzy
// index. Query input is debounced so rapid keystrokes coalesce into one
// recomputation carrying the last value; filter toggles recompute
// immediately. A filesystem watcher detects catalog regeneration and
// re-extracts exactly once per burst of writes. An optional deep-search
// bridge mirrors the filter state to the external index.
package session
