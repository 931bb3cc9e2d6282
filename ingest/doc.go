// Package ingest builds the deep-search index from the per-act HTML pages.
//
// The Pipeline type walks a directory of act pages and, for each page:
//   - Parses the title, body text, and embedded filter metadata
//   - Tokenizes the text into index terms
//   - Stores the resulting document and its postings
//
// Pages are processed concurrently using a worker pool. A page that fails to
// parse is logged and skipped; it does not fail the run. Finalize writes the
// collection statistics and must be called exactly once, after the last
// directory has been ingested.
package ingest
