// Package core holds the personnel dataset and the operations over it.
//
// It is independent of any transport: the web handlers, the staffctl CLI and
// the tests all drive the same [Service].
//
// # Store
//
// A [Store] is built once by ingestion and never mutated. Rows are
// [Record] values (column name to displayed text) kept in source order.
//
// # Queries
//
// [Filter] applies [Criteria] (allow-listed columns only, case-insensitive
// substring, AND-combined) and returns a [View] in store order. [Paginate]
// slices a view into a [Page]; each row carries its 1-based rank in the view
// under [IdentifierColumn]. Ranks are recomputed per request and are not
// stable across different filters.
//
// # Exports
//
// [Service.BeginExport] reserves one of a bounded number of render slots
// ([ExportLimiter]). Rendering itself lives in the report package.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError]:
//
//   - EXP001-EXP002: Export errors (busy, render failure)
//   - FILE001-FILE003: Data file errors
//   - REQ001-REQ002: Request cancelled or timed out
//   - RATE001: Rate limiting
package core
