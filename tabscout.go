// Package tabscout locates tabular groups in markup documents. It scans
// the parsed tree for parent nodes whose direct children repeat a single
// label (lists, table bodies, card grids), ranks them by the strength of
// the repetition, and can fetch, store, and export the results.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, rod/).
package tabscout
