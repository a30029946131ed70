// Package pipeline orchestrates the EDD validation run: a fixed sequence of
// stages executed strictly in order over the shared station and result
// tables.
//
// The stages are, in order: load, unit reconciliation, parameter
// reconciliation, station/sample reconciliation, mandatory-list validation,
// station-existence validation, duplicate validation, numeric/text result
// validation, date/time validation, special-character validation, and the
// final partition-and-export.
//
// Row-level data-quality problems never abort a run; they are recorded as
// findings on the row and the stage finishes every row before the next stage
// starts. Structural problems (missing sheets or columns, an unreachable
// reference database) abort the whole run with no output file written.
package pipeline
