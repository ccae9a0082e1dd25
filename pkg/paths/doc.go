// Package paths provides path list manipulation helpers for testrig.
//
// Adapter paths travel as a single semicolon-delimited string through the
// run-settings store. This package owns the split/join/dedupe rules and the
// quote trimming applied to raw command-line values.
package paths
