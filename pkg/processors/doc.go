// Package processors implements the argument-processor framework.
//
// An argument processor recognizes one command-line flag, validates and
// transforms its value, and applies a side effect to the shared run-settings
// store or options object. Processors register themselves at init() time and
// are dispatched by the CLI driver in priority order.
package processors
