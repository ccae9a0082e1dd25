// Package registry provides a generic, thread-safe registry used to hold
// argument processors and other named components. Registration happens at
// init() time; lookups happen from the CLI driver.
package registry
