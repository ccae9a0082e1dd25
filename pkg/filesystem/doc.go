// Package filesystem provides filesystem implementations for testrig.
//
// Argument processors only need existence checks and file reads, so the FS
// interface here is deliberately small. The OS implementation backs real
// runs; the afero implementation backs tests on an in-memory filesystem.
package filesystem
