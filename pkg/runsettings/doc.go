// Package runsettings implements the run-settings store: an XML document
// holding configuration shared across a test run, addressed by dotted node
// paths such as "RunConfiguration.TestAdaptersPaths".
package runsettings
