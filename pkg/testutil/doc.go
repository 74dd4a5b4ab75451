// Package testutil provides utilities for testing whatif components.
//
// Key components:
//   - RecordingSink: a logging.Sink that keeps every event for assertions
//   - NewMemFS / NewSynthFS: memory filesystems for the genuine primitives
//   - MockRunner: a testify mock of types.CommandRunner
//
// Usage guidelines:
//   - Prefer memory filesystems; touch the OS only through t.TempDir
//   - All test data should be defined inline, not in external files
package testutil
