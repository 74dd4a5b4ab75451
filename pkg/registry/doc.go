// Package registry holds the interception table: which stand-in, owned by
// which dry run session, currently overrides each (target, signature) pair.
//
// Targets are a static set fixed when the registry is created. Install,
// Teardown and Reinstall are plain state transitions over an explicit
// Registry value owned by the execution pipeline; there is no package level
// state.
package registry
