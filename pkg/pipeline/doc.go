// Package pipeline runs resource actions, wrapping each in a dry-run
// session when dry-run mode is on.
//
// A Stack wires the registry, targets, genuine primitives and dry-run
// controller together. Plans are YAML files listing resources and the
// primitive steps their actions perform; they stand in for real resource
// providers.
package pipeline
