// Package targets holds the operation surfaces that resource providers call.
//
// Each target wraps a genuine primitive and consults the interception
// registry on every call. When a stand-in is installed for the exact
// operation signature the call goes to the stand-in, otherwise it reaches the
// genuine primitive untouched. Signatures are computed from typed requests so
// every call maps to exactly one signature.
package targets
