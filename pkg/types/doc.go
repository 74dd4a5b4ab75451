// Package types defines the operation surfaces resource providers call
// through: file primitives, bulk file/directory primitives, temp files and
// command execution. The request and result values shared by the genuine
// primitives, the interception targets and the dry run stand-ins live here.
package types
