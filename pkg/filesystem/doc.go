// Package filesystem provides the genuine primitives behind the file,
// fileutils and tempfile targets.
//
// Files works over an afero.Fs so tests can run against a memory
// filesystem. Bulk works over a synthfs filesystem with absolute paths.
// TempFiles creates its files through a types.FileOps, normally the
// intercepted file target.
package filesystem
