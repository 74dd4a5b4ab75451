package filesystem

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/whatif/pkg/types"
	"github.com/google/uuid"
)

// TempFiles implements types.TempFiles. Files are opened through ops with
// mode "w+", so an intercepted ops only lets them reach storage while
// interception is suspended.
type TempFiles struct {
	ops types.FileOps
	dir string
}

var _ types.TempFiles = (*TempFiles)(nil)

// NewTempFiles creates temp-file primitives. An empty dir selects the OS
// temp directory.
func NewTempFiles(ops types.FileOps, dir string) *TempFiles {
	return &TempFiles{ops: ops, dir: dir}
}

// TempFile opens a new file in dir. The last "*" in pattern is replaced by
// a random string, otherwise the random string is appended.
func (t *TempFiles) TempFile(dir, pattern string) (types.File, error) {
	if dir == "" {
		dir = t.dir
	}
	if dir == "" {
		dir = os.TempDir()
	}

	return t.ops.Open(types.OpenRequest{
		Path: filepath.Join(dir, tempName(pattern)),
		Mode: "w+",
		Perm: 0600,
	})
}

func tempName(pattern string) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	if i := strings.LastIndex(pattern, "*"); i >= 0 {
		return pattern[:i] + random + pattern[i+1:]
	}
	return pattern + random
}
