package dryrun

import (
	"fmt"

	"github.com/arthur-debert/whatif/pkg/registry"
	"github.com/arthur-debert/whatif/pkg/targets"
	"github.com/arthur-debert/whatif/pkg/types"
)

func (r *reporter) tempFileStandIns() []standIn {
	return []standIn{
		{registry.TargetTempFile, targets.SigTempFile, targets.TempFunc(r.tempFile)},
	}
}

// tempFile always creates a real file. The genuine primitive opens it
// through the file target, so it only reaches storage while suspended.
func (r *reporter) tempFile(dir, pattern string) (types.File, error) {
	r.sink.Trace(fmt.Sprintf("%s opened a tempfile", r.resource()))

	return SuspendValue(r.c, r.session.Key.Resource, r.session.Key.Action, func() (types.File, error) {
		return r.c.temp.TempFile(dir, pattern)
	})
}
