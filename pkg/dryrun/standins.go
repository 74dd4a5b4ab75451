package dryrun

import (
	"github.com/arthur-debert/whatif/pkg/logging"
	"github.com/arthur-debert/whatif/pkg/registry"
)

type standIn struct {
	target   registry.TargetID
	sig      registry.Signature
	behavior any
}

// reporter carries what every stand-in of one session needs
type reporter struct {
	c       *Controller
	session *Session
	sink    logging.Sink
}

func (r *reporter) resource() string {
	return r.session.Key.Resource
}

// suspend runs work against the genuine primitives of this session
func (r *reporter) suspend(work func() error) error {
	return r.c.Suspend(r.session.Key.Resource, r.session.Key.Action, work)
}

// standIns builds the full set installed by Start
func (c *Controller) standIns(s *Session, sink logging.Sink) []standIn {
	r := &reporter{c: c, session: s, sink: sink}

	var set []standIn
	set = append(set, r.fileStandIns()...)
	set = append(set, r.fileUtilsStandIns()...)
	set = append(set, r.tempFileStandIns()...)
	set = append(set, r.commandStandIns()...)
	return set
}
