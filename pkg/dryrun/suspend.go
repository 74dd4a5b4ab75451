package dryrun

import (
	"github.com/arthur-debert/whatif/pkg/registry"
)

// suspension is a scoped removal of one session's stand-ins
type suspension struct {
	c        *Controller
	snapshot registry.Snapshot
	released bool
}

func (c *Controller) suspend(key registry.SessionKey) *suspension {
	return &suspension{c: c, snapshot: c.reg.Teardown(key)}
}

// release puts back exactly the stand-ins captured at suspension. A session
// finished during the suspended work stays finished.
func (s *suspension) release() {
	if s.released {
		return
	}
	s.released = true
	if s.snapshot.Len() == 0 {
		return
	}
	if active, ok := s.c.Active(); !ok || active.Key != s.snapshot.Owner() {
		s.c.logger.Debug().
			Str("session", s.snapshot.Owner().String()).
			Int("dropped", s.snapshot.Len()).
			Msg("Session finished while suspended, not reinstalling stand-ins")
		return
	}
	s.c.reg.MustReinstall(s.snapshot)
}

// Suspend runs work with the stand-ins of the resource action removed and
// restores them once work returns or panics. With dry-run mode off, work
// runs directly. The error or panic of work passes through unchanged.
func (c *Controller) Suspend(resourceID, actionID string, work func() error) error {
	if !c.flag.Enabled() {
		return work()
	}

	s := c.suspend(registry.SessionKey{Resource: resourceID, Action: actionID})
	defer s.release()

	if s.snapshot.Len() > 0 {
		c.logger.Trace().
			Str("resource", resourceID).
			Int("suspended", s.snapshot.Len()).
			Msg("Suspended dry run stand-ins")
	}
	return work()
}

// SuspendValue is Suspend for work that produces a value
func SuspendValue[T any](c *Controller, resourceID, actionID string, work func() (T, error)) (T, error) {
	var result T
	err := c.Suspend(resourceID, actionID, func() error {
		var err error
		result, err = work()
		return err
	})
	return result, err
}
