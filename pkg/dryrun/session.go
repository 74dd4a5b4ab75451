package dryrun

import (
	"fmt"
	"sync"
	"time"

	"github.com/arthur-debert/whatif/pkg/errors"
	"github.com/arthur-debert/whatif/pkg/logging"
	"github.com/arthur-debert/whatif/pkg/registry"
	"github.com/arthur-debert/whatif/pkg/targets"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Flag reports whether dry-run mode is on
type Flag interface {
	Enabled() bool
}

type alwaysOn struct{}

func (alwaysOn) Enabled() bool { return true }

// Session is the identity of an installed stand-in set
type Session struct {
	Key     registry.SessionKey
	ID      string
	Started time.Time
}

// Resource returns the resource identifier the session simulates
func (s Session) Resource() string {
	return s.Key.Resource
}

// Controller manages dry-run sessions over a registry
type Controller struct {
	reg    *registry.Registry
	files  *targets.Files
	temp   *targets.Temp
	sink   logging.Sink
	flag   Flag
	logger zerolog.Logger

	mu      sync.Mutex
	session *Session
}

// Option configures a Controller
type Option func(*Controller)

// WithSink sets where stand-ins report. The default is logging.DefaultSink.
func WithSink(sink logging.Sink) Option {
	return func(c *Controller) {
		c.sink = sink
	}
}

// WithFlag sets the process-wide dry-run flag read by Suspend. Without it
// Suspend always suspends.
func WithFlag(flag Flag) Option {
	return func(c *Controller) {
		c.flag = flag
	}
}

// New creates a Controller. files and temp are the targets whose genuine
// primitives read opens and temp-file creation pass through to.
func New(reg *registry.Registry, files *targets.Files, temp *targets.Temp, opts ...Option) *Controller {
	c := &Controller{
		reg:    reg,
		files:  files,
		temp:   temp,
		flag:   alwaysOn{},
		logger: logging.GetLogger("dryrun"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.sink == nil {
		c.sink = logging.DefaultSink()
	}
	return c
}

// Start installs the stand-in set for a resource action. Only one session
// may be active at a time.
func (c *Controller) Start(resourceID, actionID string) error {
	key := registry.SessionKey{Resource: resourceID, Action: actionID}

	c.mu.Lock()
	if c.session != nil {
		active := c.session.Key
		c.mu.Unlock()
		return errors.Newf(errors.ErrSessionActive,
			"cannot start %s while %s is active", key, active).
			WithDetail("active", active.String())
	}
	session := &Session{Key: key, ID: uuid.NewString(), Started: time.Now()}
	c.session = session
	c.mu.Unlock()

	sink := c.sink.With("session", session.ID)
	for _, si := range c.standIns(session, sink) {
		if err := c.reg.Install(key, si.target, si.sig, si.behavior); err != nil {
			c.reg.Teardown(key)
			c.clear(session)
			return err
		}
	}

	sink.Trace(fmt.Sprintf("%s initializing dry run stand-ins", resourceID))
	c.logger.Debug().
		Str("resource", resourceID).
		Str("action", actionID).
		Str("session", session.ID).
		Int("standIns", c.reg.Count()).
		Msg("Dry run session started")
	return nil
}

// Finish removes every stand-in the resource action installed. Finishing a
// session that is not active does nothing.
func (c *Controller) Finish(resourceID, actionID string) {
	key := registry.SessionKey{Resource: resourceID, Action: actionID}
	removed := c.reg.Teardown(key)

	c.mu.Lock()
	session := c.session
	if session == nil || session.Key != key {
		c.mu.Unlock()
		c.logger.Debug().
			Str("session", key.String()).
			Int("removed", removed.Len()).
			Msg("No active dry run session to finish")
		return
	}
	c.session = nil
	c.mu.Unlock()

	c.sink.With("session", session.ID).Trace(fmt.Sprintf("%s removed dry run stand-ins", resourceID))
	c.logger.Debug().
		Str("session", session.ID).
		Dur("duration", time.Since(session.Started)).
		Msg("Dry run session finished")
}

// Active returns the current session
func (c *Controller) Active() (Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return Session{}, false
	}
	return *c.session, true
}

func (c *Controller) clear(s *Session) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == s {
		c.session = nil
	}
}
