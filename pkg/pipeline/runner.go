package pipeline

import (
	"context"
	"time"

	"github.com/arthur-debert/whatif/pkg/dryrun"
	"github.com/arthur-debert/whatif/pkg/errors"
	"github.com/arthur-debert/whatif/pkg/logging"
	"github.com/rs/zerolog"
)

// Action is one resource action
type Action struct {
	Resource string
	Name     string
	Run      func(ctx context.Context) error
}

// ActionResult is the outcome of one action
type ActionResult struct {
	Resource  string
	Action    string
	Err       error
	Duration  time.Duration
	Simulated bool
}

// Runner executes actions one after another
type Runner struct {
	ctl    *dryrun.Controller
	flag   dryrun.Flag
	logger zerolog.Logger
}

// NewRunner creates a runner. Actions are simulated while flag is enabled.
func NewRunner(ctl *dryrun.Controller, flag dryrun.Flag) *Runner {
	return &Runner{
		ctl:    ctl,
		flag:   flag,
		logger: logging.GetLogger("pipeline"),
	}
}

// Run executes actions in order and stops at the first failure. The results
// include the failed action.
func (r *Runner) Run(ctx context.Context, actions []Action) ([]ActionResult, error) {
	results := make([]ActionResult, 0, len(actions))
	for _, action := range actions {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		result := r.runOne(ctx, action)
		results = append(results, result)
		if result.Err != nil {
			return results, errors.Wrapf(result.Err, errors.GetErrorCode(result.Err),
				"%s[%s] failed", action.Resource, action.Name)
		}
	}
	return results, nil
}

func (r *Runner) runOne(ctx context.Context, action Action) (result ActionResult) {
	result = ActionResult{Resource: action.Resource, Action: action.Name}
	done := logging.LogOperationStart(r.logger, action.Resource+"["+action.Name+"]")
	start := time.Now()

	defer func() {
		if p := recover(); p != nil {
			result.Err = errors.Newf(errors.ErrInternal, "action panicked: %v", p)
		}
		result.Duration = time.Since(start)
		done()
	}()

	if r.flag.Enabled() {
		if err := r.ctl.Start(action.Resource, action.Name); err != nil {
			result.Err = err
			return result
		}
		defer r.ctl.Finish(action.Resource, action.Name)
		result.Simulated = true
	}

	result.Err = action.Run(ctx)
	if result.Err != nil {
		r.logger.Error().
			Err(result.Err).
			Str("resource", action.Resource).
			Str("action", action.Name).
			Msg("Action failed")
	}
	return result
}
