package style

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRenderReport(t *testing.T) {
	out := RenderReport("whatif apply", []Line{
		{Resource: "file", Action: "create", Status: StatusSimulated, Duration: 3 * time.Millisecond},
		{Resource: "execute", Action: "run", Status: StatusFailed, Err: errors.New("exit 3")},
	})

	assert.Contains(t, out, "whatif apply")
	assert.Contains(t, out, "file[create]")
	assert.Contains(t, out, "simulated")
	assert.Contains(t, out, "exit 3")
	assert.Contains(t, out, "0 applied, 1 simulated, 1 failed")
}

func TestRenderReportEmpty(t *testing.T) {
	assert.Contains(t, RenderReport("title", nil), "No actions.")
}

func TestIndicator(t *testing.T) {
	assert.Equal(t, SuccessIndicator, Indicator(StatusApplied))
	assert.Equal(t, SimulatedIndicator, Indicator(StatusSimulated))
	assert.Equal(t, ErrorIndicator, Indicator(StatusFailed))
}
