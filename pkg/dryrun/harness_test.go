package dryrun

import (
	"testing"

	sfs "github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/arthur-debert/whatif/pkg/filesystem"
	"github.com/arthur-debert/whatif/pkg/registry"
	"github.com/arthur-debert/whatif/pkg/shell"
	"github.com/arthur-debert/whatif/pkg/targets"
	"github.com/arthur-debert/whatif/pkg/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const (
	testResource = "file[/etc/foo.conf]"
	testAction   = "create"
)

type harness struct {
	mem      afero.Fs
	synth    sfs.FullFileSystem
	reg      *registry.Registry
	files    *targets.Files
	bulk     *targets.Bulk
	temp     *targets.Temp
	commands *targets.Commands
	runner   *testutil.MockRunner
	sink     *testutil.RecordingSink
	ctl      *Controller
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()

	h := &harness{
		mem:    afero.NewMemMapFs(),
		synth:  testutil.NewSynthFS(),
		reg:    registry.New(),
		runner: &testutil.MockRunner{},
		sink:   testutil.NewRecordingSink(),
	}
	require.NoError(t, h.mem.MkdirAll("/tmp", 0755))

	h.files = targets.NewFiles(h.reg, filesystem.NewFiles(h.mem))
	h.temp = targets.NewTemp(h.reg, filesystem.NewTempFiles(h.files, "/tmp"))
	h.bulk = targets.NewBulk(h.reg, filesystem.NewBulk(h.synth))
	h.commands = targets.NewCommands(h.reg, h.runner, shell.Builder())

	opts = append([]Option{WithSink(h.sink)}, opts...)
	h.ctl = New(h.reg, h.files, h.temp, opts...)
	return h
}

// start begins the test session and finishes it at cleanup
func (h *harness) start(t *testing.T) {
	t.Helper()
	require.NoError(t, h.ctl.Start(testResource, testAction))
	t.Cleanup(func() { h.ctl.Finish(testResource, testAction) })
}

type staticFlag bool

func (f staticFlag) Enabled() bool { return bool(f) }
