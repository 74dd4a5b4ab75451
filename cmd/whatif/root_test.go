package whatif

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--log-file", filepath.Join(t.TempDir(), "whatif.log")))
	err := root.Execute()
	return out.String(), err
}

func writePlan(t *testing.T, target string) string {
	t.Helper()
	dir := t.TempDir()
	plan := filepath.Join(dir, "plan.yaml")
	content := "name: test\nresources:\n  - name: file[" + target + "]\n    action: create\n    steps:\n" +
		"      - op: write\n        path: " + target + "\n        content: bar=1\n"
	require.NoError(t, os.WriteFile(plan, []byte(content), 0644))
	return plan
}

func TestApplyDryRun(t *testing.T) {
	target := filepath.Join(t.TempDir(), "foo.conf")

	out, err := execute(t, "apply", writePlan(t, target), "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "simulated")
	assert.Contains(t, out, MsgDryRunNotice)
	assert.NoFileExists(t, target)
}

func TestApply(t *testing.T) {
	target := filepath.Join(t.TempDir(), "foo.conf")

	out, err := execute(t, "apply", writePlan(t, target))
	require.NoError(t, err)
	assert.Contains(t, out, "applied")
	assert.NotContains(t, out, MsgDryRunNotice)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "bar=1", string(content))
}

func TestApplyMissingPlan(t *testing.T) {
	_, err := execute(t, "apply", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestGenConfig(t *testing.T) {
	out, err := execute(t, "genconfig")
	require.NoError(t, err)
	assert.Contains(t, out, "# whatif configuration")
	assert.Contains(t, out, "# shell = ")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "whatif version dev")
}

func TestNoCommand(t *testing.T) {
	_, err := execute(t)
	assert.Error(t, err)
}
