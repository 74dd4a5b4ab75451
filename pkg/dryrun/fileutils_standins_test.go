package dryrun

import (
	"testing"

	"github.com/arthur-debert/whatif/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulkStandIns(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.synth.MkdirAll("/srv/app", 0755))
	require.NoError(t, h.synth.WriteFile("/srv/app/config", []byte("c"), 0644))

	h.start(t)

	require.NoError(t, h.bulk.MkdirP("/srv/new/dir"))
	require.NoError(t, h.bulk.Cp("/srv/app/config", "/srv/backup", nil))
	require.NoError(t, h.bulk.Cp("/srv/app", "/srv/copy", &types.CopyOptions{Recursive: true}))
	require.NoError(t, h.bulk.Rm("/srv/app/config"))
	require.NoError(t, h.bulk.RmRf("/srv/app"))
	require.NoError(t, h.bulk.Mv("/srv/app", "/srv/old"))
	require.NoError(t, h.bulk.ChownR(1000, 1000, "/srv/app"))

	res := testResource + " "
	assert.Equal(t, []string{
		res + "would create directory /srv/new/dir",
		res + "would copy /srv/app/config to /srv/backup",
		res + "would copy /srv/app to /srv/copy",
		res + "would delete /srv/app/config",
		res + "would recursively delete /srv/app",
		res + "would move /srv/app to /srv/old",
		res + "would recursively chown /srv/app owner to 1000, and group to 1000",
	}, h.sink.Warnings())

	for _, path := range []string{"/srv/new", "/srv/backup", "/srv/copy", "/srv/old"} {
		_, err := h.synth.Stat(path)
		assert.Error(t, err, "%s should not exist", path)
	}
	_, err := h.synth.Stat("/srv/app/config")
	assert.NoError(t, err, "sources must be untouched")
}
