package dryrun

import (
	"fmt"
	"io"
	"os"
	"testing"
	"time"

	"github.com/arthur-debert/whatif/pkg/errors"
	"github.com/arthur-debert/whatif/pkg/targets"
	"github.com/arthur-debert/whatif/pkg/testutil"
	"github.com/arthur-debert/whatif/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteIntentOpens(t *testing.T) {
	tests := []struct {
		name    string
		mode    string
		handler bool
		notice  string
	}{
		{name: "write", mode: "w", notice: "would overwrite file at /srv/out"},
		{name: "write plus", mode: "w+", handler: true, notice: "would overwrite file at /srv/out"},
		{name: "write binary", mode: "wb", handler: true, notice: "would overwrite file at /srv/out"},
		{name: "append", mode: "a", notice: "would append to the contents of /srv/out"},
		{name: "append binary plus", mode: "ab+", handler: true, notice: "would append to the contents of /srv/out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.start(t)

			req := types.OpenRequest{Path: "/srv/out", Mode: tt.mode}
			write := func(f types.File) error {
				_, err := fmt.Fprintf(f, "key=%d\n", 1)
				return err
			}

			if tt.handler {
				req.Handler = write
				file, err := h.files.Open(req)
				require.NoError(t, err)
				assert.Nil(t, file)
			} else {
				file, err := h.files.Open(req)
				require.NoError(t, err)
				require.NoError(t, write(file))
				require.NoError(t, file.Close())
			}

			testutil.AssertNoFile(t, h.mem, "/srv/out")
			assert.Equal(t, []string{testResource + " " + tt.notice}, h.sink.Warnings())
			assert.Equal(t, testResource+" "+tt.notice+"\nkey=1\n", h.sink.Output())
		})
	}
}

func TestFakeFile(t *testing.T) {
	sink := testutil.NewRecordingSink()
	f := newFakeFile("/x", sink)

	n, err := f.WriteString("abc")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Empty(t, data)

	assert.Equal(t, "/x", f.Name())
	assert.NoError(t, f.Close())
	assert.Equal(t, []string{"abc"}, sink.Messages(testutil.LevelAppend))
}

func TestWriteHandlerErrorPropagates(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	handlerErr := errors.New(errors.ErrInternal, "template failed")

	_, err := h.files.Open(types.OpenRequest{
		Path:    "/srv/out",
		Mode:    "w",
		Handler: func(types.File) error { return handlerErr },
	})

	assert.Equal(t, handlerErr, err)
}

func TestReadOpensPassThrough(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, afero.WriteFile(h.mem, "/etc/hosts", []byte("127.0.0.1 localhost\n"), 0644))

	direct, err := targets.ReadFile(h.files, "/etc/hosts")
	require.NoError(t, err)

	h.start(t)
	countBefore := h.reg.Count()

	inSession, err := targets.ReadFile(h.files, "/etc/hosts")
	require.NoError(t, err)
	assert.Equal(t, direct, inSession)

	file, err := h.files.Open(types.OpenRequest{Path: "/etc/hosts", Mode: "rb"})
	require.NoError(t, err)
	data, err := io.ReadAll(file)
	require.NoError(t, err)
	require.NoError(t, file.Close())
	assert.Equal(t, direct, data)

	assert.Equal(t, countBefore, h.reg.Count(), "stand-ins must be restored after a read")
	assert.Contains(t, h.sink.Traces(), testResource+" opened file /etc/hosts with mode r")
	assert.Contains(t, h.sink.Traces(), testResource+" opened file /etc/hosts with mode rb")
	assert.Empty(t, h.sink.Warnings())
}

func TestReadOpenMissingFile(t *testing.T) {
	h := newHarness(t)
	h.start(t)

	_, err := h.files.Open(types.OpenRequest{Path: "/nope", Mode: "r"})

	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.True(t, h.reg.Has("file", "open:read"))
}

func TestMetadataMutationsLeaveDiskUnchanged(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, afero.WriteFile(h.mem, "/data/file", []byte("x"), 0644))
	before, err := h.mem.Stat("/data/file")
	require.NoError(t, err)

	h.start(t)
	when := time.Date(2009, 11, 10, 23, 0, 0, 0, time.UTC)

	require.NoError(t, h.files.Chmod(types.NumericMode(0100755), "/data/file"))
	require.NoError(t, h.files.Chown(0, -1, "/data/file"))
	require.NoError(t, h.files.Lchown(-1, 20, "/data/file"))
	require.NoError(t, h.files.Utime(when, when, "/data/file"))
	require.NoError(t, h.files.Symlink("/data/file", "/data/soft"))
	require.NoError(t, h.files.Link("/data/file", "/data/hard"))
	require.NoError(t, h.files.Rename("/data/file", "/data/moved"))
	require.NoError(t, h.files.Delete("/data/file"))

	after, err := h.mem.Stat("/data/file")
	require.NoError(t, err)
	assert.Equal(t, before.Mode(), after.Mode())
	assert.Equal(t, before.ModTime(), after.ModTime())
	testutil.AssertNoFile(t, h.mem, "/data/soft")
	testutil.AssertNoFile(t, h.mem, "/data/hard")
	testutil.AssertNoFile(t, h.mem, "/data/moved")

	res := testResource + " "
	assert.Equal(t, []string{
		res + "would chmod /data/file to 755",
		res + "would chown /data/file owner to 0, and group to nil",
		res + "would lchown /data/file owner to nil, and group to 20",
		res + "would set atime to 2009-11-10T23:00:00Z and mtime to 2009-11-10T23:00:00Z on /data/file",
		res + "would create symbolic link /data/soft pointing to /data/file",
		res + "would create hard link /data/hard pointing to /data/file",
		res + "would rename /data/file to /data/moved",
		res + "would delete /data/file",
	}, h.sink.Warnings())
}

func TestChmodModeResolution(t *testing.T) {
	tests := []struct {
		name string
		mode types.Mode
	}{
		{name: "numeric with file type bits", mode: types.NumericMode(0100644)},
		{name: "octal text", mode: types.OctalMode("100644")},
		{name: "prefixed octal text", mode: types.OctalMode("0o644")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.start(t)

			require.NoError(t, h.files.Chmod(tt.mode, "/f"))
			assert.Equal(t, []string{testResource + " would chmod /f to 644"}, h.sink.Warnings())
		})
	}
}

func TestChmodInvalidMode(t *testing.T) {
	h := newHarness(t)
	h.start(t)

	err := h.files.Chmod(types.OctalMode("u+x"), "/f")

	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidMode))
	assert.Empty(t, h.sink.Warnings())
}

func TestUnsupportedOpenModeRunsForReal(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, afero.WriteFile(h.mem, "/data/rw", []byte("old"), 0644))
	h.start(t)

	file, err := h.files.Open(types.OpenRequest{Path: "/data/rw", Mode: "r+"})
	require.NoError(t, err)
	_, err = file.WriteString("new")
	require.NoError(t, err)
	require.NoError(t, file.Close())

	assert.Equal(t, "new", testutil.ReadFile(t, h.mem, "/data/rw"))
	assert.Empty(t, h.sink.Warnings())
}
