package dryrun

import (
	"io"

	"github.com/arthur-debert/whatif/pkg/logging"
	"github.com/arthur-debert/whatif/pkg/types"
)

// fakeFile is handed out for write-intent opens. Everything written to it
// goes to the warning log instead of storage.
type fakeFile struct {
	name string
	sink logging.Sink
}

var _ types.File = (*fakeFile)(nil)

func newFakeFile(name string, sink logging.Sink) *fakeFile {
	return &fakeFile{name: name, sink: sink}
}

func (f *fakeFile) Name() string {
	return f.name
}

func (f *fakeFile) Write(p []byte) (int, error) {
	f.sink.Append(string(p))
	return len(p), nil
}

func (f *fakeFile) WriteString(s string) (int, error) {
	f.sink.Append(s)
	return len(s), nil
}

func (f *fakeFile) Read([]byte) (int, error) {
	return 0, io.EOF
}

func (f *fakeFile) Close() error {
	return nil
}
