package types

import (
	"io/fs"
	"os"
)

// OpenIntent is what an open request means to do with the file
type OpenIntent int

const (
	// IntentUnsupported marks a mode outside the recognised surface
	IntentUnsupported OpenIntent = iota
	IntentRead
	IntentWrite
	IntentAppend
)

func (i OpenIntent) String() string {
	switch i {
	case IntentRead:
		return "read"
	case IntentWrite:
		return "write"
	case IntentAppend:
		return "append"
	default:
		return "unsupported"
	}
}

// DefaultPerm is the permission used when an OpenRequest does not carry one
const DefaultPerm fs.FileMode = 0644

var openModes = map[string]struct {
	intent OpenIntent
	flags  int
}{
	"r":   {IntentRead, os.O_RDONLY},
	"rb":  {IntentRead, os.O_RDONLY},
	"w":   {IntentWrite, os.O_WRONLY | os.O_CREATE | os.O_TRUNC},
	"wb":  {IntentWrite, os.O_WRONLY | os.O_CREATE | os.O_TRUNC},
	"w+":  {IntentWrite, os.O_RDWR | os.O_CREATE | os.O_TRUNC},
	"wb+": {IntentWrite, os.O_RDWR | os.O_CREATE | os.O_TRUNC},
	"w+b": {IntentWrite, os.O_RDWR | os.O_CREATE | os.O_TRUNC},
	"a":   {IntentAppend, os.O_WRONLY | os.O_CREATE | os.O_APPEND},
	"ab":  {IntentAppend, os.O_WRONLY | os.O_CREATE | os.O_APPEND},
	"a+":  {IntentAppend, os.O_RDWR | os.O_CREATE | os.O_APPEND},
	"ab+": {IntentAppend, os.O_RDWR | os.O_CREATE | os.O_APPEND},
	"a+b": {IntentAppend, os.O_RDWR | os.O_CREATE | os.O_APPEND},
	// r+ is a genuine mode but no stand-in covers it
	"r+":  {IntentUnsupported, os.O_RDWR},
	"rb+": {IntentUnsupported, os.O_RDWR},
	"r+b": {IntentUnsupported, os.O_RDWR},
}

// ParseOpenMode returns the intent of an open mode string
func ParseOpenMode(mode string) OpenIntent {
	if m, ok := openModes[mode]; ok {
		return m.intent
	}
	return IntentUnsupported
}

// OpenFlags returns the os.OpenFile flags for an open mode string
func OpenFlags(mode string) (int, bool) {
	m, ok := openModes[mode]
	if !ok {
		return 0, false
	}
	return m.flags, true
}

// OpenRequest is a single open call. The intent comes from Mode and the
// presence of Handler decides whether the caller gets a handle back.
type OpenRequest struct {
	Path    string
	Mode    string
	Perm    fs.FileMode
	Handler func(File) error
}

// Intent returns the parsed intent of the request mode
func (r OpenRequest) Intent() OpenIntent {
	return ParseOpenMode(r.Mode)
}

// HasHandler reports whether the request carries a handler callback
func (r OpenRequest) HasHandler() bool {
	return r.Handler != nil
}

// Permission returns Perm or DefaultPerm when unset
func (r OpenRequest) Permission() fs.FileMode {
	if r.Perm == 0 {
		return DefaultPerm
	}
	return r.Perm
}
