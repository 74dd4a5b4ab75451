package types

import (
	"io/fs"
	"strconv"
	"strings"

	"github.com/arthur-debert/whatif/pkg/errors"
)

// permissionMask keeps the permission bits plus set-uid, set-gid and sticky
const permissionMask = 07777

const (
	unixSetuid = 04000
	unixSetgid = 02000
	unixSticky = 01000
)

// Mode is a chmod argument as a resource supplies it: either numeric bits
// or text holding an octal number
type Mode struct {
	bits     uint32
	text     string
	fromText bool
}

// NumericMode returns a Mode from unix mode bits
func NumericMode(bits uint32) Mode {
	return Mode{bits: bits}
}

// OctalMode returns a Mode from octal text such as "0644" or "100755"
func OctalMode(text string) Mode {
	return Mode{text: text, fromText: true}
}

// Resolve converts the mode to unix bits masked to the low 12 bits
func (m Mode) Resolve() (uint32, error) {
	bits := m.bits
	if m.fromText {
		text := strings.TrimPrefix(strings.TrimSpace(m.text), "0o")
		v, err := strconv.ParseUint(text, 8, 32)
		if err != nil {
			return 0, errors.Wrapf(err, errors.ErrInvalidMode, "mode %q is not octal", m.text)
		}
		bits = uint32(v)
	}
	return bits & permissionMask, nil
}

// FileMode converts the resolved unix bits to an fs.FileMode
func (m Mode) FileMode() (fs.FileMode, error) {
	bits, err := m.Resolve()
	if err != nil {
		return 0, err
	}
	mode := fs.FileMode(bits & 0777)
	if bits&unixSetuid != 0 {
		mode |= fs.ModeSetuid
	}
	if bits&unixSetgid != 0 {
		mode |= fs.ModeSetgid
	}
	if bits&unixSticky != 0 {
		mode |= fs.ModeSticky
	}
	return mode, nil
}

// String formats the resolved mode as octal text without a prefix. An
// unresolvable mode formats as its raw text.
func (m Mode) String() string {
	bits, err := m.Resolve()
	if err != nil {
		return m.text
	}
	return strconv.FormatUint(uint64(bits), 8)
}

// FormatOwner renders an ownership id, -1 meaning "leave unchanged"
func FormatOwner(id int) string {
	if id < 0 {
		return "nil"
	}
	return strconv.Itoa(id)
}
