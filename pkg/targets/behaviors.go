package targets

import (
	"context"
	"time"

	"github.com/arthur-debert/whatif/pkg/errors"
	"github.com/arthur-debert/whatif/pkg/registry"
	"github.com/arthur-debert/whatif/pkg/types"
)

// Behaviour types a stand-in may carry. The target asserts the behaviour
// to the type the signature expects.
type (
	OpenFunc     func(req types.OpenRequest) (types.File, error)
	PathFunc     func(path string) error
	PairFunc     func(src, dst string) error
	ChownFunc    func(uid, gid int, path string) error
	ChmodFunc    func(mode types.Mode, path string) error
	UtimeFunc    func(atime, mtime time.Time, path string) error
	CopyFunc     func(src, dst string, opts *types.CopyOptions) error
	TempFunc     func(dir, pattern string) (types.File, error)
	RunFunc      func(ctx context.Context, cmd types.Command) (types.CommandResult, error)
	Popen4Func   func(ctx context.Context, cmd types.Command, fn types.StreamHandler) (types.ExitStatus, error)
	ShellOutFunc func(cmd types.Command) types.ShellOut
)

// Operation signatures of the file target
const (
	SigDelete  registry.Signature = "delete"
	SigRename  registry.Signature = "rename"
	SigSymlink registry.Signature = "symlink"
	SigLink    registry.Signature = "link"
	SigChown   registry.Signature = "chown"
	SigLchown  registry.Signature = "lchown"
	SigChmod   registry.Signature = "chmod"
	SigUtime   registry.Signature = "utime"
)

// Operation signatures of the fileutils target
const (
	SigMkdirP    registry.Signature = "mkdir_p"
	SigCp        registry.Signature = "cp"
	SigCpOptions registry.Signature = "cp+options"
	SigRm        registry.Signature = "rm"
	SigRmRf      registry.Signature = "rm_rf"
	SigMv        registry.Signature = "mv"
	SigChownR    registry.Signature = "chown_r"
)

// Operation signatures of the tempfile, command and shellout targets
const (
	SigTempFile    registry.Signature = "tempfile"
	SigRunCommand  registry.Signature = "run_command"
	SigPopen4      registry.Signature = "popen4"
	SigNewShellOut registry.Signature = "new"
)

// OpenSignature maps an open request to its signature. Unsupported modes
// return false.
func OpenSignature(req types.OpenRequest) (registry.Signature, bool) {
	intent := req.Intent()
	if intent == types.IntentUnsupported {
		return "", false
	}
	sig := "open:" + intent.String()
	if req.HasHandler() {
		sig += "+handler"
	}
	return registry.Signature(sig), true
}

// OpenSignatures lists every open signature a stand-in set must cover
func OpenSignatures() []registry.Signature {
	var sigs []registry.Signature
	for _, intent := range []types.OpenIntent{types.IntentRead, types.IntentWrite, types.IntentAppend} {
		base := "open:" + intent.String()
		sigs = append(sigs, registry.Signature(base), registry.Signature(base+"+handler"))
	}
	return sigs
}

// behavior looks up the stand-in for target and sig and asserts it to T.
// The bool result is false when nothing is installed.
func behavior[T any](reg *registry.Registry, target registry.TargetID, sig registry.Signature) (T, bool, error) {
	var zero T
	si, ok := reg.Lookup(target, sig)
	if !ok {
		return zero, false, nil
	}
	fn, ok := si.Behavior.(T)
	if !ok {
		return zero, true, errors.Newf(errors.ErrStandInType,
			"stand-in for %s has behaviour %T", si.Key, si.Behavior).
			WithDetail("owner", si.Owner.String())
	}
	return fn, true, nil
}
