package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/arthur-debert/whatif/pkg/errors"
)

// TargetID names an operation surface subject to interception
type TargetID string

// The static targets
const (
	TargetFile      TargetID = "file"
	TargetFileUtils TargetID = "fileutils"
	TargetTempFile  TargetID = "tempfile"
	TargetCommand   TargetID = "command"
	TargetShellOut  TargetID = "shellout"
)

// Static returns every target the facility knows about
func Static() []TargetID {
	return []TargetID{TargetFile, TargetFileUtils, TargetTempFile, TargetCommand, TargetShellOut}
}

// Signature is an operation name plus argument shape, e.g. "open:write+handler"
type Signature string

// SessionKey identifies the resource/action pair that owns stand-ins
type SessionKey struct {
	Resource string
	Action   string
}

func (k SessionKey) String() string {
	return fmt.Sprintf("%s[%s]", k.Resource, k.Action)
}

// Key addresses one slot of the table
type Key struct {
	Target    TargetID
	Signature Signature
}

func (k Key) String() string {
	return string(k.Target) + "." + string(k.Signature)
}

// StandIn is an installed override
type StandIn struct {
	Key      Key
	Owner    SessionKey
	Behavior any
}

// Snapshot captures the stand-ins a session had installed. It is produced
// by Teardown and consumed by Reinstall.
type Snapshot struct {
	owner    SessionKey
	standIns []StandIn
}

// Owner returns the session the snapshot was taken from
func (s Snapshot) Owner() SessionKey {
	return s.owner
}

// Len returns the number of captured stand-ins
func (s Snapshot) Len() int {
	return len(s.standIns)
}

// Keys returns the captured keys in a stable order
func (s Snapshot) Keys() []Key {
	keys := make([]Key, len(s.standIns))
	for i, si := range s.standIns {
		keys[i] = si.Key
	}
	return keys
}

// Registry is the interception table
type Registry struct {
	mu      sync.RWMutex
	targets map[TargetID]struct{}
	active  map[Key]StandIn
}

// New creates a Registry over a fixed set of targets. With no arguments the
// Static set is used.
func New(targets ...TargetID) *Registry {
	if len(targets) == 0 {
		targets = Static()
	}
	r := &Registry{
		targets: make(map[TargetID]struct{}, len(targets)),
		active:  make(map[Key]StandIn),
	}
	for _, t := range targets {
		r.targets[t] = struct{}{}
	}
	return r
}

// Install registers or overwrites the stand-in for target and sig. The last
// install for an exact key wins.
func (r *Registry) Install(owner SessionKey, target TargetID, sig Signature, behavior any) error {
	if sig == "" {
		return errors.New(errors.ErrInvalidInput, "signature cannot be empty")
	}
	if behavior == nil {
		return errors.Newf(errors.ErrInvalidInput, "stand-in for %s.%s has no behavior", target, sig)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkTargetLocked(owner, target); err != nil {
		return err
	}

	key := Key{Target: target, Signature: sig}
	r.active[key] = StandIn{Key: key, Owner: owner, Behavior: behavior}
	return nil
}

// checkTargetLocked enforces that target exists and that no other session
// holds stand-ins on it
func (r *Registry) checkTargetLocked(owner SessionKey, target TargetID) error {
	if _, ok := r.targets[target]; !ok {
		return errors.Newf(errors.ErrTargetMissing, "target '%s' is not registered", target).
			WithDetail("target", string(target))
	}
	for key, si := range r.active {
		if key.Target == target && si.Owner != owner {
			return errors.Newf(errors.ErrSessionActive,
				"target '%s' is held by %s", target, si.Owner).
				WithDetail("owner", si.Owner.String())
		}
	}
	return nil
}

// Lookup returns the stand-in installed for target and sig
func (r *Registry) Lookup(target TargetID, sig Signature) (StandIn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	si, ok := r.active[Key{Target: target, Signature: sig}]
	return si, ok
}

// Teardown removes every stand-in owned by owner and returns a snapshot
// that reinstalls them identically
func (r *Registry) Teardown(owner SessionKey) Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := Snapshot{owner: owner}
	for key, si := range r.active {
		if si.Owner == owner {
			snap.standIns = append(snap.standIns, si)
			delete(r.active, key)
		}
	}
	sort.Slice(snap.standIns, func(i, j int) bool {
		return snap.standIns[i].Key.String() < snap.standIns[j].Key.String()
	})
	return snap
}

// Reinstall reapplies a snapshot. Applying the same snapshot twice leaves
// the table unchanged. A snapshot naming a target this registry does not
// know is a programming error and nothing is applied.
func (r *Registry) Reinstall(s Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, si := range s.standIns {
		if err := r.checkTargetLocked(s.owner, si.Key.Target); err != nil {
			return err
		}
	}
	for _, si := range s.standIns {
		r.active[si.Key] = si
	}
	return nil
}

// MustReinstall reapplies a snapshot and panics if that fails
func (r *Registry) MustReinstall(s Snapshot) {
	if err := r.Reinstall(s); err != nil {
		panic(fmt.Sprintf("failed to reinstall stand-ins for %s: %v", s.owner, err))
	}
}

// Has reports whether a stand-in is installed for target and sig
func (r *Registry) Has(target TargetID, sig Signature) bool {
	_, ok := r.Lookup(target, sig)
	return ok
}

// Active returns the installed signatures of target in sorted order
func (r *Registry) Active(target TargetID) []Signature {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sigs []Signature
	for key := range r.active {
		if key.Target == target {
			sigs = append(sigs, key.Signature)
		}
	}
	sort.Slice(sigs, func(i, j int) bool { return sigs[i] < sigs[j] })
	return sigs
}

// Owners returns the sessions currently holding stand-ins
func (r *Registry) Owners() []SessionKey {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[SessionKey]struct{})
	var owners []SessionKey
	for _, si := range r.active {
		if _, ok := seen[si.Owner]; ok {
			continue
		}
		seen[si.Owner] = struct{}{}
		owners = append(owners, si.Owner)
	}
	sort.Slice(owners, func(i, j int) bool { return owners[i].String() < owners[j].String() })
	return owners
}

// Targets returns the registered targets in sorted order
func (r *Registry) Targets() []TargetID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]TargetID, 0, len(r.targets))
	for id := range r.targets {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Count returns the number of installed stand-ins
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.active)
}

// Clear removes every stand-in regardless of owner
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.active = make(map[Key]StandIn)
}
