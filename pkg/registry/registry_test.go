package registry

import (
	"fmt"
	"sync"
	"testing"

	"github.com/arthur-debert/whatif/pkg/errors"
)

var (
	fileSession = SessionKey{Resource: "file[/etc/motd]", Action: "create"}
	pkgSession  = SessionKey{Resource: "package[git]", Action: "install"}
)

func noop() {}

func TestNew(t *testing.T) {
	reg := New()

	if reg.Count() != 0 {
		t.Errorf("New registry should be empty, got count %d", reg.Count())
	}

	if got := len(reg.Targets()); got != len(Static()) {
		t.Errorf("Targets() = %d targets, want %d", got, len(Static()))
	}
}

func TestInstall(t *testing.T) {
	reg := New()

	t.Run("install valid stand-in", func(t *testing.T) {
		err := reg.Install(fileSession, TargetFile, "delete", noop)
		if err != nil {
			t.Fatalf("Install() error = %v, want nil", err)
		}
		if !reg.Has(TargetFile, "delete") {
			t.Error("stand-in should be installed")
		}
	})

	t.Run("empty signature", func(t *testing.T) {
		err := reg.Install(fileSession, TargetFile, "", noop)
		if !errors.IsErrorCode(err, errors.ErrInvalidInput) {
			t.Errorf("Install() with empty signature should return ErrInvalidInput, got %v", err)
		}
	})

	t.Run("nil behavior", func(t *testing.T) {
		err := reg.Install(fileSession, TargetFile, "rename", nil)
		if !errors.IsErrorCode(err, errors.ErrInvalidInput) {
			t.Errorf("Install() with nil behavior should return ErrInvalidInput, got %v", err)
		}
	})

	t.Run("unknown target", func(t *testing.T) {
		err := reg.Install(fileSession, TargetID("socket"), "open", noop)
		if !errors.IsErrorCode(err, errors.ErrTargetMissing) {
			t.Errorf("Install() on unknown target should return ErrTargetMissing, got %v", err)
		}
	})

	t.Run("target held by another session", func(t *testing.T) {
		err := reg.Install(pkgSession, TargetFile, "chmod", noop)
		if !errors.IsErrorCode(err, errors.ErrSessionActive) {
			t.Errorf("Install() on held target should return ErrSessionActive, got %v", err)
		}
	})

	t.Run("last write wins", func(t *testing.T) {
		first := func() string { return "first" }
		second := func() string { return "second" }
		_ = reg.Install(fileSession, TargetFile, "chown", first)
		_ = reg.Install(fileSession, TargetFile, "chown", second)

		si, ok := reg.Lookup(TargetFile, "chown")
		if !ok {
			t.Fatal("Lookup() should find chown")
		}
		if got := si.Behavior.(func() string)(); got != "second" {
			t.Errorf("Lookup() behavior = %q, want %q", got, "second")
		}
	})
}

func TestTeardownAndReinstall(t *testing.T) {
	reg := New()
	for _, sig := range []Signature{"open:write", "delete", "chmod"} {
		if err := reg.Install(fileSession, TargetFile, sig, noop); err != nil {
			t.Fatalf("Install(%s) error = %v", sig, err)
		}
	}
	if err := reg.Install(fileSession, TargetCommand, "run_command", noop); err != nil {
		t.Fatalf("Install(run_command) error = %v", err)
	}

	snap := reg.Teardown(fileSession)

	if snap.Len() != 4 {
		t.Errorf("Snapshot.Len() = %d, want 4", snap.Len())
	}
	if snap.Owner() != fileSession {
		t.Errorf("Snapshot.Owner() = %v, want %v", snap.Owner(), fileSession)
	}
	if reg.Count() != 0 {
		t.Errorf("Count() after Teardown = %d, want 0", reg.Count())
	}
	wantKeys := "[command.run_command file.chmod file.delete file.open:write]"
	if got := fmt.Sprint(snap.Keys()); got != wantKeys {
		t.Errorf("Snapshot.Keys() = %s, want %s", got, wantKeys)
	}

	if err := reg.Reinstall(snap); err != nil {
		t.Fatalf("Reinstall() error = %v", err)
	}
	if err := reg.Reinstall(snap); err != nil {
		t.Fatalf("second Reinstall() error = %v", err)
	}
	if reg.Count() != 4 {
		t.Errorf("Count() after Reinstall = %d, want 4", reg.Count())
	}

	want := []Signature{"chmod", "delete", "open:write"}
	got := reg.Active(TargetFile)
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("Active(file) = %v, want %v", got, want)
	}
}

func TestTeardownLeavesOtherSessions(t *testing.T) {
	reg := New()
	_ = reg.Install(fileSession, TargetFile, "delete", noop)
	_ = reg.Install(pkgSession, TargetCommand, "run_command", noop)

	snap := reg.Teardown(fileSession)

	if snap.Len() != 1 {
		t.Errorf("Snapshot.Len() = %d, want 1", snap.Len())
	}
	if !reg.Has(TargetCommand, "run_command") {
		t.Error("Teardown() removed another session's stand-in")
	}
	if owners := reg.Owners(); len(owners) != 1 || owners[0] != pkgSession {
		t.Errorf("Owners() = %v, want [%v]", owners, pkgSession)
	}
}

func TestReinstallUnknownTarget(t *testing.T) {
	full := New()
	_ = full.Install(fileSession, TargetTempFile, "open", noop)
	snap := full.Teardown(fileSession)

	partial := New(TargetFile)
	err := partial.Reinstall(snap)

	if !errors.IsErrorCode(err, errors.ErrTargetMissing) {
		t.Errorf("Reinstall() onto missing target should return ErrTargetMissing, got %v", err)
	}
	if partial.Count() != 0 {
		t.Errorf("failed Reinstall() should apply nothing, count = %d", partial.Count())
	}

	defer func() {
		if recover() == nil {
			t.Error("MustReinstall() should panic on a missing target")
		}
	}()
	partial.MustReinstall(snap)
}

func TestClear(t *testing.T) {
	reg := New()
	_ = reg.Install(fileSession, TargetFile, "delete", noop)
	_ = reg.Install(pkgSession, TargetCommand, "popen4", noop)

	reg.Clear()

	if reg.Count() != 0 {
		t.Errorf("Count() after Clear() = %d, want 0", reg.Count())
	}
}

func TestConcurrentLookups(t *testing.T) {
	reg := New()
	_ = reg.Install(fileSession, TargetFile, "delete", noop)

	const goroutines = 10
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				if !reg.Has(TargetFile, "delete") {
					t.Error("concurrent Lookup() lost the stand-in")
					return
				}
			}
		}()
	}
	wg.Wait()
}
