package profile

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata/v2"
)

func openTestStore(t *testing.T) *gdata.Manager {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)

	store, err := gdata.Open(gdata.Config{AppName: "trapsweep_test"})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return store
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestNewManagerUsesDefaults(t *testing.T) {
	m := NewManager(openTestStore(t), quietLogger())
	if got := m.Get(); got != Default() {
		t.Errorf("Get() = %+v, expected defaults", got)
	}
	if !m.Persistent() {
		t.Error("manager with a store should be persistent")
	}
}

func TestSaveAndReload(t *testing.T) {
	store := openTestStore(t)
	m := NewManager(store, quietLogger())

	err := m.Update(func(p *Profile) {
		p.Hero = "gale"
		p.Difficulty = "hard"
		p.Mode = "trapcrawl"
	})
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}

	reloaded := NewManager(store, quietLogger())
	got := reloaded.Get()
	if got.Hero != "gale" || got.Difficulty != "hard" || got.Mode != "trapcrawl" {
		t.Errorf("reloaded profile = %+v", got)
	}
}

func TestRecordDepth(t *testing.T) {
	m := NewManager(openTestStore(t), quietLogger())

	if best, err := m.RecordDepth(3); err != nil || !best {
		t.Fatalf("RecordDepth(3) = %v, %v", best, err)
	}
	if best, _ := m.RecordDepth(2); best {
		t.Error("shallower depth should not be a new best")
	}
	if m.Get().BestDepth != 3 {
		t.Errorf("BestDepth = %d, expected 3", m.Get().BestDepth)
	}
}

func TestNilStoreWorksInMemory(t *testing.T) {
	m := NewManager(nil, quietLogger())
	if m.Persistent() {
		t.Error("nil store should not be persistent")
	}
	if err := m.Update(func(p *Profile) { p.Hero = "sage" }); err != nil {
		t.Fatalf("Update() in memory failed: %v", err)
	}
	if m.Get().Hero != "sage" {
		t.Error("in-memory update lost")
	}
	if err := m.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if m.Get() != Default() {
		t.Error("Load() without a store should reset to defaults")
	}
}

func TestLoadCorruptProfile(t *testing.T) {
	store := openTestStore(t)
	if err := store.SaveObjectProp(profileObject, profileProperty, []byte("hero: [")); err != nil {
		t.Fatal(err)
	}
	m := NewManager(store, quietLogger())
	if m.Get() != Default() {
		t.Errorf("corrupt profile should fall back to defaults, got %+v", m.Get())
	}
	if err := m.Load(); err == nil {
		t.Error("Load() should report the corrupt profile")
	}
}
