package backend

import (
	"testing"

	"github.com/gogpu/rhi"
)

// fakeBackend is a registry test double.
type fakeBackend struct {
	name string
}

func (b *fakeBackend) Name() string { return b.name }

func (b *fakeBackend) Open(rhi.DeviceHandle) (rhi.Device, error) {
	return nil, ErrBackendNotAvailable
}

func TestRegisterAndGet(t *testing.T) {
	Register("fake", func() Backend { return &fakeBackend{name: "fake"} })
	t.Cleanup(func() { Unregister("fake") })

	b := Get("fake")
	if b == nil {
		t.Fatal("Get(\"fake\") returned nil after Register")
	}
	if b.Name() != "fake" {
		t.Errorf("Name() = %q, want %q", b.Name(), "fake")
	}
}

func TestGetUnregistered(t *testing.T) {
	if b := Get("no-such-backend"); b != nil {
		t.Errorf("Get() = %v, want nil for unregistered name", b)
	}
}

func TestIsRegistered(t *testing.T) {
	Register("fake", func() Backend { return &fakeBackend{name: "fake"} })
	t.Cleanup(func() { Unregister("fake") })

	if !IsRegistered("fake") {
		t.Error("IsRegistered(\"fake\") = false, want true")
	}
	if IsRegistered("no-such-backend") {
		t.Error("IsRegistered(\"no-such-backend\") = true, want false")
	}
}

func TestUnregister(t *testing.T) {
	Register("fake", func() Backend { return &fakeBackend{name: "fake"} })
	Unregister("fake")
	if IsRegistered("fake") {
		t.Error("backend still registered after Unregister")
	}
}

func TestAvailable(t *testing.T) {
	Register("fake-a", func() Backend { return &fakeBackend{name: "fake-a"} })
	Register("fake-b", func() Backend { return &fakeBackend{name: "fake-b"} })
	t.Cleanup(func() {
		Unregister("fake-a")
		Unregister("fake-b")
	})

	names := Available()
	found := 0
	for _, n := range names {
		if n == "fake-a" || n == "fake-b" {
			found++
		}
	}
	if found != 2 {
		t.Errorf("Available() = %v, want it to contain fake-a and fake-b", names)
	}
}

func TestDefaultPriority(t *testing.T) {
	// A backend registered under a priority name wins over others.
	Register(BackendWebGPU, func() Backend { return &fakeBackend{name: BackendWebGPU} })
	Register("fake", func() Backend { return &fakeBackend{name: "fake"} })
	t.Cleanup(func() {
		Unregister(BackendWebGPU)
		Unregister("fake")
	})

	b := Default()
	if b == nil {
		t.Fatal("Default() returned nil")
	}
	if b.Name() != BackendWebGPU {
		t.Errorf("Default().Name() = %q, want %q", b.Name(), BackendWebGPU)
	}
}

func TestDefaultFallback(t *testing.T) {
	// With only a non-priority backend registered, Default falls back
	// to the first available one.
	Register("fake", func() Backend { return &fakeBackend{name: "fake"} })
	t.Cleanup(func() { Unregister("fake") })

	b := Default()
	if b == nil || b.Name() != "fake" {
		t.Errorf("Default() = %v, want the fake backend", b)
	}
}
