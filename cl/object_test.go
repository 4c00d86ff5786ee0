package cl

import (
	"sync"
	"testing"

	clruntime "github.com/wippyai/cl-runtime"
)

func TestObjectInitialRefCount(t *testing.T) {
	_, ctx := newTestContext(t)
	defer ctx.Release()

	if ctx.RefCount() != 1 {
		t.Fatalf("initial refcount = %d", ctx.RefCount())
	}
	if ctx.Kind() != clruntime.KindContext {
		t.Fatalf("kind = %v", ctx.Kind())
	}
	if ctx.Dispatch() == nil {
		t.Fatal("dispatch table not set")
	}
}

func TestObjectDispatchShared(t *testing.T) {
	r, ctx := newTestContext(t)
	defer ctx.Release()

	// Every object in one registry shares the same dispatch table.
	p := r.Platforms()[0]
	if ctx.Dispatch() != r.Dispatch() || p.Dispatch() != r.Dispatch() {
		t.Fatal("dispatch table differs between objects")
	}
	s, err := ctx.CreateSampler(true, clruntime.AddressClamp, clruntime.FilterNearest)
	if err != nil {
		t.Fatalf("CreateSampler: %v", err)
	}
	defer s.Release()
	if s.Dispatch() != r.Dispatch() {
		t.Fatal("child dispatch table differs")
	}
}

func TestObjectConcurrentRetainRelease(t *testing.T) {
	r, ctx := newTestContext(t)

	const workers = 16
	const rounds = 200

	// Balance every extra retain with a release; the context must survive
	// with exactly the creation reference left.
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				ctx.Retain()
				if err := ctx.Release(); err != nil {
					t.Errorf("Release: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	if ctx.RefCount() != 1 {
		t.Fatalf("refcount = %d, want 1", ctx.RefCount())
	}
	if !r.IsContext(ctx.Handle()) {
		t.Fatal("context destroyed while referenced")
	}
	ctx.Release()
	if r.IsContext(ctx.Handle()) {
		t.Fatal("context survived final release")
	}
}

func TestDeviceReleaseFloor(t *testing.T) {
	r, _ := newTestRegistry(t)
	d := r.Platforms()[0].Devices()[0]

	// Root devices are never destroyed by release; the count never drops
	// below one.
	if err := d.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if err := d.Release(); err != nil {
		t.Fatalf("second Release: %v", err)
	}
	if d.RefCount() != 1 {
		t.Fatalf("refcount = %d, want 1", d.RefCount())
	}
	if !r.IsDevice(d.Handle()) {
		t.Fatal("device handle invalidated by release")
	}

	d.Retain()
	if d.RefCount() != 2 {
		t.Fatalf("refcount after retain = %d", d.RefCount())
	}
	d.Release()
	if d.RefCount() != 1 {
		t.Fatalf("refcount after balanced release = %d", d.RefCount())
	}
}

func TestDeviceReleaseFloorConcurrent(t *testing.T) {
	r, _ := newTestRegistry(t)
	d := r.Platforms()[0].Devices()[0]

	// More releases than retains, racing: the floor must hold.
	for round := 0; round < 50; round++ {
		d.Retain()

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				d.Release()
			}()
		}
		wg.Wait()

		if d.RefCount() != 1 {
			t.Fatalf("round %d: refcount = %d, want 1", round, d.RefCount())
		}
		if !r.IsDevice(d.Handle()) {
			t.Fatal("device handle invalidated by release")
		}
	}
}
