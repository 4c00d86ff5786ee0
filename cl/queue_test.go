package cl

import (
	"testing"

	clruntime "github.com/wippyai/cl-runtime"
	"github.com/wippyai/cl-runtime/errors"
)

func TestCreateCommandQueueValidation(t *testing.T) {
	_, ctx := newTestContext(t)
	defer ctx.Release()
	gpu, cpu := ctx.Devices()[0], ctx.Devices()[1]

	_, err := ctx.CreateCommandQueue(nil, 0)
	expectCode(t, err, errors.InvalidDevice)

	_, err = ctx.CreateCommandQueue(gpu, clruntime.QueueProperties(1<<20))
	expectCode(t, err, errors.InvalidValue)

	// On-device-default implies on-device.
	_, err = ctx.CreateCommandQueue(gpu, clruntime.QueueOnDeviceDefault)
	expectCode(t, err, errors.InvalidValue)

	// On-device implies out-of-order execution.
	_, err = ctx.CreateCommandQueue(gpu, clruntime.QueueOnDevice)
	expectCode(t, err, errors.InvalidValue)

	// The stub CPU has no on-device queue support.
	_, err = ctx.CreateCommandQueue(cpu, clruntime.QueueOnDevice|clruntime.QueueOutOfOrderExecMode)
	expectCode(t, err, errors.InvalidQueueProperties)
}

func TestCreateCommandQueueWithProperties(t *testing.T) {
	_, ctx := newTestContext(t)
	defer ctx.Release()
	gpu := ctx.Devices()[0]

	props := []uint64{
		clruntime.QueuePropProperties, uint64(clruntime.QueueProfilingEnable),
		0,
	}
	q, err := ctx.CreateCommandQueueWithProperties(gpu, props)
	if err != nil {
		t.Fatalf("CreateCommandQueueWithProperties: %v", err)
	}
	if !q.Properties().IsSet(clruntime.QueueProfilingEnable) {
		t.Fatal("profiling bit not recorded")
	}

	// The stored array is returned verbatim, terminator included.
	var size int
	if err := q.GetInfo(clruntime.QueuePropertiesArray, nil, &size); err != nil {
		t.Fatalf("array probe: %v", err)
	}
	if size != len(props)*8 {
		t.Fatalf("array size = %d, want %d", size, len(props)*8)
	}
	buf := make([]byte, size)
	if err := q.GetInfo(clruntime.QueuePropertiesArray, buf, nil); err != nil {
		t.Fatalf("array fetch: %v", err)
	}
	got := decodeUint64s(buf)
	for i := range props {
		if got[i] != props[i] {
			t.Fatalf("array[%d] = %d, want %d", i, got[i], props[i])
		}
	}
	q.Release()

	// Queue size without an on-device queue is rejected.
	_, err = ctx.CreateCommandQueueWithProperties(gpu, []uint64{clruntime.QueuePropSize, 1024, 0})
	expectCode(t, err, errors.InvalidValue)

	// Unknown keys are rejected locally.
	_, err = ctx.CreateCommandQueueWithProperties(gpu, []uint64{0x9999, 1, 0})
	expectCode(t, err, errors.InvalidValue)

	// An oversized on-device queue is rejected against the device limit.
	_, err = ctx.CreateCommandQueueWithProperties(gpu, []uint64{
		clruntime.QueuePropProperties, uint64(clruntime.QueueOnDevice | clruntime.QueueOutOfOrderExecMode),
		clruntime.QueuePropSize, uint64(gpu.Info().QueueOnDeviceMaxSize + 1),
		0,
	})
	expectCode(t, err, errors.InvalidValue)
}

func TestQueueCreationFailureLeavesNoQueue(t *testing.T) {
	r, impl := newTestRegistry(t)
	p := r.Platforms()[0]
	ctx, err := p.CreateContext(nil, p.Devices(), nil, nil, false)
	if err != nil {
		t.Fatalf("CreateContext: %v", err)
	}
	defer ctx.Release()

	impl.failQueueCreate = true
	_, err = ctx.CreateCommandQueue(ctx.Devices()[0], 0)
	expectCode(t, err, errors.OutOfResources)

	// A failed creation must not leave a stale entry in the context.
	ctx.mu.Lock()
	n := len(ctx.queues)
	ctx.mu.Unlock()
	if n != 0 {
		t.Fatalf("queue list has %d entries after failed creation", n)
	}
}

func TestDeviceDefaultQueueLifecycle(t *testing.T) {
	r, ctx := newTestContext(t)
	defer ctx.Release()
	gpu := ctx.Devices()[0]

	if gpu.DefaultQueue() != nil {
		t.Fatal("fresh device has a default queue")
	}

	q, err := ctx.CreateCommandQueue(gpu,
		clruntime.QueueOnDevice|clruntime.QueueOnDeviceDefault|clruntime.QueueOutOfOrderExecMode)
	if err != nil {
		t.Fatalf("CreateCommandQueue: %v", err)
	}
	if gpu.DefaultQueue() != q {
		t.Fatal("queue not registered as device default")
	}

	// Another queue reports the default through its own info query.
	host, err := ctx.CreateCommandQueue(gpu, 0)
	if err != nil {
		t.Fatalf("host queue: %v", err)
	}
	buf := make([]byte, 8)
	if err := host.GetInfo(clruntime.QueueDeviceDefault, buf, nil); err != nil {
		t.Fatalf("device default info: %v", err)
	}
	if clruntime.Handle(decodeUint64(buf)) != q.Handle() {
		t.Fatal("device default info mismatch")
	}

	// A newer default displaces the old one; releasing the displaced
	// queue must not clear the new registration.
	q2, err := ctx.CreateCommandQueue(gpu,
		clruntime.QueueOnDevice|clruntime.QueueOnDeviceDefault|clruntime.QueueOutOfOrderExecMode)
	if err != nil {
		t.Fatalf("second default queue: %v", err)
	}
	if gpu.DefaultQueue() != q2 {
		t.Fatal("second queue did not take over the default slot")
	}
	q.Release()
	if gpu.DefaultQueue() != q2 {
		t.Fatal("releasing the displaced queue cleared the current default")
	}

	q2.Release()
	if gpu.DefaultQueue() != nil {
		t.Fatal("default slot not cleared on current default release")
	}
	if r.IsCommandQueue(q2.Handle()) {
		t.Fatal("released queue handle still recognized")
	}
	host.Release()
}

func TestQueueInfo(t *testing.T) {
	_, ctx := newTestContext(t)
	defer ctx.Release()
	gpu := ctx.Devices()[0]

	q, err := ctx.CreateCommandQueue(gpu, clruntime.QueueProfilingEnable)
	if err != nil {
		t.Fatalf("CreateCommandQueue: %v", err)
	}
	defer q.Release()

	buf := make([]byte, 8)
	if err := q.GetInfo(clruntime.QueueContext, buf, nil); err != nil {
		t.Fatalf("context info: %v", err)
	}
	if clruntime.Handle(decodeUint64(buf)) != ctx.Handle() {
		t.Fatal("context handle mismatch")
	}
	if err := q.GetInfo(clruntime.QueueDevice, buf, nil); err != nil {
		t.Fatalf("device info: %v", err)
	}
	if clruntime.Handle(decodeUint64(buf)) != gpu.Handle() {
		t.Fatal("device handle mismatch")
	}
	if err := q.GetInfo(clruntime.QueuePropertiesInfo, buf, nil); err != nil {
		t.Fatalf("properties info: %v", err)
	}
	if clruntime.QueueProperties(decodeUint64(buf)) != clruntime.QueueProfilingEnable {
		t.Fatal("properties mismatch")
	}

	// A host queue reports size zero.
	small := make([]byte, 4)
	if err := q.GetInfo(clruntime.QueueSize, small, nil); err != nil {
		t.Fatalf("size info: %v", err)
	}
	if decodeUint32(small) != 0 {
		t.Fatalf("host queue size = %d", decodeUint32(small))
	}

	// Short buffer fails without writing sizeRet.
	size := -1
	err = q.GetInfo(clruntime.QueueContext, small, &size)
	expectCode(t, err, errors.InvalidValue)
	if size != -1 {
		t.Fatal("sizeRet written on failed query")
	}
}

func TestSetQueuePropertyOldValue(t *testing.T) {
	r, impl := newTestRegistry(t)
	p := r.Platforms()[0]
	ctx, err := p.CreateContext(nil, p.Devices(), nil, nil, false)
	if err != nil {
		t.Fatalf("CreateContext: %v", err)
	}
	defer ctx.Release()

	q, err := ctx.CreateCommandQueue(ctx.Devices()[0], clruntime.QueueProfilingEnable)
	if err != nil {
		t.Fatalf("CreateCommandQueue: %v", err)
	}
	defer q.Release()

	var old clruntime.QueueProperties
	if err := q.SetProperty(clruntime.QueueOutOfOrderExecMode, true, &old); err != nil {
		t.Fatalf("SetProperty: %v", err)
	}
	if old != clruntime.QueueProfilingEnable {
		t.Fatalf("old properties = %x", uint64(old))
	}
	want := clruntime.QueueProfilingEnable | clruntime.QueueOutOfOrderExecMode
	if q.Properties() != want {
		t.Fatalf("properties = %x, want %x", uint64(q.Properties()), uint64(want))
	}

	// On backend failure the old value is still reported and the cached
	// bitmask stays unchanged.
	impl.failSetProperty = true
	old = 0
	err = q.SetProperty(clruntime.QueueProfilingEnable, false, &old)
	expectCode(t, err, errors.InvalidOperation)
	if old != want {
		t.Fatalf("old properties on failure = %x, want %x", uint64(old), uint64(want))
	}
	if q.Properties() != want {
		t.Fatal("cached properties changed on failed set")
	}
}
