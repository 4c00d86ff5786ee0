package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	clruntime "github.com/wippyai/cl-runtime"
	"github.com/wippyai/cl-runtime/backend"
	_ "github.com/wippyai/cl-runtime/backend/soft"
	_ "github.com/wippyai/cl-runtime/backend/wasm"
	"github.com/wippyai/cl-runtime/cl"
)

func main() {
	var (
		backendName = flag.String("backend", "", "Only show the named backend (default: all)")
		raw         = flag.Bool("raw", false, "Exercise queries through the raw dispatch table")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*backendName, *raw); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(backendName string, raw bool) error {
	reg, err := registryFor(backendName)
	if err != nil {
		return err
	}

	platforms := reg.Platforms()
	fmt.Printf("Number of platforms: %d\n", len(platforms))

	for i, p := range platforms {
		fmt.Printf("\nPlatform #%d\n", i)
		if raw {
			if err := dumpPlatformRaw(reg, p.Handle()); err != nil {
				return err
			}
			continue
		}
		dumpPlatform(p)
	}
	return nil
}

func registryFor(backendName string) (*cl.Registry, error) {
	if backendName == "" {
		return cl.Initialize()
	}
	impl, err := backend.Get(backendName)
	if err != nil {
		return nil, fmt.Errorf("unknown backend %q (available: %s)",
			backendName, strings.Join(backend.Available(), ", "))
	}
	return cl.NewRegistry(impl)
}

func dumpPlatform(p *cl.Platform) {
	info := p.Info()
	fmt.Printf("  Name:       %s\n", info.Name)
	fmt.Printf("  Vendor:     %s\n", info.Vendor)
	fmt.Printf("  Version:    %s\n", info.Version)
	fmt.Printf("  Profile:    %s\n", info.Profile)
	fmt.Printf("  Extensions: %s\n", info.Extensions)

	devices := p.Devices()
	fmt.Printf("  Devices:    %d\n", len(devices))
	for j, d := range devices {
		di := d.Info()
		fmt.Printf("\n  Device #%d\n", j)
		fmt.Printf("    Name:             %s\n", di.Name)
		fmt.Printf("    Type:             %s\n", deviceTypeName(di.Type))
		fmt.Printf("    Vendor:           %s\n", di.Vendor)
		fmt.Printf("    Version:          %s\n", di.Version)
		fmt.Printf("    Compute units:    %d\n", di.MaxComputeUnits)
		fmt.Printf("    Max alloc size:   %d\n", di.MaxMemAllocSize)
		fmt.Printf("    Image support:    %t\n", di.ImageSupport)
		if di.ILVersion != "" {
			fmt.Printf("    IL version:       %s\n", di.ILVersion)
		}
		if len(di.BuiltInKernels) > 0 {
			fmt.Printf("    Built-in kernels: %s\n", strings.Join(di.BuiltInKernels, ";"))
		}
	}
}

// dumpPlatformRaw walks the same information through the raw dispatch
// table using the two-call size-probe pattern external loaders use.
func dumpPlatformRaw(reg *cl.Registry, platform clruntime.Handle) error {
	d := reg.Dispatch()

	for _, q := range []struct {
		label string
		name  clruntime.PlatformInfo
	}{
		{"Name", clruntime.PlatformName},
		{"Vendor", clruntime.PlatformVendor},
		{"Version", clruntime.PlatformVersion},
		{"Profile", clruntime.PlatformProfile},
		{"Extensions", clruntime.PlatformExtensions},
	} {
		s, err := platformInfoString(d, platform, q.name)
		if err != nil {
			return err
		}
		fmt.Printf("  %-11s %s\n", q.label+":", s)
	}

	var num uint32
	if code := d.GetDeviceIDs(platform, clruntime.DeviceTypeAll, nil, &num); code != 0 {
		return fmt.Errorf("GetDeviceIDs probe failed with code %d", code)
	}
	devices := make([]clruntime.Handle, num)
	if code := d.GetDeviceIDs(platform, clruntime.DeviceTypeAll, devices, nil); code != 0 {
		return fmt.Errorf("GetDeviceIDs failed with code %d", code)
	}
	fmt.Printf("  Devices:    %d\n", len(devices))

	for j, dev := range devices {
		name, err := deviceInfoString(d, dev, clruntime.DeviceName)
		if err != nil {
			return err
		}
		version, err := deviceInfoString(d, dev, clruntime.DeviceVersion)
		if err != nil {
			return err
		}
		fmt.Printf("\n  Device #%d\n", j)
		fmt.Printf("    Name:    %s\n", name)
		fmt.Printf("    Version: %s\n", version)
	}
	return nil
}

func platformInfoString(d *clruntime.Dispatch, h clruntime.Handle, name clruntime.PlatformInfo) (string, error) {
	var size int
	if code := d.GetPlatformInfo(h, name, nil, &size); code != 0 {
		return "", fmt.Errorf("GetPlatformInfo probe failed with code %d", code)
	}
	buf := make([]byte, size)
	if code := d.GetPlatformInfo(h, name, buf, nil); code != 0 {
		return "", fmt.Errorf("GetPlatformInfo failed with code %d", code)
	}
	return strings.TrimRight(string(buf), "\x00"), nil
}

func deviceInfoString(d *clruntime.Dispatch, h clruntime.Handle, name clruntime.DeviceInfo) (string, error) {
	var size int
	if code := d.GetDeviceInfo(h, name, nil, &size); code != 0 {
		return "", fmt.Errorf("GetDeviceInfo probe failed with code %d", code)
	}
	buf := make([]byte, size)
	if code := d.GetDeviceInfo(h, name, buf, nil); code != 0 {
		return "", fmt.Errorf("GetDeviceInfo failed with code %d", code)
	}
	return strings.TrimRight(string(buf), "\x00"), nil
}

func deviceTypeName(t clruntime.DeviceType) string {
	switch {
	case t.Matches(clruntime.DeviceTypeGPU):
		return "GPU"
	case t.Matches(clruntime.DeviceTypeCPU):
		return "CPU"
	case t.Matches(clruntime.DeviceTypeAccelerator):
		return "Accelerator"
	case t.Matches(clruntime.DeviceTypeCustom):
		return "Custom"
	default:
		return fmt.Sprintf("0x%x", uint64(t))
	}
}
