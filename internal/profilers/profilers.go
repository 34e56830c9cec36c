// Package profilers sets up optional profiling for the binaries, to benchmark the searchers.
//
// If linked, it installs the flags -prof (HTTP pprof server port), -cpu_profile and -mem_profile.
package profilers

import (
	"context"
	"flag"
	"fmt"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"runtime/pprof"
)

var (
	flagProfiler   = flag.Int("prof", -1, "If set, runs the pprof HTTP server at the given port, and keeps the program alive at the end.")
	flagCPUProfile = flag.String("cpu_profile", "", "write cpu profile to `file`")
	flagMemProfile = flag.String("mem_profile", "", "write heap profile to `file` at the end of the program")
)

// Setup starts the HTTP (flag -prof) and CPU profilers (flag -cpu_profile), if they were configured.
//
// It returns the function to call before exiting main(), usually deferred: it stops the CPU profile,
// writes the heap profile (-mem_profile) and, if the HTTP profiler is running, waits for ctx to be
// done (Ctrl+C), so the profiler can still be inspected.
func Setup(ctx context.Context) (onQuit func(), err error) {
	var cpuFile *os.File
	if *flagCPUProfile != "" {
		cpuFile, err = os.Create(*flagCPUProfile)
		if err != nil {
			return nil, errors.Wrapf(err, "creating CPU profile %q", *flagCPUProfile)
		}
		if err = pprof.StartCPUProfile(cpuFile); err != nil {
			_ = cpuFile.Close()
			return nil, errors.Wrapf(err, "starting CPU profile")
		}
	}
	var profilerAddr string
	if *flagProfiler >= 0 {
		profilerAddr = fmt.Sprintf("localhost:%d", *flagProfiler)
		fmt.Printf("Starting profiler on %s/debug/pprof\n", profilerAddr)
		fmt.Printf("- You can access it with: $ go tool pprof %s/debug/pprof/heap\n", profilerAddr)
		go func() {
			klog.Errorf("Profiler HTTP server stopped: %v", http.ListenAndServe(profilerAddr, nil))
		}()
	}

	onQuit = func() {
		if cpuFile != nil {
			pprof.StopCPUProfile()
			_ = cpuFile.Close()
		}
		if *flagMemProfile != "" {
			if err := writeHeapProfile(*flagMemProfile); err != nil {
				klog.Errorf("Failed to write heap profile: %+v", err)
			}
		}
		if profilerAddr == "" || ctx.Err() != nil {
			return
		}
		fmt.Printf("- Program finished: kept alive with profiler opened at %s/debug/pprof\n", profilerAddr)
		fmt.Printf("- Interrupt (Ctrl+C) to exit\n")
		<-ctx.Done()
	}
	return onQuit, nil
}

func writeHeapProfile(filePath string) error {
	f, err := os.Create(filePath)
	if err != nil {
		return errors.Wrapf(err, "creating heap profile %q", filePath)
	}
	defer func() { _ = f.Close() }()
	runtime.GC()
	return errors.Wrapf(pprof.WriteHeapProfile(f), "writing heap profile to %q", filePath)
}
