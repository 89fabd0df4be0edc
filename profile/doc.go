// Package profile provides optional runtime profiling for dataindex.
//
// Profiling is compiled in only with the build tag [Tag]:
//
//	go build -tags pprof .
//
// Without the tag, [Modes] is empty and [Profiler.Start] returns a no-op.
//
// With the tag, [github.com/pkg/profile] writes profile data for the
// selected mode into the profiler's path, and [net/http/pprof] handlers are
// registered on [net/http.DefaultServeMux]:
//
//	dataindex --pprof-mode=cpu -s scene.xml get height
//	go tool pprof ~/.cache/dataindex/pprof/cpu.pprof
//
// Supported modes are allocs, block, clock, cpu, goroutine, heap, mem,
// mutex, thread and trace.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
