// Package cli contains the command line interface for dataindex.
//
// # Usage
//
// Markup sources are loaded in order into one index, with '-' read from
// stdin after every file, and the selected command runs against it:
//
//	dataindex -s base.xml -s local.xml --policy=overwrite get /stanley/age
//	dataindex -s people.xml --scope=/stanley eval 'age + 1'
//	dataindex -s people.xml fmt json --indent=4
//
// Without a command, an interactive session is started.
//
// # Configuration
//
// Flag defaults are read from a markup file in the user configuration
// directory. The children of its config container name the flags, spelled
// with hyphens or underscores:
//
//	<config type="container">
//	  <log-level type="string">debug</log-level>
//	  <policy type="string">keep</policy>
//	</config>
//
// The init command writes this file from the current flag values. A JSON
// file of the same name with a .json extension is also read.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o dataindex .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/dataindex/pprof)
package cli
