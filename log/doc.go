// Package log provides a simplified structured logging interface based on
// [log/slog].
//
// # Basic Usage
//
//	logger := log.Make(os.Stdout)
//	logger.Info("index loaded", slog.Int("entries", 42))
//
// # Configuration
//
// Configure the logger using functional options:
//
//	logger := log.Make(os.Stdout,
//		log.WithLevel(log.LevelTrace),
//		log.WithTimeLayout("Kitchen"),
//		log.WithCaller(true))
//
// A [Logger] is an immutable value. [Logger.Wrap] derives a reconfigured
// copy and [Logger.With] derives a copy with persistent attributes. The zero
// Logger discards everything, which lets library types such as index.Index
// hold one unconditionally.
//
// # Package-level Logger
//
// Commands log through the package-level functions ([Info], [WarnContext],
// ...). [Config] reconfigures the package-level logger and is safe to call
// concurrently with logging.
//
// # Levels
//
// In addition to the slog levels, [LevelTrace] sits below [LevelDebug] and
// is used for per-entry index diagnostics.
package log
