package config

import "github.com/rs/zerolog"

type PnGoConfig struct {
	LogLevel zerolog.Level

	// Reconstruct the seven Adam7 passes concurrently.
	ParallelPasses bool

	// Pretty console logging instead of JSON lines on stderr.
	PrettyLogs bool
}
