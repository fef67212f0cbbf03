package config

import "github.com/rs/zerolog"

var Config = PnGoConfig{
	LogLevel:       zerolog.InfoLevel,
	ParallelPasses: true,
	PrettyLogs:     true,
}
