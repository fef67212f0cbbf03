package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"pngdec/config"
	"pngdec/logging"
	"pngdec/pngDecoder"
)

// Set with -ldflags "-X main.version=..."
var version = "dev"

var (
	logLevel string
	parallel bool
	pretty   bool
)

var rootCommand = &cobra.Command{
	Use:           "pnGo",
	Short:         "Decode and inspect PNG files",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := zerolog.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("bad log level %q: %w", logLevel, err)
		}
		config.Config.LogLevel = level
		config.Config.ParallelPasses = parallel
		config.Config.PrettyLogs = pretty
		logging.Configure(os.Stderr)
		return nil
	},
}

func init() {
	flags := rootCommand.PersistentFlags()
	flags.StringVar(&logLevel, "log-level", config.Config.LogLevel.String(), "trace, debug, info, warn or error")
	flags.BoolVar(&parallel, "parallel", config.Config.ParallelPasses, "reconstruct interlace passes concurrently")
	flags.BoolVar(&pretty, "pretty", config.Config.PrettyLogs, "human readable logs instead of JSON")

	infoCommand := &cobra.Command{
		Use:   "info <file>",
		Short: "List the chunks and header of a PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printInfo(cmd.OutOrStdout(), args[0])
		},
	}

	convertCommand := &cobra.Command{
		Use:   "convert <in.png> <out.ppm|.png|.bmp|.tif>",
		Short: "Decode a PNG and write it in the format named by the output extension",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return convert(args[0], args[1])
		},
	}

	versionCommand := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "pnGo", version)
		},
	}

	rootCommand.AddCommand(infoCommand, convertCommand, versionCommand)
}

func main() {
	defer logging.LogPanics(nil)

	if err := rootCommand.Execute(); err != nil {
		logging.Error().Err(err).Str("result", pngDecoder.StrError(err)).Msg("pnGo failed")
		os.Exit(1)
	}
}
