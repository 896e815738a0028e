package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ajitpratap0/stockpile/pkg/config"
	"github.com/ajitpratap0/stockpile/pkg/logger"
)

var version = "0.1.0"

// app carries state shared by every command.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load() // Ignore error if .env doesn't exist

	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "stockpile",
		Short: "Stockpile - reusable object pools with lean and double growth",
		Long: `Stockpile recycles expensive objects instead of rebuilding them.
Pools grow on demand either one instance at a time (lean) or in fixed steps
(double), and never shrink. The CLI simulates demand against configured
pools and reports how each growth policy behaved.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadViper(a.v, a.cfgFile)
			if err != nil {
				return fmt.Errorf("configuration error: %w", err)
			}
			a.cfg = cfg
			return logger.Init(cfg.Logging)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "Path to YAML configuration file (optional)")
	root.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	_ = a.v.BindPFlag("logging.level", root.PersistentFlags().Lookup("log-level"))

	// Version command
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Stockpile v%s\n", version)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	root.AddCommand(newSimulateCommand(a))
	root.AddCommand(newSceneCommand(a))
	root.AddCommand(newConfigCommand(a))
	return root
}
