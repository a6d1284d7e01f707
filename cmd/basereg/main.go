package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/joho/godotenv"
	"github.com/rgehrsitz/basereg/internal/calculation"
	"github.com/rgehrsitz/basereg/internal/config"
	"github.com/rgehrsitz/basereg/internal/domain"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// ReferenceDirEnv overrides the default reference table directory
const ReferenceDirEnv = "BASEREG_REFERENCE_DIR"

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "basereg %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "basereg",
		Short:        "Regulatory base simulator CLI",
		Long:         "Computes the pension regulatory base from monthly contribution records under the reform and legacy schemes",
		SilenceUsage: true,
	}
	root.PersistentFlags().String("reference-dir", "", "Directory holding the reference YAML tables (default $"+ReferenceDirEnv+" or "+config.DefaultReferenceDir+")")
	root.PersistentFlags().Bool("debug", false, "Enable debug logging of the computation")

	root.AddCommand(calculateCmd())
	root.AddCommand(compareCmd())
	root.AddCommand(whatIfCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(configInfoCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(versionCmd())
	return root
}

var rootCmd = newRootCmd()

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// referenceDir resolves the reference directory from flag, environment, then default
func referenceDir(cmd *cobra.Command) string {
	if dir, _ := cmd.Flags().GetString("reference-dir"); dir != "" {
		return dir
	}
	if dir := os.Getenv(ReferenceDirEnv); dir != "" {
		return dir
	}
	return config.DefaultReferenceDir
}

// cliLogger returns a text logrus logger on stderr; --debug wins over LOG_LEVEL
func cliLogger(cmd *cobra.Command, format string) *logrus.Logger {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "warn"
	}
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		level = "debug"
	}
	return config.NewLogger(format, level, cmd.ErrOrStderr())
}

// loadEngine reads the reference tables and builds an engine logging to logger
func loadEngine(cmd *cobra.Command, logger *logrus.Logger) (*calculation.Engine, *domain.ReferenceData, error) {
	dir := referenceDir(cmd)
	ref, err := config.NewReferenceLoader(dir).Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load reference data from %s: %w", dir, err)
	}
	logger.Debugf("loaded reference data from %s: %d parameter years, %d indices, %d cap years",
		dir, len(ref.Parameters), len(ref.Indices), len(ref.Caps))

	engine := calculation.NewEngine(ref)
	engine.SetLogger(logger)
	return engine, ref, nil
}
