// Package cmd provides CLI commands for inspire-dojson.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/inspire-dojson/config"
)

func setupLogger() {
	logLevel := strings.ToUpper(os.Getenv("LOG_LEVEL"))
	if logLevel == "" {
		logLevel = "INFO"
	}

	var level slog.Level
	switch logLevel {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "WARN", "WARNING":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	logger := slog.New(handler)

	slog.SetDefault(logger)
}

var (
	configFile string
	serverName string
	urlScheme  string
)

var rootCmd = &cobra.Command{
	Use:   "inspire-dojson",
	Short: "Translate INSPIRE records between MARCXML and JSON",
	Long: `inspire-dojson translates legacy MARC21 records of the INSPIRE HEP
digital library into JSON records and back.

Supported record kinds are literature, authors, conferences, experiments,
institutions, journals and data. CDS MARCXML can be rewritten into INSPIRE
MARC before translation.

Examples:
  inspire-dojson convert marcxml json -i record.xml --pretty
  inspire-dojson convert json marcxml < record.json
  inspire-dojson convert cds json -i cds.xml
  inspire-dojson validate marcxml -i records.xml`,
	PersistentPreRunE: applyConfig,
}

// applyConfig installs the process-wide configuration: the optional config
// file first, then flag overrides.
func applyConfig(cmd *cobra.Command, args []string) error {
	var (
		cfg *config.Config
		err error
	)
	if configFile != "" {
		cfg, err = config.LoadFile(configFile)
		if err != nil {
			return err
		}
	} else {
		c := *config.Current()
		cfg = &c
	}

	if serverName != "" {
		cfg.ServerName = serverName
	}
	if urlScheme != "" {
		cfg.PreferredURLScheme = urlScheme
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	config.Set(cfg)
	slog.Debug("configuration", "base_url", cfg.BaseURL(), "afs_path", cfg.LegacyAFSPath)
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	setupLogger()
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Configuration file (YAML)")
	rootCmd.PersistentFlags().StringVar(&serverName, "server-name", "", "Server name used in $ref links")
	rootCmd.PersistentFlags().StringVar(&urlScheme, "scheme", "", "URL scheme used in $ref links (http or https)")
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(validateCmd)
}
