package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/reaandrew/cloudauditor/api"
	"github.com/reaandrew/cloudauditor/config"
	"github.com/reaandrew/cloudauditor/core"
	"github.com/reaandrew/cloudauditor/reporters"
	"github.com/reaandrew/cloudauditor/repositories"
	"github.com/reaandrew/cloudauditor/services"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

// Cli represents the command-line interface
type Cli struct {
	configPath   string
	provider     string
	logLevel     string
	strictStats  bool
	addr         string
	reportFormat string
	outputDir    string
	prefix       string
}

// Execute sets up and runs the root command
func (cli *Cli) Execute() error {
	return cli.rootCommand().Execute()
}

func (cli *Cli) rootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "cloudauditor",
		Short:         "Cloud Auditor serves compliance findings ranked by severity.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cli.configPath, "config", "", "Path to a TOML config file")
	rootCmd.PersistentFlags().StringVar(&cli.provider, "provider", "", "Findings provider (supported: dynamodb, sqlite, file)")
	rootCmd.PersistentFlags().StringVar(&cli.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&cli.strictStats, "strict-stats", false, "Fail stats when a finding has no Severity")

	rootCmd.AddCommand(cli.createServeCommand())
	rootCmd.AddCommand(cli.createFindingsCommand())
	rootCmd.AddCommand(cli.createStatsCommand())
	rootCmd.AddCommand(cli.createExportCommand())
	return rootCmd
}

func (cli *Cli) createServeCommand() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the findings API over HTTP.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = cli.addr
			}

			service, repository, err := cli.createService(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer repository.Close()

			return serve(cmd.Context(), cfg.Addr, api.NewHandler(api.NewApi(service)))
		},
	}

	serveCmd.Flags().StringVar(&cli.addr, "addr", ":8000", "Address to listen on")
	return serveCmd
}

func (cli *Cli) createFindingsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "findings",
		Short: "Print all findings, most severe first, as JSON.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.withService(cmd, func(service services.FindingsService) error {
				findings, err := service.ListFindings(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd, findings)
			})
		},
	}
}

func (cli *Cli) createStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print finding counts by severity as JSON.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.withService(cmd, func(service services.FindingsService) error {
				stats, err := service.GetStats(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd, stats)
			})
		},
	}
}

func (cli *Cli) createExportCommand() *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the sorted findings and summary to report files.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reporter, err := reporters.CreateReporter(cli.reportFormat, cli.outputDir, cli.prefix)
			if err != nil {
				return err
			}

			return cli.withService(cmd, func(service services.FindingsService) error {
				findings, stats, err := service.Snapshot(cmd.Context())
				if err != nil {
					return err
				}
				return reporter.Report(findings, stats)
			})
		},
	}

	exportCmd.Flags().StringVar(&cli.reportFormat, "report", "xlsx", "Report format (supported: xlsx, json)")
	exportCmd.Flags().StringVar(&cli.outputDir, "output-dir", ".", "Directory to write reports to")
	exportCmd.Flags().StringVar(&cli.prefix, "prefix", reporters.DefaultArtifactPrefix, "Report file name prefix")
	return exportCmd
}

// loadConfig resolves configuration, letting explicitly set flags win.
func (cli *Cli) loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(cli.configPath)
	if err != nil {
		return cfg, err
	}

	if cli.provider != "" {
		cfg.Provider = cli.provider
	}
	if cli.logLevel != "" {
		cfg.LogLevel = cli.logLevel
	}
	if cmd.Flags().Changed("strict-stats") {
		cfg.StrictStats = cli.strictStats
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	applyLogLevel(cfg)
	return cfg, nil
}

func (cli *Cli) createService(ctx context.Context, cfg config.Config) (services.FindingsService, core.FindingRepository, error) {
	repository, err := repositories.CreateRepository(ctx, cfg)
	if err != nil {
		return services.FindingsService{}, nil, fmt.Errorf("failed to create findings repository: %w", err)
	}
	return services.NewFindingsService(repository, cfg.StrictStats), repository, nil
}

func (cli *Cli) withService(cmd *cobra.Command, run func(service services.FindingsService) error) error {
	cfg, err := cli.loadConfig(cmd)
	if err != nil {
		return err
	}

	service, repository, err := cli.createService(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer repository.Close()

	return run(service)
}

func printJSON(cmd *cobra.Command, value interface{}) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

// serve runs the HTTP server until ctx is cancelled or SIGINT/SIGTERM arrives.
func serve(ctx context.Context, addr string, handler http.Handler) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		log.Infof("Listening on %s", addr)
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	if err := <-errs; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
