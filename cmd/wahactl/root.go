package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/waha-client/internal/app"
	"github.com/samvad-hq/waha-client/internal/config"
	"github.com/samvad-hq/waha-client/internal/logger"
)

// cli holds state shared by every subcommand.
type cli struct {
	out  io.Writer
	cfg  *config.Config
	ctrl *app.Controller

	gatewayURL string
	apiKey     string
	logLevel   string
}

func newCLI(out io.Writer) *cli {
	return &cli{out: out}
}

// rootCmd builds the command tree. Callers must call teardown once it has run.
func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "wahactl",
		Short:         "Manage sessions on a WAHA messaging gateway",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}
			return c.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.gatewayURL, "url", "", "gateway base URL (overrides WAHA_URL)")
	flags.StringVar(&c.apiKey, "api-key", "", "gateway API key (overrides WAHA_API_KEY)")
	flags.StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(c.sessionsCmd(), c.authCmd(), c.watchCmd())
	return root
}

func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if c.gatewayURL != "" {
		cfg.WAHAURL = c.gatewayURL
	}
	if c.apiKey != "" {
		cfg.WAHAAPIKey = c.apiKey
	}
	if c.logLevel != "" {
		cfg.LogLevel = c.logLevel
	}

	if _, err := logger.Init(cfg); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.DebugObj("wahactl starting", "config", map[string]any{
		"waha_url":        cfg.WAHAURL,
		"cache_type":      cfg.CacheType,
		"publishers_file": cfg.PublishersFile,
		"metrics_enabled": cfg.MetricsEnabled,
	})

	ctrl, err := app.NewController(cmd.Context(), cfg, logger.Global{})
	if err != nil {
		logger.ErrorObj("failed to initialize controller", "error", err)
		return err
	}
	c.cfg, c.ctrl = cfg, ctrl
	return nil
}

func (c *cli) teardown() {
	if c.ctrl != nil {
		_ = c.ctrl.Close()
		c.ctrl = nil
	}
	_ = logger.Close()
}

// printJSON writes v to stdout as indented JSON.
func (c *cli) printJSON(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
