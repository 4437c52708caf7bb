package main

import (
	"github.com/spf13/cobra"

	"github.com/samvad-hq/waha-client/pkg/waha"
)

func (c *cli) sessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Start, stop and inspect gateway sessions",
	}
	cmd.AddCommand(
		c.sessionsStartCmd(),
		c.sessionsStopCmd(),
		c.sessionsLogoutCmd(),
		c.sessionsListCmd(),
		c.sessionsGetCmd(),
		c.sessionsMeCmd(),
	)
	return cmd
}

func (c *cli) sessionsStartCmd() *cobra.Command {
	var (
		name     string
		debug    bool
		proxy    string
		webhooks []string
		events   []string
	)
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := &waha.SessionStartRequest{Name: name}
			if debug || proxy != "" || len(webhooks) > 0 {
				req.Config = &waha.SessionConfig{Debug: debug}
				if proxy != "" {
					req.Config.Proxy = &waha.ProxyConfig{Server: proxy}
				}
				for _, url := range webhooks {
					req.Config.Webhooks = append(req.Config.Webhooks, waha.WebhookConfig{URL: url, Events: events})
				}
			}
			dto, err := c.ctrl.StartSession(cmd.Context(), req)
			if err != nil {
				return err
			}
			return c.printJSON(dto)
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", waha.DefaultSessionName, "session name")
	cmd.Flags().BoolVar(&debug, "debug", false, "enable gateway debug mode for the session")
	cmd.Flags().StringVar(&proxy, "proxy", "", "proxy server for the session")
	cmd.Flags().StringSliceVar(&webhooks, "webhook", nil, "webhook URL (repeatable)")
	cmd.Flags().StringSliceVar(&events, "webhook-events", []string{"message"}, "events delivered to webhooks")
	return cmd
}

func (c *cli) sessionsStopCmd() *cobra.Command {
	var (
		name   string
		logout bool
	)
	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop a session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.ctrl.StopSession(cmd.Context(), name, logout); err != nil {
				return err
			}
			return c.printJSON(map[string]any{"name": name, "stopped": true, "logout": logout})
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", waha.DefaultSessionName, "session name")
	cmd.Flags().BoolVar(&logout, "logout", false, "also log the session out")
	return cmd
}

func (c *cli) sessionsLogoutCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Log a session out of its account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.ctrl.LogoutSession(cmd.Context(), name); err != nil {
				return err
			}
			return c.printJSON(map[string]any{"name": name, "logged_out": true})
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", waha.DefaultSessionName, "session name")
	return cmd
}

func (c *cli) sessionsListCmd() *cobra.Command {
	var all, cached bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cached {
				snaps, err := c.ctrl.CachedSessions()
				if err != nil {
					return err
				}
				return c.printJSON(snaps)
			}
			list, err := c.ctrl.ListSessions(cmd.Context(), all)
			if err != nil {
				return err
			}
			return c.printJSON(list)
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "include stopped sessions")
	cmd.Flags().BoolVar(&cached, "cached", false, "print the local snapshot cache without calling the gateway")
	cmd.MarkFlagsMutuallyExclusive("all", "cached")
	return cmd
}

func (c *cli) sessionsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [name]",
		Short: "Show one session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := c.ctrl.GetSession(cmd.Context(), argOrDefault(args))
			if err != nil {
				return err
			}
			return c.printJSON(info)
		},
	}
}

func (c *cli) sessionsMeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me [name]",
		Short: "Show the account a session is paired with",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := c.ctrl.GetMe(cmd.Context(), argOrDefault(args))
			if err != nil {
				return err
			}
			return c.printJSON(me)
		},
	}
}

func argOrDefault(args []string) string {
	if len(args) == 0 {
		return waha.DefaultSessionName
	}
	return args[0]
}
