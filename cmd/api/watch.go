package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"portfolio-backend/internal/notification"
	"portfolio-backend/pkg/apiclient"
)

var watchFlags struct {
	baseURL  string
	username string
	password string
	interval time.Duration
	once     bool
	markAll  bool
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll the unread message summary of a running server",
	RunE:  runWatch,
}

func init() {
	f := watchCmd.Flags()
	f.StringVar(&watchFlags.baseURL, "url", envOr("PORTFOLIO_API_URL", "http://localhost:8080"), "API base URL")
	f.StringVar(&watchFlags.username, "username", envOr("ADMIN_USERNAME", "admin"), "admin username")
	f.StringVar(&watchFlags.password, "password", os.Getenv("ADMIN_PASSWORD"), "admin password")
	f.DurationVar(&watchFlags.interval, "interval", notification.DefaultInterval, "poll interval")
	f.BoolVar(&watchFlags.once, "once", false, "fetch once and exit")
	f.BoolVar(&watchFlags.markAll, "mark-all", false, "mark the displayed messages read after fetching (with --once)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := apiclient.New(watchFlags.baseURL, apiclient.DefaultOptions())
	if _, err := client.Login(ctx, watchFlags.username, watchFlags.password); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	out := cmd.OutOrStdout()
	if watchFlags.once {
		poller := notification.NewPoller(client, watchFlags.interval, nil)
		poller.Refresh(ctx)
		printState(out, poller.Snapshot())
		if watchFlags.markAll {
			if err := poller.MarkAllRead(ctx); err != nil {
				return fmt.Errorf("mark read: %w", err)
			}
			printState(out, poller.Snapshot())
		}
		return nil
	}

	poller := notification.NewPoller(client, watchFlags.interval, func(s notification.State) {
		if s.Status != notification.Fetching {
			printState(out, s)
		}
	})
	poller.Run(ctx)
	return nil
}

func printState(w io.Writer, s notification.State) {
	fmt.Fprintf(w, "[%s] %d unread\n", time.Now().Format(time.TimeOnly), s.UnreadCount)
	for _, m := range s.Messages {
		fmt.Fprintf(w, "  %s  %-24s %s\n", m.CreatedAt.Format("2006-01-02"), m.Name, m.Subject)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
