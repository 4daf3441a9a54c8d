package main

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/amishk599/hoyotext/internal/config"
	"github.com/amishk599/hoyotext/internal/model"
	"github.com/amishk599/hoyotext/internal/notifier"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Notification subcommands",
}

var notifyTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Send a test notification",
	Long:  "Sends a test change notification using the configured notifier.",
	RunE:  runNotifyTest,
}

func init() {
	rootCmd.AddCommand(notifyCmd)
	notifyCmd.AddCommand(notifyTestCmd)
}

func setupNotifier(cfg *config.Config, logger *slog.Logger) model.Notifier {
	if cfg.Notification.Type != "slack" {
		return notifier.NewLogNotifier(logger)
	}
	logger.Debug("using slack notifier")
	client := &http.Client{Timeout: cfg.HoYoLAB.Timeout}
	return notifier.NewSlackNotifier(cfg.Notification.WebhookURL, client, logger)
}

func runNotifyTest(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	n := setupNotifier(cfg, logger)
	if err := notifier.SendTestMessage(n); err != nil {
		return fmt.Errorf("sending %s test notification: %w", cfg.Notification.Type, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "test notification sent via %s notifier\n", cfg.Notification.Type)
	return nil
}
