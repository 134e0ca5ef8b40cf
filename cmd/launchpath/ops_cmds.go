package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"launchpath/internal/db"
	"launchpath/internal/email"
	"launchpath/internal/repository"
	"launchpath/internal/service"
)

func (c *cli) newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema (idempotent)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			_, pool, err := c.connect(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := db.Migrate(ctx, pool); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema applied")
			return nil
		},
	}
}

func (c *cli) newRemindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remind",
		Short: "Email users whose active experiment is decaying",
		Long: `Sends a reminder to every user whose active commitment is more than
3 days past its deadline. Requires SMTP_HOST and SMTP_FROM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			logger := c.logger()
			defer logger.Sync()

			cfg, pool, err := c.connect(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			if !cfg.SMTPConfigured() {
				return errors.New("smtp not configured: set SMTP_HOST and SMTP_FROM")
			}
			sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName, cfg.SMTPUseTLS)
			if err != nil {
				return fmt.Errorf("smtp sender: %w", err)
			}

			reminders := service.NewReminderService(logger, repository.NewPgCommitmentRepository(pool), sender)
			sent, err := reminders.SendOverdue(ctx)
			if err != nil {
				logger.Error("send reminders", zap.Error(err))
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d reminder(s) sent\n", sent)
			return nil
		},
	}
}
