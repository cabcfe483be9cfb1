package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/Octaviomaldonado/GestorClientes/internal/mail"
	"github.com/Octaviomaldonado/GestorClientes/internal/repository"
	"github.com/spf13/cobra"
)

var sendmailCmd = &cobra.Command{
	Use:   "sendmail",
	Short: "Send a plain-text email using the stored SMTP configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		dbx, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer dbx.Close()

		v := newValidator(cfg)
		rawTo, _ := cmd.Flags().GetString("to")
		to, err := v.NormalizeEmail(rawTo)
		if err != nil {
			return err
		}
		subject, _ := cmd.Flags().GetString("subject")
		body, _ := cmd.Flags().GetString("body")

		resolved, err := mail.NewResolver(repository.NewSettingsRepository(dbx), nil).Resolve(context.Background())
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Mail.SendTimeout)
		defer cancel()

		err = mail.NewSender(cfg.Mail.SendTimeout).Send(ctx, resolved, to, subject, body)
		if errors.Is(err, mail.ErrIncompleteConfig) {
			return errors.New("SMTP is not configured: set SMTP_HOST, SMTP_USER and SMTP_PASS first (settings set ...)")
		}
		if err != nil {
			return err
		}

		fmt.Printf("Sent to %s.\n", to)
		return nil
	},
}

func init() {
	f := sendmailCmd.Flags()
	f.String("to", "", "recipient email address")
	f.String("subject", "", "message subject")
	f.String("body", "", "plain-text message body")
	_ = sendmailCmd.MarkFlagRequired("to")
	_ = sendmailCmd.MarkFlagRequired("subject")
	_ = sendmailCmd.MarkFlagRequired("body")
}
