package system

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/contact_relay/internal/service/contact"
	"github.com/Alijeyrad/contact_relay/pkg/mailcheck"
)

// NewVerifyCommand runs one verification lookup with the configured key, to
// check the key and the threshold against a real address.
func NewVerifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <email>",
		Short: "Look up an address with the mail verification service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := readConfig(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			res, err := mailcheck.New(cfg.Verification).Check(ctx, args[0])
			if err != nil {
				return fmt.Errorf("verification failed: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "email:        %s\n", args[0])
			fmt.Fprintf(out, "format_valid: %t\n", res.FormatValid)
			fmt.Fprintf(out, "mx_found:     %t\n", res.MXFound)
			fmt.Fprintf(out, "smtp_check:   %t\n", res.SMTPCheck)
			fmt.Fprintf(out, "disposable:   %t\n", res.Disposable)
			fmt.Fprintf(out, "score:        %.2f (min %.2f)\n", res.Score, cfg.Verification.MinScore)
			if res.DidYouMean != "" {
				fmt.Fprintf(out, "did_you_mean: %s\n", res.DidYouMean)
			}

			verdict := "accepted"
			switch err := contact.Verdict(contact.ConfigFromCentral(cfg), res); {
			case errors.Is(err, contact.ErrUndeliverable):
				verdict = "rejected (undeliverable)"
			case errors.Is(err, contact.ErrLowScore):
				verdict = "rejected (low score)"
			case err != nil:
				verdict = "rejected (" + err.Error() + ")"
			case !res.SMTPCheck:
				verdict = "accepted (mailbox check failed)"
			}
			fmt.Fprintf(out, "verdict:      %s\n", verdict)
			return nil
		},
	}

	return cmd
}
