package system

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const masked = "********"

// NewConfigCommand prints the effective configuration with secrets masked.
func NewConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := readConfig(cmd)
			if err != nil {
				return err
			}

			redacted := *cfg
			redacted.Email.SMTP.Password = mask(cfg.Email.SMTP.Password)
			redacted.Verification.AccessKey = mask(cfg.Verification.AccessKey)
			redacted.Redis.Password = mask(cfg.Redis.Password)

			out, err := yaml.Marshal(redacted)
			if err != nil {
				return fmt.Errorf("failed to render config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return masked
}
