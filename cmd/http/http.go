package http

import "github.com/spf13/cobra"

// NewHTTPCommand groups the commands that run the relay's HTTP API.
func NewHTTPCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "http",
		Short: "Run the contact relay HTTP API",
	}

	cmd.AddCommand(NewStartCommand())

	return cmd
}
