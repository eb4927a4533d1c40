package main

import (
	"os"

	"github.com/spf13/cobra"

	configCmd "github.com/cloudesk-io/cloudesk/internal/interfaces/cli/config"
	"github.com/cloudesk-io/cloudesk/internal/interfaces/cli/migrate"
	"github.com/cloudesk-io/cloudesk/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cloudesk",
		Short: "Cloudesk - workspace service provisioning for SaaS tenants",
		Long:  `Cloudesk provisions and bills per-user workspace services for tenant companies, with an HTTP API, migration tools, and administrative commands.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		configCmd.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
