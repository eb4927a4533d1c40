package config

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	infraConfig "github.com/cloudesk-io/cloudesk/internal/infrastructure/config"
)

var (
	env         string
	showSecrets bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long:  `Resolve the configuration from file and environment overrides and print the effective values as YAML.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&showSecrets, "show-secrets", false, "Print secrets instead of redacting them")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := infraConfig.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if !showSecrets {
		redact(cfg)
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}

	fmt.Fprintf(os.Stdout, "# effective configuration (env: %s)\n%s", env, out)
	return nil
}

func redact(cfg *infraConfig.Config) {
	cfg.Database.Password = mask(cfg.Database.Password)
	cfg.Auth.JWT.Secret = mask(cfg.Auth.JWT.Secret)
	cfg.Redis.Password = mask(cfg.Redis.Password)
	cfg.Email.Password = mask(cfg.Email.Password)
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "********"
}
