package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/fiximports/pkg/config"
)

// NewConfigCommand creates the config command, printing the effective
// configuration after defaults, file, and environment are merged.
func NewConfigCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}

			out, marshalErr := yaml.Marshal(cfg)
			if marshalErr != nil {
				return fmt.Errorf("marshal config: %w", marshalErr)
			}

			_, writeErr := cmd.OutOrStdout().Write(out)

			return writeErr
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file path")

	return cmd
}
