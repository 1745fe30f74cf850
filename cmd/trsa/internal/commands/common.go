package commands

import (
	"fmt"

	"github.com/TheusHen/trsa/trsa/config"
	"github.com/TheusHen/trsa/trsa/logging"
	"github.com/spf13/cobra"
)

// CommandHandler carries the settings and logger shared by every sub-command.
type CommandHandler struct {
	settings config.Settings
	logger   logging.Logger
}

// setup loads --config, or the defaults when it is empty, and builds the logger.
func (h *CommandHandler) setup(cmd *cobra.Command, _ []string) error {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("invalid config flag: %w", err)
	}

	settings := config.Default()
	if path != "" {
		settings, err = config.Load(path)
		if err != nil {
			return err
		}
	}

	logger, err := logging.FromSettings(settings.Logger)
	if err != nil {
		return fmt.Errorf("failed to setup logger: %w", err)
	}
	h.settings = settings
	h.logger = logger
	return nil
}

// InitCommands registers all trsa sub-commands and the global --config flag.
func InitCommands(rootCmd *cobra.Command) error {
	handler := &CommandHandler{}
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML settings file")
	rootCmd.PersistentPreRunE = handler.setup

	if err := initKeyCommands(rootCmd, handler); err != nil {
		return fmt.Errorf("failed to initialize key commands: %w", err)
	}
	if err := initExchangeCommands(rootCmd, handler); err != nil {
		return fmt.Errorf("failed to initialize exchange commands: %w", err)
	}
	return nil
}
