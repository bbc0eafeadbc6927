// Package cmd implements the midiparams command line.
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/PixPMusic/midiparams/internal/config"
	"github.com/PixPMusic/midiparams/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "midiparams",
	Short: "MIDI controller to parameter bridge",
	Long: `MidiParams maps MIDI controller changes onto 25 numeric parameters.

Each slot binds a controller number (key) to a value that follows the
controller. Without a subcommand the workbench window is started.`,
	SilenceUsage: true,
	RunE:         runGUI,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", fmt.Sprintf("config file (default is %s)", config.SettingsFile()))
	rootCmd.PersistentFlags().String("log-level", "", "log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringP("instance", "i", "", fmt.Sprintf("saved parameter set to load (default %q)", config.DefaultInstance))
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("workbench.instance", rootCmd.PersistentFlags().Lookup("instance"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.Dir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("MIDIPARAMS")
	// e.g., MIDIPARAMS_LOG_LEVEL for log.level
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

// setup loads settings and builds the logger for a command
func setup(cmd *cobra.Command) (*config.Settings, *logging.Logger, error) {
	settings, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := logging.NewLogger(cmd.ErrOrStderr(), settings.Log.Level, settings.Log.Format)
	return settings, log, nil
}
