// File: cmd/root.go
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/maternion/matollama/service"
)

var (
	// CLI version, following Semantic Versioning.
	version     = "v1.0.4"
	versionFlag bool

	appConfigDir      string
	appConfigFilePath string
	debugMode         bool

	hostFlag    string
	timeoutFlag float64

	// Global logger instance, configured by setupLogging
	logger = service.GetLogger()

	rootCmd = &cobra.Command{
		Use:   "matollama",
		Short: "An interactive CLI for a local Ollama daemon",
		Long: `matollama is a terminal front-end for a locally running Ollama daemon.
Run it without arguments to start the interactive shell, or use the
subcommands (list, pull, run, ...) for one-shot operations.`,
		Run: func(cmd *cobra.Command, args []string) {
			if versionFlag {
				fmt.Printf("%s %s\n", cmd.CommandPath(), version)
				return
			}
			startShell("", "")
		},
	}
)

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if appConfigDir != "" {
		if err := os.MkdirAll(appConfigDir, 0750); err != nil {
			service.Errorf("Error creating config directory '%s': %v\n", appConfigDir, err)
		}
	}

	if err := rootCmd.Execute(); err != nil {
		service.Errorf("'%s'\n", err)
		os.Exit(1)
	}
}

func init() {
	initConfigPaths()
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolVarP(&debugMode, "debug", "d", false, "Enable debug logging (overrides config file level)")
	rootCmd.PersistentFlags().StringVar(&hostFlag, "host", "", "Daemon host (default http://localhost:11434)")
	rootCmd.PersistentFlags().Float64Var(&timeoutFlag, "timeout", 0, "API timeout in seconds (default 300)")

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.Flags().BoolVarP(&versionFlag, "version", "v", false, "Print the version number of matollama")

	// Basic logging must work even if config loading fails later.
	service.InitLogger()
}

// initConfigPaths calculates the application's configuration directory and
// file path.
func initConfigPaths() {
	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		service.Warnf("Warning: Could not find user config dir, falling back to home directory. %v\n", err)
		userConfigDir, err = homedir.Dir()
		cobra.CheckErr(err)
	}

	appConfigDir = filepath.Join(userConfigDir, "matollama")
	appConfigFilePath = filepath.Join(appConfigDir, "matollama.yaml")
}

// initConfig reads in the config file and matching environment variables.
func initConfig() {
	viper.AddConfigPath(appConfigDir)
	viper.SetConfigName("matollama")
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	viper.SetDefault("log.level", "info")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			service.Debugf("Config file not found in %s. Using defaults/env vars.", appConfigDir)
		} else {
			service.Errorf("Error reading config file (%s): %v", viper.ConfigFileUsed(), err)
		}
	}

	// Command-line flags override the config file.
	if hostFlag != "" {
		viper.Set("host", hostFlag)
	}
	if timeoutFlag > 0 {
		viper.Set("timeout", timeoutFlag)
	}

	setupLogging()
}

// setupLogging configures the global logger based on viper settings and flags.
func setupLogging() {
	logLevelStr := viper.GetString("log.level")

	level := log.InfoLevel
	if debugMode {
		level = log.DebugLevel
		logLevelStr = "debug"
	} else {
		var err error
		level, err = log.ParseLevel(logLevelStr)
		if err != nil {
			service.Warnf("Invalid log level '%s' in config, using 'info': %v", logLevelStr, err)
			level = log.InfoLevel
			logLevelStr = "info (due to invalid config value)"
		}
	}
	logger.SetLevel(level)

	service.Debugf("Logger initialized: level=%s ", logLevelStr)
}
