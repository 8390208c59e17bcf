package cmd

import (
	"errors"
	"log"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "staff-matcher"
)

type Config struct {
	HR       *HRConfig       `mapstructure:"hr"`
	Matching *MatchingConfig `mapstructure:"matching"`
	AI       *AIConfig       `mapstructure:"ai"`
	Server   *ServerConfig   `mapstructure:"server"`
}

type HRConfig struct {
	InsiderURL       string        `mapstructure:"insider-url"`
	EmpInfoURL       string        `mapstructure:"empinfo-url"`
	InsiderTokenFile string        `mapstructure:"insider-token-file"`
	EmpInfoTokenFile string        `mapstructure:"empinfo-token-file"`
	UserAgent        string        `mapstructure:"user-agent"`
	PlannerID        int           `mapstructure:"planner-id"`
	Timeout          time.Duration `mapstructure:"timeout"`
}

type MatchingConfig struct {
	MinimumMatchScore  float64       `mapstructure:"minimum-match-score"`
	MaxBookedHours     float64       `mapstructure:"max-booked-hours"`
	BookingWindowDays  int           `mapstructure:"booking-window-days"`
	BatchSize          int           `mapstructure:"batch-size"`
	MaxParallelBatches int           `mapstructure:"max-parallel-batches"`
	CallTimeout        time.Duration `mapstructure:"call-timeout"`
}

type AIConfig struct {
	Gemini *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "staff-matcher recommends employees for a project described in free text",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	envBindings := map[string]string{
		"hr.insider-token-file":  "HR_INSIDER_TOKEN_FILE",
		"hr.empinfo-token-file":  "HR_EMPINFO_TOKEN_FILE",
		"ai.gemini.api-key":      "GEMINI_API_KEY",
		"ai.gemini.api-key-file": "GEMINI_API_KEY_FILE",
	}
	for key, env := range envBindings {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is staff-matcher.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
		viper.SetConfigType("yaml")
	}

	// A missing config file is fine: defaults and environment variables
	// cover a full setup. A config file that fails to parse is not.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config == nil {
		config = &Config{}
	}
	return config, nil
}
