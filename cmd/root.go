package cmd

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/cv2profile/internal/source"
)

const (
	app       = "cv2profile"
	envPrefix = "CV2PROFILE"
)

type Config struct {
	AI      *AIConfig      `mapstructure:"ai"`
	Source  *SourceConfig  `mapstructure:"source"`
	Publish *PublishConfig `mapstructure:"publish"`
	Server  *ServerConfig  `mapstructure:"server"`
	Report  *ReportConfig  `mapstructure:"report"`
}

type AIConfig struct {
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

type SourceConfig struct {
	UserAgent string          `mapstructure:"user-agent"`
	Timeout   time.Duration   `mapstructure:"timeout"`
	MaxBytes  int64           `mapstructure:"max-bytes"`
	S3        *S3SourceConfig `mapstructure:"s3"`
}

type S3SourceConfig struct {
	Region        string `mapstructure:"region"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access-key"`
	SecretKeyFile string `mapstructure:"secret-key-file"`
}

type PublishConfig struct {
	AMQP *AMQPConfig `mapstructure:"amqp"`
}

type AMQPConfig struct {
	URL      string `mapstructure:"url"`
	Exchange string `mapstructure:"exchange"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown-timeout"`
	MaxUploadBytes  int64         `mapstructure:"max-upload-bytes"`
	Username        string        `mapstructure:"username"`
	PasswordFile    string        `mapstructure:"password-file"`
}

type ReportConfig struct {
	Format string `mapstructure:"format"`
}

var envKeys = []string{
	"ai.gemini.api-key-file",
	"ai.gemini.max-log-length",
	"source.user-agent",
	"source.s3.region",
	"source.s3.endpoint",
	"source.s3.access-key",
	"source.s3.secret-key-file",
	"publish.amqp.url",
	"publish.amqp.exchange",
	"server.shutdown-timeout",
	"server.max-upload-bytes",
	"server.username",
	"server.password-file",
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "cv2profile turns a CV into a structured profile with computed experience totals",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is cv2profile.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	viper.SetDefault("ai.provider", "gemini")
	viper.SetDefault("ai.gemini.model", "gemini-2.5-pro")
	viper.SetDefault("ai.gemini.max-retries", 3)
	viper.SetDefault("source.timeout", 30*time.Second)
	viper.SetDefault("source.max-bytes", source.DefaultMaxBytes)
	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("report.format", "markdown")
}

func initConfig() {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// Keys without a default are only seen by Unmarshal when bound.
	for _, key := range envKeys {
		if err := viper.BindEnv(key); err != nil {
			log.Fatalf("binding %s environment variable: %v", key, err)
		}
	}

	// A missing default config is fine, everything has a default or an env override.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}

	return config, nil
}
