package app

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

// Config is the top-level configuration for the cinecanvas daemon and CLI.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Export   ExportConfig   `mapstructure:"export"`
	Log      LogConfig      `mapstructure:"log"`
	Security SecurityConfig `mapstructure:"security"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// ExportConfig holds CineCanvas writer defaults loaded from configuration.
// Nothing reads it: the convert handlers and the CLI start from
// cinecanvas.DefaultSettings, not from these values.
type ExportConfig struct {
	FrameRate            float64 `mapstructure:"frame_rate"`
	MovieTitle           string  `mapstructure:"movie_title"`
	ReelNumber           int     `mapstructure:"reel_number"`
	LanguageCode         string  `mapstructure:"language_code"`
	IncludeFontReference bool    `mapstructure:"include_font_reference"`
	FontURI              string  `mapstructure:"font_uri"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type SecurityConfig struct {
	APIKey         string   `mapstructure:"api_key"`
	RateLimit      int      `mapstructure:"rate_limit"`
	EnableAuth     bool     `mapstructure:"enable_auth"`
	AllowedDomains []string `mapstructure:"allowed_domains"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/cinecanvas/")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvPrefix("CINECANVAS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	logEnvironmentVariables()

	_ = viper.BindEnv("security.allowed_domains", "CINECANVAS_SECURITY_ALLOWED_DOMAINS")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config.Security.EnableAuth && config.Security.APIKey == "" && !viper.IsSet("security.api_key") {
		generatedKey, err := generateSecureAPIKey()
		if err != nil {
			return nil, fmt.Errorf("failed to generate API key: %w", err)
		}
		fmt.Printf("Generated API key: %s\n", generatedKey)
		config.Security.APIKey = generatedKey
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 3002)

	viper.SetDefault("export.frame_rate", 24.0)
	viper.SetDefault("export.movie_title", "Untitled")
	viper.SetDefault("export.reel_number", 1)
	viper.SetDefault("export.language_code", "en")
	viper.SetDefault("export.include_font_reference", false)
	viper.SetDefault("export.font_uri", "")

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")

	viper.SetDefault("security.rate_limit", 100)
	viper.SetDefault("security.enable_auth", true)
	viper.SetDefault("security.allowed_domains", []string{})
}

// generateSecureAPIKey generates a cryptographically secure API key.
func generateSecureAPIKey() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// logEnvironmentVariables logs all CINECANVAS_ environment variables for
// debugging, masking anything that looks like a secret.
func logEnvironmentVariables() {
	fmt.Println("=== CINECANVAS Environment Variables Debug ===")

	var vars []string
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "CINECANVAS_") {
			vars = append(vars, env)
		}
	}

	if len(vars) == 0 {
		fmt.Println("No CINECANVAS_ environment variables found")
		return
	}

	sort.Strings(vars)
	for _, env := range vars {
		parts := strings.SplitN(env, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key, value := parts[0], parts[1]
		if strings.Contains(strings.ToLower(key), "key") ||
			strings.Contains(strings.ToLower(key), "secret") ||
			strings.Contains(strings.ToLower(key), "password") {
			if len(value) > 8 {
				value = value[:4] + "***" + value[len(value)-4:]
			} else {
				value = "***"
			}
		}
		fmt.Printf("  %s = %s\n", key, value)
	}
	fmt.Println("=== End Environment Variables ===")
}
