package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/bobbyohyeah/skyebot-support/internal/domain"
	"github.com/spf13/viper"
)

// DocumentPrefix is the environment prefix declaring context documents,
// e.g. GDRIVE_SUPPORTED_DRONES=<drive file id>.
const DocumentPrefix = "GDRIVE_"

// Config holds all configuration for the SkyeBot adapters
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Drive   DriveConfig   `mapstructure:"drive"`
	GenAI   GenAIConfig   `mapstructure:"genai"`
	Speech  SpeechConfig  `mapstructure:"speech"`
	Prompts PromptsConfig `mapstructure:"prompts"`
}

// ServerConfig holds webhook server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// DriveConfig holds Google Drive access and cache configuration
type DriveConfig struct {
	CredentialsPath string `mapstructure:"credentials_path"`
	TokenPath       string `mapstructure:"token_path"`
	CacheDir        string `mapstructure:"cache_dir"`
}

// GenAIConfig holds the Gemini client and model-tier configuration
type GenAIConfig struct {
	APIKey         string `mapstructure:"api_key"`
	ModelFlash     string `mapstructure:"model_flash"`
	ModelFlashLite string `mapstructure:"model_flash_lite"`
	ModelPro       string `mapstructure:"model_pro"`
}

// SpeechConfig holds synthesis, transcription and audio I/O configuration
type SpeechConfig struct {
	APIKey           string  `mapstructure:"api_key"`
	Voice            string  `mapstructure:"voice"`
	LanguageCode     string  `mapstructure:"language_code"`
	SpeakingRate     float64 `mapstructure:"speaking_rate"`
	RecordSeconds    int     `mapstructure:"record_seconds"`
	RecordSampleRate int     `mapstructure:"record_sample_rate"`
}

// PromptsConfig points at the per-modality system-instruction file
type PromptsConfig struct {
	Path string `mapstructure:"path"`
}

// Load loads configuration from file and environment
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("SKYEBOT")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// API keys come from the conventional unprefixed variables when the
	// config file does not set them.
	if cfg.GenAI.APIKey == "" {
		cfg.GenAI.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.Speech.APIKey == "" {
		cfg.Speech.APIKey = os.Getenv("GOOGLE_TTS_API_KEY")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8081)

	v.SetDefault("drive.credentials_path", "./keys/credentials.json")
	v.SetDefault("drive.token_path", "./keys/token.json")
	v.SetDefault("drive.cache_dir", "./drive")

	v.SetDefault("genai.model_flash", "gemini-2.0-flash")
	v.SetDefault("genai.model_flash_lite", "gemini-2.0-flash-lite")
	v.SetDefault("genai.model_pro", "gemini-2.5-pro")

	v.SetDefault("speech.voice", "en-US-Chirp3-HD-Leda")
	v.SetDefault("speech.language_code", "en-US")
	v.SetDefault("speech.speaking_rate", 1.0)
	v.SetDefault("speech.record_seconds", 5)
	v.SetDefault("speech.record_sample_rate", 16000)

	v.SetDefault("prompts.path", "./sys_prompts.json")
}

// Address returns the webhook server address
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Model resolves a model tier name (flash, flash-lite, pro) to the
// configured model id.
func (c GenAIConfig) Model(tier string) (string, error) {
	switch tier {
	case "flash":
		return c.ModelFlash, nil
	case "flash-lite":
		return c.ModelFlashLite, nil
	case "pro":
		return c.ModelPro, nil
	default:
		return "", fmt.Errorf("unknown model tier %q (want flash, flash-lite or pro)", tier)
	}
}

// Documents scans the process environment for GDRIVE_* declarations and
// returns them with logical names derived from the variable names:
// GDRIVE_SUPPORTED_DRONES becomes "Supported Drones".
func Documents() []domain.Declaration {
	var decls []domain.Declaration
	for _, entry := range os.Environ() {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || value == "" || !strings.HasPrefix(key, DocumentPrefix) {
			continue
		}
		name := logicalName(strings.TrimPrefix(key, DocumentPrefix))
		if name == "" {
			continue
		}
		decls = append(decls, domain.Declaration{Name: name, SourceID: value})
	}
	return decls
}

// logicalName converts SOME_DOC_NAME to "Some Doc Name".
func logicalName(raw string) string {
	parts := strings.Split(raw, "_")
	words := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		p = strings.ToLower(p)
		words = append(words, strings.ToUpper(p[:1])+p[1:])
	}
	return strings.Join(words, " ")
}
