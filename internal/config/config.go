package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvProduction represents the production environment.
	EnvProduction = "production"
)

// AI providers understood by AI_PROVIDER.
const (
	ProviderAzure     = "azure"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Storage drivers understood by STORAGE_DRIVER.
const (
	StorageS3     = "s3"
	StorageLocal  = "local"
	StorageMemory = "memory"
)

// Config holds all application configuration.
type Config struct {
	// Server settings
	Env           string `envconfig:"ENV" default:"development"`
	Port          string `envconfig:"PORT" default:"8080"`
	SessionSecret string `envconfig:"SESSION_SECRET" default:"storyform-dev-secret-change-me"`
	StaticDir     string `envconfig:"STATIC_DIR" default:"./static"`

	// Security settings
	HSTSMaxAge int    `envconfig:"HSTS_MAX_AGE" default:"31536000"`
	CSPMode    string `envconfig:"CSP_MODE" default:"relaxed"`

	// Logging settings
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Story composition
	TemplatePath string `envconfig:"TEMPLATE_PATH" default:"templates/masterregex.html"`
	ProfilePath  string `envconfig:"PROFILE_PATH"`

	// Text generation
	AIProvider            string `envconfig:"AI_PROVIDER" default:"azure"`
	AzureOpenAIEndpoint   string `envconfig:"AZURE_OPENAI_ENDPOINT"`
	AzureOpenAIAPIKey     string `envconfig:"AZURE_OPENAI_API_KEY"`
	AzureOpenAIAPIVersion string `envconfig:"AZURE_OPENAI_API_VERSION" default:"2025-01-01-preview"`
	GPTDeployment         string `envconfig:"GPT_DEPLOYMENT" default:"gpt-5-chat"`
	OpenAIAPIKey          string `envconfig:"OPENAI_API_KEY"`
	OpenAIModel           string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
	AnthropicAPIKey       string `envconfig:"ANTHROPIC_API_KEY"`

	// Object storage
	StorageDriver string `envconfig:"STORAGE_DRIVER" default:"s3"`
	StorageDir    string `envconfig:"STORAGE_DIR"`
	AWSAccessKey  string `envconfig:"AWS_ACCESS_KEY"`
	AWSSecretKey  string `envconfig:"AWS_SECRET_KEY"`
	AWSRegion     string `envconfig:"AWS_REGION" default:"ap-south-1"`
	MediaBucket   string `envconfig:"AWS_BUCKET"`
	StoriesBucket string `envconfig:"STORIES_BUCKET" default:"suvichaarstories"`
	S3Endpoint    string `envconfig:"S3_ENDPOINT"`
	S3Prefix      string `envconfig:"S3_PREFIX" default:"media/"`

	// Public hosts
	CDNBase       string `envconfig:"CDN_BASE" default:"https://media.suvichaar.org/"`
	MediaHost     string `envconfig:"MEDIA_HOST" default:"https://media.suvichaar.org/"`
	StoryHost     string `envconfig:"STORY_HOST" default:"https://stories.suvichaar.org/"`
	CanonicalBase string `envconfig:"CANONICAL_BASE" default:"https://suvichaar.org/stories/"`

	ImageFetchTimeout time.Duration `envconfig:"IMAGE_FETCH_TIMEOUT" default:"10s"`
}

// LoadConfig loads configuration from .env file and environment variables.
func LoadConfig() (*Config, error) {
	// Try to load .env file (optional for development)
	if err := godotenv.Load(); err != nil {
		// Not an error if file doesn't exist (expected in production)
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	}

	// Parse environment variables into config struct
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	config.Normalize()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Normalize cleans up values whose shape the rest of the app relies on.
func (c *Config) Normalize() {
	c.S3Prefix = NormalizePrefix(c.S3Prefix)
	c.AIProvider = strings.ToLower(strings.TrimSpace(c.AIProvider))
	c.StorageDriver = strings.ToLower(strings.TrimSpace(c.StorageDriver))
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch c.AIProvider {
	case ProviderAzure, ProviderOpenAI, ProviderAnthropic:
	default:
		return fmt.Errorf("invalid AI_PROVIDER %q: must be azure, openai or anthropic", c.AIProvider)
	}

	switch c.StorageDriver {
	case StorageS3, StorageLocal, StorageMemory:
	default:
		return fmt.Errorf("invalid STORAGE_DRIVER %q: must be s3, local or memory", c.StorageDriver)
	}

	return nil
}

// ValidateStorage checks the settings the selected storage driver needs.
// Commands that never touch storage skip it.
func (c *Config) ValidateStorage() error {
	if c.StorageDriver != StorageS3 {
		return nil
	}

	if strings.TrimSpace(c.MediaBucket) == "" {
		return errors.New("AWS_BUCKET is required when STORAGE_DRIVER is s3")
	}

	if strings.TrimSpace(c.StoriesBucket) == "" {
		return errors.New("STORIES_BUCKET is required when STORAGE_DRIVER is s3")
	}

	return nil
}

// NormalizePrefix makes a non-empty key prefix end in exactly one slash.
func NormalizePrefix(prefix string) string {
	if prefix == "" {
		return ""
	}

	return strings.TrimRight(prefix, "/") + "/"
}

// BuildCSP constructs Content Security Policy based on mode.
func BuildCSP(mode string) string {
	if mode == "strict" {
		// Production CSP
		return "default-src 'self'; " +
			"style-src 'self' 'unsafe-inline'; " +
			"script-src 'self'; " +
			"img-src 'self' https: data:; " +
			"object-src 'none'; " +
			"base-uri 'self'; " +
			"form-action 'self'"
	}

	// Development/relaxed CSP
	return "default-src 'self'; " +
		"style-src 'self' 'unsafe-inline'; " +
		"script-src 'self' 'unsafe-inline'; " +
		"img-src 'self' https: data:"
}
