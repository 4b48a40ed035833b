package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/alkime/storyform/internal/config"
	"github.com/alkime/storyform/internal/content"
	"github.com/alkime/storyform/internal/keyring"
	"github.com/alkime/storyform/internal/pipeline"
	"github.com/alkime/storyform/internal/session"
	"github.com/alkime/storyform/internal/storage"
	"github.com/alkime/storyform/internal/story"
	"github.com/alkime/storyform/internal/tui"
	"github.com/alkime/storyform/internal/tui/workflow"
	"github.com/alkime/storyform/internal/workdir"
	tea "github.com/charmbracelet/bubbletea"
)

// CLI defines the storyform command structure.
type CLI struct {
	Publish    PublishCmd    `cmd:"" help:"Draft metadata, compose and publish a story"`
	Metadata   MetadataCmd   `cmd:"" help:"Draft SEO metadata for a title and print it as JSON"`
	Categories CategoriesCmd `cmd:"" help:"List story categories and their codes"`
	Config     ConfigCmd     `cmd:"" help:"Manage configuration"`
}

// PublishCmd runs the terminal publishing workflow.
type PublishCmd struct {
	Title       string `flag:"" required:"" help:"Story title"`
	HTML        string `flag:"" name:"html" required:"" type:"existingfile" help:"Path to the story HTML to lift pages and styles from"`
	Category    string `flag:"" required:"" help:"Category name (see 'storyform categories')"`
	Image       string `flag:"" help:"Story image URL"`
	Cover       string `flag:"" help:"Custom cover image URL (defaults to the image URL)"`
	Description string `flag:"" help:"Meta description (drafted when empty)"`
	Keywords    string `flag:"" help:"Comma-separated meta keywords (drafted when empty)"`
	Tags        string `flag:"" help:"Comma-separated filter tags (drafted when empty)"`
	ContentType string `flag:"" default:"Article" enum:"News,Article" help:"Content type"`
	Language    string `flag:"" default:"en-US" enum:"en-US,hi" help:"Language code"`
	OutputDir   string `flag:"" optional:"" help:"Where to save the bundle (default: ~/Documents/Alkime/Stories/archives)"`
	DryRun      bool   `flag:"" help:"Keep uploads in memory instead of object storage"`
}

// Run executes the publish command.
func (c *PublishCmd) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if c.DryRun {
		cfg.StorageDriver = config.StorageMemory
	}

	profile, err := config.LoadProfile(cfg.ProfilePath)
	if err != nil {
		return err
	}

	rawHTML, err := os.ReadFile(c.HTML)
	if err != nil {
		return fmt.Errorf("failed to read story HTML: %w", err)
	}

	if c.OutputDir == "" {
		if c.OutputDir, err = workdir.Prep(workdir.ArchiveDir); err != nil {
			return fmt.Errorf("failed to prepare archive directory: %w", err)
		}
	}

	// The terminal UI owns stdout; logs go to a file
	closeLog, err := logToFile()
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to set up storage: %w", err)
	}

	st := &workflow.Story{Submission: story.Submission{
		Title:           c.Title,
		MetaDescription: c.Description,
		MetaKeywords:    c.Keywords,
		ContentType:     c.ContentType,
		Language:        c.Language,
		ImageURL:        c.Image,
		RawHTML:         string(rawHTML),
		Category:        c.Category,
		FilterTags:      c.Tags,
		CustomCoverURL:  c.Cover,
	}}

	p := tea.NewProgram(tui.New(tui.Config{
		Ctx:    ctx,
		Cancel: cancel,
		Story:  st,
		Drafter: workflow.CachedDrafter{
			Cache:     session.NewCache(),
			Generator: content.NewWriter(completerOrUnavailable(cfg)),
		},
		Publisher: pipeline.New(cfg, store, profile),
		OutputDir: c.OutputDir,
	}))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	if st.Result != nil {
		fmt.Printf("\n%s\n%s\n", st.Result.StoryURL, st.ArchivePath)
	}

	return nil
}

// MetadataCmd drafts metadata for a title without publishing.
type MetadataCmd struct {
	Title string `arg:"" required:"" help:"Story title"`
}

// Run executes the metadata command.
func (c *MetadataCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	completer, err := content.NewCompleter(cfg)
	if err != nil {
		return err
	}

	md, err := content.NewWriter(completer).GenerateMetadata(context.Background(), c.Title)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	return enc.Encode(md)
}

// CategoriesCmd lists the category enumeration.
type CategoriesCmd struct{}

// Run executes the categories command.
//
//nolint:unparam // error return required by Kong interface
func (c *CategoriesCmd) Run() error {
	for _, name := range story.Categories() {
		code, err := story.ParseCategory(name)
		if err != nil {
			continue
		}
		fmt.Printf("%2d  %s\n", code, name)
	}

	return nil
}

// ConfigCmd groups configuration-related subcommands.
type ConfigCmd struct {
	SetKey   SetKeyCmd   `cmd:"" help:"Store an API key in system keychain"`
	ListKeys ListKeysCmd `cmd:"" name:"list-keys" help:"Show which API keys are configured"`
}

// SetKeyCmd stores an API key in the system keychain.
type SetKeyCmd struct {
	Service string `arg:"" enum:"azure,openai,anthropic" help:"Provider name (azure, openai or anthropic)"`
	Secret  string `arg:"" help:"API key value"`
}

// Run executes the set-key command.
func (c *SetKeyCmd) Run() error {
	if strings.TrimSpace(c.Secret) == "" {
		return errors.New("API key cannot be empty")
	}

	apiKey, err := keyring.APIKeyFromServiceName(c.Service)
	if err != nil {
		return fmt.Errorf("invalid service: %w", err)
	}

	if err := keyring.Set(apiKey, c.Secret); err != nil {
		return fmt.Errorf("failed to store API key: %w", err)
	}

	fmt.Printf("%s API key stored in keychain\n", c.Service)

	return nil
}

// ListKeysCmd shows which API keys are configured.
type ListKeysCmd struct{}

// Run executes the list-keys command.
//
//nolint:unparam // error return required by Kong interface
func (c *ListKeysCmd) Run() error {
	for _, apiKey := range keyring.AllAPIKeys() {
		if keyring.IsSet(apiKey) {
			fmt.Printf("%s: configured\n", apiKey.DisplayName())
		} else {
			fmt.Printf("%s: not set\n", apiKey.DisplayName())
		}
	}

	fmt.Println("\nEnvironment variables take priority over the keychain.")

	return nil
}

func main() {
	// Set up text-based logger for CLI output
	//nolint:exhaustruct // Using default values for other HandlerOptions fields
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))

	cli := &CLI{} //nolint:exhaustruct // Kong fills in command fields
	ctx := kong.Parse(cli,
		kong.Name("storyform"),
		kong.Description("Compose and publish web stories."),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// loadConfig reads the environment and fills API keys from the keychain.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	keyring.Fill(&cfg.AzureOpenAIAPIKey, keyring.Azure)
	keyring.Fill(&cfg.OpenAIAPIKey, keyring.OpenAI)
	keyring.Fill(&cfg.AnthropicAPIKey, keyring.Anthropic)

	return cfg, nil
}

func completerOrUnavailable(cfg *config.Config) content.Completer {
	completer, err := content.NewCompleter(cfg)
	if err != nil {
		slog.Warn("Text generation unavailable", "error", err)
		return content.Unavailable{Err: err}
	}

	return completer
}

func logToFile() (func(), error) {
	dir, err := workdir.Prep(workdir.LogDir)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare log directory: %w", err)
	}

	//nolint:gosec // Path is built from the working directory
	f, err := os.OpenFile(filepath.Join(dir, "storyform.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))

	return func() {
		slog.SetDefault(prev)
		_ = f.Close()
	}, nil
}
