package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/J-DubApps/get-chat-cmd/internal/config"
	"github.com/J-DubApps/get-chat-cmd/internal/history"
	"github.com/J-DubApps/get-chat-cmd/internal/provider"
	"github.com/J-DubApps/get-chat-cmd/internal/translate"
	"github.com/J-DubApps/get-chat-cmd/internal/ui"

	"github.com/spf13/cobra"
)

var (
	// version is set by goreleaser at build time
	version = "dev"
	commit  = "none"
	date    = "unknown"

	// CLI flags
	debug        bool
	modelFlag    string
	noCopy       bool
	historyLimit int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "chatcmd [request]",
		Short:         "Natural language interface for your terminal",
		Long:          "chatcmd translates natural language into shell commands using an AI provider",
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runDefault,
	}

	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&modelFlag, "model", "m", "", "Override the configured model for this call")
	rootCmd.PersistentFlags().BoolVar(&noCopy, "no-copy", false, "Skip clipboard delivery")

	for _, tag := range provider.Tags() {
		rootCmd.AddCommand(providerCommand(tag))
	}

	configureCmd := &cobra.Command{
		Use:   "configure",
		Short: "Configure providers, API keys, and defaults",
		RunE:  runConfigure,
	}

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent translations",
		RunE:  runHistory,
	}
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of entries to show")

	rootCmd.AddCommand(configureCmd)
	rootCmd.AddCommand(historyCmd)

	if err := rootCmd.Execute(); err != nil {
		ui.ShowError(err.Error())
		os.Exit(1)
	}
}

// providerCommand builds the subcommand for one provider entry point.
func providerCommand(tag provider.Tag) *cobra.Command {
	return &cobra.Command{
		Use:   fmt.Sprintf("%s [request]", tag),
		Short: fmt.Sprintf("Translate using the %s provider", tag),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(tag, args)
		},
	}
}

// runDefault handles a bare `chatcmd "request"` using the configured default
// provider.
func runDefault(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	tag := provider.Tag(cfg.DefaultProvider)
	if tag == "" {
		ui.ShowInfo("Run 'chatcmd configure', or name a provider: chatcmd openai \"...\"")
		return fmt.Errorf("no default provider configured")
	}
	if !tag.Valid() {
		return fmt.Errorf("configured default provider %q is not supported", tag)
	}

	return runTranslate(tag, args)
}

func runTranslate(tag provider.Tag, args []string) error {
	request := strings.Join(args, " ")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if debug {
		configPath, _ := config.GetConfigPath()
		fmt.Fprintf(os.Stderr, "[DEBUG] Main: provider=%s request=%q config=%s\n", tag, request, configPath)
	}

	translator := translate.New(cfg)
	translator.SetDebug(debug)
	if modelFlag != "" {
		translator.SetModel(modelFlag)
	}

	var spin *ui.Spinner
	if ui.IsInteractive() {
		spin = ui.NewSpinner("Thinking...")
		spin.Start()
	}

	command, err := translator.Run(context.Background(), tag, request)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}

	var clip ui.Clipboard
	copied := false
	if cfg.ClipboardEnabled() && !noCopy {
		clip = ui.SystemClipboard{}
		copied = true
	}
	ui.PresentCommand(command, clip)

	saveHistory(history.Entry{
		Provider: string(tag),
		Request:  request,
		Command:  command,
		Copied:   copied,
	})

	if ui.IsInteractive() {
		return actionMenu(command)
	}
	return nil
}

// actionMenu lets the user re-copy the command before exiting.
func actionMenu(command string) error {
	for {
		selected, err := ui.ShowMenu("What would you like to do?", []string{
			"Copy to clipboard",
			"Done",
		})
		if err != nil {
			return err
		}

		switch selected {
		case 0:
			ui.CopyCommand(command, ui.SystemClipboard{})
		case 1:
			return nil
		}
	}
}

// saveHistory records the translation. History failures are warnings, never
// errors — the command was already presented.
func saveHistory(entry history.Entry) {
	path, err := history.DefaultPath()
	if err == nil {
		var store *history.Store
		store, err = history.Open(path)
		if err == nil {
			defer store.Close()
			err = store.Add(entry)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save history: %v\n", err)
	}
}

func runConfigure(cmd *cobra.Command, args []string) error {
	ui.ShowSection("chatcmd Configuration")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	options := []string{"OpenRouter", "OpenAI", "Anthropic", "Local (OpenAI-compatible server)"}
	selected, err := ui.ShowMenu("Which provider should be the default?", options)
	if err != nil {
		return err
	}
	tag := provider.Tags()[selected]
	cfg.DefaultProvider = string(tag)

	switch tag {
	case provider.OpenRouter, provider.OpenAI, provider.Anthropic:
		key, err := ui.PromptSecret(fmt.Sprintf("API key for %s (leave blank to use the environment variable):", tag))
		if err != nil {
			return err
		}
		model, err := ui.PromptInput("Model (leave blank for the provider default):", "")
		if err != nil {
			return err
		}
		switch tag {
		case provider.OpenRouter:
			setProvider(&cfg.OpenRouter, key, model)
		case provider.OpenAI:
			setProvider(&cfg.OpenAI, key, model)
		case provider.Anthropic:
			setProvider(&cfg.Anthropic, key, model)
		}

	case provider.Local:
		baseURL, err := ui.PromptInput("Base URL of your local server:", "http://localhost:11434")
		if err != nil {
			return err
		}
		model, err := ui.PromptInput("Model (leave blank for the server default):", "")
		if err != nil {
			return err
		}
		cfg.Local.BaseURL = baseURL
		if model != "" {
			cfg.Local.Model = model
		}
	}

	clipboardOn, err := ui.PromptYesNo("Copy generated commands to the clipboard?", true)
	if err != nil {
		return err
	}
	cfg.Clipboard = &clipboardOn

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	configPath, _ := config.GetConfigPath()
	ui.ShowSuccess(fmt.Sprintf("Configuration saved to %s", configPath))
	ui.ShowInfo("\nYou're all set! Try running: chatcmd \"list all files\"")

	return nil
}

func setProvider(p *config.Provider, key, model string) {
	if key != "" {
		p.APIKey = key
	}
	if model != "" {
		p.Model = model
	}
}

func runHistory(cmd *cobra.Command, args []string) error {
	path, err := history.DefaultPath()
	if err != nil {
		return err
	}

	store, err := history.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer store.Close()

	entries, err := store.Recent(historyLimit)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if len(entries) == 0 {
		ui.ShowInfo("No history yet.")
		return nil
	}

	ui.ShowSection("Recent Translations")
	for _, e := range entries {
		fmt.Printf("%s  [%s]\n", e.Timestamp.Format("2006-01-02 15:04"), e.Provider)
		fmt.Printf("  request: %s\n", e.Request)
		fmt.Printf("  command: %s\n\n", e.Command)
	}

	return nil
}
