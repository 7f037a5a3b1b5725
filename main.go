package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type cliOptions struct {
	settingsPath  string
	summarizer    string
	extractor     string
	topN          int
	ratio         float64
	convertHTML   bool
	apiKey        string
	debugMode     bool
	logFile       string
	printSettings bool
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	cmd := &cobra.Command{
		Use:   "doc-processor <file_path>",
		Short: "Summarize a text document and extract keyword tags",
		Long: `Reads a text file, produces an extractive summary and keyword tags,
and prints them as one JSON object: {"summary": "...", "tags": [...]}.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.printSettings {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			if opts.printSettings {
				out, err := config.Settings.YAML()
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(cmd.OutOrStdout(), out)
				return err
			}

			logger, err := NewLogger(cmd.ErrOrStderr(), config.Settings.Log.Level, config.Settings.Log.File, opts.debugMode)
			if err != nil {
				return err
			}
			defer CloseLogger(logger)

			processor, err := NewDocumentProcessorFromConfig(config, logger)
			if err != nil {
				return fmt.Errorf("failed to create processor: %w", err)
			}

			result, err := processor.Process(args[0])
			if err != nil {
				return err
			}
			return WriteResult(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&opts.settingsPath, "settings", "", "Path to settings YAML file (default .doc-processor/settings.yaml or embedded)")
	cmd.Flags().StringVar(&opts.summarizer, "summarizer", "", "Summarizer backend: textrank or anthropic")
	cmd.Flags().StringVar(&opts.extractor, "extractor", "", "Keyword extractor backend: rake or anthropic")
	cmd.Flags().IntVar(&opts.topN, "top-n", 0, "Maximum number of tags (0 keeps all)")
	cmd.Flags().Float64Var(&opts.ratio, "ratio", 0, "Fraction of sentences kept by the textrank summarizer")
	cmd.Flags().BoolVar(&opts.convertHTML, "convert-html", false, "Convert HTML input to Markdown before processing")
	cmd.Flags().StringVar(&opts.apiKey, "api-key", "", "Anthropic API key (default ANTHROPIC_API_KEY)")
	cmd.Flags().BoolVar(&opts.debugMode, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "Write logs to a rotating file instead of stderr")
	cmd.Flags().BoolVar(&opts.printSettings, "print-settings", false, "Print the effective settings as YAML and exit")

	return cmd
}

// loadConfig loads settings and applies the flags the user set explicitly
func loadConfig(cmd *cobra.Command, opts *cliOptions) (*Config, error) {
	overrides := &ConfigOverrides{}
	if opts.settingsPath != "" {
		overrides.SettingsPath = &opts.settingsPath
	}

	config, err := NewConfig(overrides)
	if err != nil {
		return nil, err
	}

	s := config.Settings
	flags := cmd.Flags()
	if flags.Changed("summarizer") {
		s.Summarizer.Backend = opts.summarizer
	}
	if flags.Changed("extractor") {
		s.Keywords.Backend = opts.extractor
	}
	if flags.Changed("top-n") {
		s.Keywords.TopN = opts.topN
	}
	if flags.Changed("ratio") {
		s.Summarizer.Ratio = opts.ratio
	}
	if flags.Changed("convert-html") {
		s.Input.ConvertHTML = opts.convertHTML
	}
	if flags.Changed("log-file") {
		s.Log.File = opts.logFile
	}
	if opts.apiKey != "" {
		config.APIKey = opts.apiKey
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var cfgErr *ConfigError
		if errors.As(err, &cfgErr) {
			fmt.Fprintln(os.Stderr, "Configuration error:", err)
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
