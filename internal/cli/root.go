package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/codecamp-kr/qna-assist/internal/extract"
	"github.com/codecamp-kr/qna-assist/internal/hybrid"
	"github.com/codecamp-kr/qna-assist/internal/llm"
	"github.com/codecamp-kr/qna-assist/internal/mapping"
	"github.com/codecamp-kr/qna-assist/internal/model"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "qna-assist",
	Short: "Q&A assistant - keyword extraction and answer retrieval for bootcamp questions",
	Long: `qna-assist extracts searchable keywords from Korean/English developer
questions and retrieves the closest previously-answered questions from
a local Q&A archive.

Extraction is local-first: a free heuristic pass handles most questions,
and an external model is consulted only when local confidence is low or
the text came from a screenshot (OCR). Every result reports where its
keywords came from and what it cost.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for qna-assist.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("qna-assist v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.qna-assist/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.qna-assist")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match QNA_*
	viper.SetEnvPrefix("QNA")
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig returns the defaults overlaid with whatever the config file
// and QNA_* environment variables provide.
func loadConfig() model.Config {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: invalid configuration, using defaults: %v\n", err)
		return model.DefaultConfig()
	}
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	return cfg
}

// newOrchestrator wires the full hybrid extraction stack. Without an API
// key the external provider is left nil and every escalation falls back
// to the local result.
func newOrchestrator(cfg model.Config) (*hybrid.Orchestrator, error) {
	table, err := mapping.Default()
	if err != nil {
		return nil, fmt.Errorf("load term mappings: %w", err)
	}

	var provider llm.Provider
	if cfg.LLM.APIKey != "" || cfg.LLM.BaseURL != "" {
		p, err := llm.NewOpenAIProvider(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			return nil, fmt.Errorf("create LLM provider: %w", err)
		}
		provider = p
	} else if verbose {
		fmt.Fprintln(os.Stderr, "OPENAI_API_KEY not set, running local-only")
	}

	orchestrator := hybrid.New(extract.NewExtractor(), table, provider)
	orchestrator.SetVerbose(verbose)
	return orchestrator, nil
}
