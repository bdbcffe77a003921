package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/tweetlate/internal"
	"codeberg.org/snonux/tweetlate/internal/langdetect"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tweetlate [input.json]",
		Short: "Translate a tweet corpus into English",
		Long: `tweetlate detects the language of every tweet and comment in a JSON
corpus, transliterates romanized Hindi to Devanagari and translates
Indic languages into English.

The corpus is split into numbered parts and each processed part is
written to its own file, so long runs can be resumed part by part.

Examples:
  tweetlate                                  # Process all 20 parts of the default corpus
  tweetlate tweets.json --parts 10           # Split tweets.json into 10 parts
  tweetlate --start-part 5 --end-part 7      # Resume with parts 5 to 7
  tweetlate --provider gemini --cache-db c.db # Use Gemini with a persistent cache`,
		Args:    cobra.MaximumNArgs(1),
		Version: internal.Version,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.tweetlate.yaml)")

	// Local flags
	cmd.Flags().StringVarP(&flags.InputFile, "input", "i", flags.InputFile, "Input corpus (JSON array of tweets)")
	cmd.Flags().StringVarP(&flags.OutputPrefix, "output-prefix", "o", flags.OutputPrefix, "Prefix of the part files, '<prefix><n>.json'")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Move existing part files into an archive directory and exit")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI chat models for the current API key")
	cmd.Flags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Disable progress bars")

	// Part flags
	cmd.Flags().IntVar(&flags.NumParts, "parts", flags.NumParts, "Number of parts the corpus is split into")
	cmd.Flags().IntVar(&flags.StartPart, "start-part", flags.StartPart, "First part to process (1-based)")
	cmd.Flags().IntVar(&flags.EndPart, "end-part", flags.EndPart, "Last part to process, 0 = last part (clamped to --parts)")

	// Language flags
	cmd.Flags().StringVar(&flags.Detector, "detector", flags.Detector, "Language identifier: lingua or whatlang")
	cmd.Flags().Float64Var(&flags.MinConfidence, "min-confidence", flags.MinConfidence, "Minimum detection confidence for a text to be translated")
	cmd.Flags().StringVar(&flags.Provider, "provider", flags.Provider, "Translation provider: openai or gemini")
	cmd.Flags().StringVar(&flags.Model, "model", "", "Translation model (default: gpt-4o-mini for openai, gemini-2.0-flash for gemini)")
	cmd.Flags().IntVar(&flags.BeamWidth, "beam-width", flags.BeamWidth, "Number of transliteration candidates requested per text")
	cmd.Flags().StringVar(&flags.CacheDB, "cache-db", "", "SQLite file caching translations across runs")
	cmd.Flags().Float64Var(&flags.Rate, "rate", flags.Rate, "Maximum API requests per second (0 disables the limit)")

	// Logging flags
	cmd.Flags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn, error")
	cmd.Flags().StringVar(&flags.LogFormat, "log-format", flags.LogFormat, "Log format: text or json")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("input.file", cmd.Flags().Lookup("input"))
	viper.BindPFlag("output.prefix", cmd.Flags().Lookup("output-prefix"))
	viper.BindPFlag("parts.total", cmd.Flags().Lookup("parts"))
	viper.BindPFlag("parts.start", cmd.Flags().Lookup("start-part"))
	viper.BindPFlag("parts.end", cmd.Flags().Lookup("end-part"))
	viper.BindPFlag("detection.engine", cmd.Flags().Lookup("detector"))
	viper.BindPFlag("detection.min_confidence", cmd.Flags().Lookup("min-confidence"))
	viper.BindPFlag("translation.provider", cmd.Flags().Lookup("provider"))
	viper.BindPFlag("translation.model", cmd.Flags().Lookup("model"))
	viper.BindPFlag("translation.cache_db", cmd.Flags().Lookup("cache-db"))
	viper.BindPFlag("translation.rate", cmd.Flags().Lookup("rate"))
	viper.BindPFlag("transliteration.beam_width", cmd.Flags().Lookup("beam-width"))
	viper.BindPFlag("log.level", cmd.Flags().Lookup("log-level"))
	viper.BindPFlag("log.format", cmd.Flags().Lookup("log-format"))
}

// ApplyConfig copies config file and environment values into flags.
// Flags set on the command line win because they are bound to viper.
func ApplyConfig(flags *Flags) {
	flags.InputFile = viper.GetString("input.file")
	flags.OutputPrefix = viper.GetString("output.prefix")
	flags.NumParts = viper.GetInt("parts.total")
	flags.StartPart = viper.GetInt("parts.start")
	flags.EndPart = viper.GetInt("parts.end")
	flags.Detector = viper.GetString("detection.engine")
	flags.MinConfidence = viper.GetFloat64("detection.min_confidence")
	flags.Provider = viper.GetString("translation.provider")
	flags.Model = viper.GetString("translation.model")
	flags.CacheDB = viper.GetString("translation.cache_db")
	flags.Rate = viper.GetFloat64("translation.rate")
	flags.BeamWidth = viper.GetInt("transliteration.beam_width")
	flags.LogLevel = viper.GetString("log.level")
	flags.LogFormat = viper.GetString("log.format")
}

// DetectorThresholds returns the detection thresholds, config keys under
// detection override the defaults
func DetectorThresholds() langdetect.Thresholds {
	t := langdetect.DefaultThresholds()
	overrides := map[string]*float64{
		"detection.accept":      &t.Accept,
		"detection.ascii_hindi": &t.ASCIIHindi,
		"detection.english":     &t.English,
		"detection.fallback":    &t.Fallback,
	}
	for key, field := range overrides {
		if viper.IsSet(key) {
			*field = viper.GetFloat64(key)
		}
	}
	return t
}

// Validate checks flag combinations before any work starts
func (f *Flags) Validate() error {
	if f.InputFile == "" {
		return fmt.Errorf("no input file given")
	}
	if f.NumParts < 1 {
		return fmt.Errorf("--parts must be at least 1, got %d", f.NumParts)
	}
	if f.BeamWidth < 1 {
		return fmt.Errorf("--beam-width must be at least 1, got %d", f.BeamWidth)
	}
	if f.MinConfidence < 0 || f.MinConfidence > 1 {
		return fmt.Errorf("--min-confidence must be between 0 and 1, got %v", f.MinConfidence)
	}
	switch f.Provider {
	case "openai", "gemini":
	default:
		return fmt.Errorf("unknown provider %q (use openai or gemini)", f.Provider)
	}
	switch f.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (use text or json)", f.LogFormat)
	}
	return nil
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".tweetlate" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".tweetlate")
	}

	// Environment variables
	viper.SetEnvPrefix("TWEETLATE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("translation.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("translation.gemini_key")
}
