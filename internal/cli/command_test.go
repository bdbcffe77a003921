package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"codeberg.org/snonux/tweetlate/internal/langdetect"
)

func TestCreateRootCommand(t *testing.T) {
	flags := NewFlags()
	cmd := CreateRootCommand(flags)

	// Test basic command properties
	if cmd.Use != "tweetlate [input.json]" {
		t.Errorf("Expected Use to be 'tweetlate [input.json]', got %s", cmd.Use)
	}

	if !strings.Contains(cmd.Short, "English") {
		t.Errorf("Expected Short description to mention English, got %q", cmd.Short)
	}

	if err := cmd.Args(cmd, []string{"a.json", "b.json"}); err == nil {
		t.Error("Expected error for two positional arguments")
	}

	// Test that flags are set up
	flagTests := []string{
		"config", "input", "output-prefix", "archive", "list-models", "quiet",
		"parts", "start-part", "end-part",
		"detector", "min-confidence", "provider", "model", "beam-width", "cache-db", "rate",
		"log-level", "log-format",
	}

	for _, name := range flagTests {
		t.Run("flag_"+name, func(t *testing.T) {
			var flag *pflag.Flag
			if name == "config" {
				flag = cmd.PersistentFlags().Lookup(name)
			} else {
				flag = cmd.Flags().Lookup(name)
			}
			if flag == nil {
				t.Errorf("Expected flag %s to exist", name)
			}
		})
	}
}

func TestSetupFlags(t *testing.T) {
	cmd := &cobra.Command{}
	flags := NewFlags()

	setupFlags(cmd, flags)

	defaults := map[string]string{
		"input":         "india_training_merged_filtered.json",
		"output-prefix": "translated_part_",
		"parts":         "20",
		"start-part":    "1",
		"end-part":      "0",
		"provider":      "openai",
		"detector":      "lingua",
	}

	for name, want := range defaults {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			t.Fatalf("%s flag not found", name)
		}
		if flag.DefValue != want {
			t.Errorf("Expected default %s to be %s, got %s", name, want, flag.DefValue)
		}
	}

	if cmd.Flags().ShorthandLookup("i") == nil || cmd.Flags().ShorthandLookup("o") == nil {
		t.Error("Expected -i and -o shorthands")
	}
}

func TestInitConfig(t *testing.T) {
	// Save original viper state
	originalConfig := viper.New()
	*originalConfig = *viper.GetViper()
	defer func() {
		*viper.GetViper() = *originalConfig
	}()

	tests := []struct {
		name      string
		cfgFile   string
		setupFunc func(t *testing.T) string
	}{
		{
			name:    "with config file",
			cfgFile: "test-config.yaml",
			setupFunc: func(t *testing.T) string {
				tmpDir := t.TempDir()
				cfgPath := filepath.Join(tmpDir, "test-config.yaml")
				content := `translation:
  provider: gemini
  openai_key: test-key
parts:
  total: 8`
				err := os.WriteFile(cfgPath, []byte(content), 0644)
				if err != nil {
					t.Fatalf("Failed to create test config: %v", err)
				}
				return cfgPath
			},
		},
		{
			name:    "without config file",
			cfgFile: "",
			setupFunc: func(t *testing.T) string {
				return ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset viper for each test
			viper.Reset()

			cfgPath := tt.setupFunc(t)
			if tt.cfgFile != "" && cfgPath != "" {
				tt.cfgFile = cfgPath
			}

			InitConfig(tt.cfgFile)

			if cfgPath != "" {
				if viper.GetString("translation.provider") != "gemini" {
					t.Errorf("Expected provider from config file, got %q", viper.GetString("translation.provider"))
				}
				if viper.GetInt("parts.total") != 8 {
					t.Errorf("Expected parts.total 8, got %d", viper.GetInt("parts.total"))
				}
			}

			// Test environment variable prefix
			t.Setenv("TWEETLATE_TEST_VAR", "test-value")
			if viper.GetString("test_var") != "test-value" {
				t.Error("Environment variable not properly loaded")
			}

			// Nested keys map to underscores
			t.Setenv("TWEETLATE_LOG_LEVEL", "debug")
			if viper.GetString("log.level") != "debug" {
				t.Errorf("Expected log.level from env, got %q", viper.GetString("log.level"))
			}
		})
	}
}

func TestGetOpenAIKey(t *testing.T) {
	// Save original viper state
	originalConfig := viper.New()
	*originalConfig = *viper.GetViper()
	defer func() {
		*viper.GetViper() = *originalConfig
	}()

	tests := []struct {
		name      string
		envKey    string
		configKey string
		expected  string
	}{
		{
			name:      "from environment",
			envKey:    "env-test-key",
			configKey: "config-test-key",
			expected:  "env-test-key",
		},
		{
			name:      "from config when no env",
			envKey:    "",
			configKey: "config-test-key",
			expected:  "config-test-key",
		},
		{
			name:      "empty when neither set",
			envKey:    "",
			configKey: "",
			expected:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset viper
			viper.Reset()

			// Set up environment
			t.Setenv("OPENAI_API_KEY", tt.envKey)
			t.Setenv("GEMINI_API_KEY", tt.envKey)

			// Set up config
			if tt.configKey != "" {
				viper.Set("translation.openai_key", tt.configKey)
				viper.Set("translation.gemini_key", tt.configKey)
			}

			if got := GetOpenAIKey(); got != tt.expected {
				t.Errorf("GetOpenAIKey() = %v, want %v", got, tt.expected)
			}
			if got := GetGeminiKey(); got != tt.expected {
				t.Errorf("GetGeminiKey() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestBindFlagsToViper(t *testing.T) {
	// Save original viper state
	originalConfig := viper.New()
	*originalConfig = *viper.GetViper()
	defer func() {
		*viper.GetViper() = *originalConfig
	}()

	// Reset viper
	viper.Reset()

	cmd := &cobra.Command{}
	flags := NewFlags()
	setupFlags(cmd, flags)

	// Set some flag values
	cmd.Flags().Set("output-prefix", "out/part_")
	cmd.Flags().Set("parts", "5")
	cmd.Flags().Set("provider", "gemini")

	bindFlagsToViper(cmd)

	// Test that values are bound
	if viper.GetString("output.prefix") != "out/part_" {
		t.Errorf("Expected output.prefix to be out/part_, got %s", viper.GetString("output.prefix"))
	}

	if viper.GetInt("parts.total") != 5 {
		t.Errorf("Expected parts.total to be 5, got %d", viper.GetInt("parts.total"))
	}

	if viper.GetString("translation.provider") != "gemini" {
		t.Errorf("Expected translation.provider to be gemini, got %s", viper.GetString("translation.provider"))
	}
}

func TestApplyConfig(t *testing.T) {
	// Save original viper state
	originalConfig := viper.New()
	*originalConfig = *viper.GetViper()
	defer func() {
		*viper.GetViper() = *originalConfig
	}()

	viper.Reset()

	cmd := &cobra.Command{}
	flags := NewFlags()
	setupFlags(cmd, flags)

	// Config supplies an unset flag, the command line wins for a set one
	viper.Set("translation.cache_db", "/tmp/cache.db")
	cmd.Flags().Set("start-part", "2")

	ApplyConfig(flags)

	if flags.CacheDB != "/tmp/cache.db" {
		t.Errorf("CacheDB = %q, want /tmp/cache.db", flags.CacheDB)
	}
	if flags.StartPart != 2 {
		t.Errorf("StartPart = %d, want 2", flags.StartPart)
	}
	if flags.NumParts != 20 {
		t.Errorf("NumParts = %d, want default 20", flags.NumParts)
	}
	if flags.InputFile != "india_training_merged_filtered.json" {
		t.Errorf("InputFile = %q", flags.InputFile)
	}
}

func TestDetectorThresholds(t *testing.T) {
	// Save original viper state
	originalConfig := viper.New()
	*originalConfig = *viper.GetViper()
	defer func() {
		*viper.GetViper() = *originalConfig
	}()

	viper.Reset()
	if got := DetectorThresholds(); got != langdetect.DefaultThresholds() {
		t.Errorf("Expected default thresholds, got %+v", got)
	}

	viper.Set("detection.english", 0.95)
	viper.Set("detection.fallback", 0.6)
	got := DetectorThresholds()
	if got.English != 0.95 || got.Fallback != 0.6 {
		t.Errorf("Overrides not applied: %+v", got)
	}
	if got.Accept != 0.5 || got.ASCIIHindi != 0.7 {
		t.Errorf("Unset thresholds should keep defaults: %+v", got)
	}
}
