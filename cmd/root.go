package cmd

import (
	"errors"
	"fmt"
	"log"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "jobassist"
)

type Config struct {
	Perplexity   *ProviderConfig `mapstructure:"perplexity"`
	Gemini       *ProviderConfig `mapstructure:"gemini"`
	MaxLogLength int             `mapstructure:"max-log-length"`
	NoSpinner    bool            `mapstructure:"no-spinner"`
}

type ProviderConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
	BaseURL    string `mapstructure:"base-url"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "jobassist adapts a résumé to a job offer with LLM providers",
		Long: `jobassist adapts a résumé to a job offer with LLM providers.

Without --cv and --job-offer it asks for everything interactively.

  jobassist -i
  jobassist --cv CV.pdf --job-offer offer.txt
  jobassist --cv CV.pdf --job-offer offer.txt --template template.docx`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			run(cmd)
		},
	}
)

// envBindings maps config keys to their environment variables.
var envBindings = map[string]string{
	"perplexity.api-key":      "PERPLEXITY_KEY",
	"perplexity.api-key-file": "PERPLEXITY_KEY_FILE",
	"gemini.api-key":          "GEMINI_KEY",
	"gemini.api-key-file":     "GEMINI_KEY_FILE",
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	for key, env := range envBindings {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	viper.SetDefault("max-log-length", 200)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is jobassist.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	rootCmd.Flags().BoolP("interactive", "i", false, "interactive mode (default when neither --cv nor --job-offer is set)")
	rootCmd.Flags().String("cv", "", "résumé file (.pdf or .txt)")
	rootCmd.Flags().String("job-offer", "", "job offer text file")
	rootCmd.Flags().String("template", "", "Word template (.docx) with a {cv_content} placeholder")
	rootCmd.Flags().StringP("output", "o", "", "output file (default CV_Adapte.pdf, or CV_Adapte.docx with a template)")
	rootCmd.Flags().String("instructions", "", "additional instructions for the adaptation")
	rootCmd.Flags().Bool("no-spinner", false, "do not show progress spinners")

	viper.BindPFlag("no-spinner", rootCmd.Flags().Lookup("no-spinner"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The default config file is optional, an explicit or broken one is not.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	return decodeConfig(viper.AllSettings())
}

// decodeConfig decodes settings with weak typing, so string values coming
// from the environment fill bool and int fields.
func decodeConfig(settings map[string]any) (*Config, error) {
	config := &Config{}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           config,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("creating config decoder: %w", err)
	}

	if err := decoder.Decode(settings); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if config.Perplexity == nil {
		config.Perplexity = &ProviderConfig{}
	}
	if config.Gemini == nil {
		config.Gemini = &ProviderConfig{}
	}

	return config, nil
}
