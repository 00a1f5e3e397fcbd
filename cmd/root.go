package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "hh-screener"
)

type Config struct {
	Store  *StoreConfig  `mapstructure:"store"`
	Parser *ParserConfig `mapstructure:"parser"`
}

type StoreConfig struct {
	URL string `mapstructure:"url"`
}

type ParserConfig struct {
	// Section headers that mark the start of relevant experience when
	// summing relevant months.
	RelevanceMarkers []string `mapstructure:"relevance-markers"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "hh-screener is a cli for parsing resumes and scoring them against vacancies",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("store.url", "HH_SCREENER_DATABASE_URL"); err != nil {
		log.Fatalf("binding HH_SCREENER_DATABASE_URL environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is hh-screener.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for commands that touch the store. If there is no config, we can skip initialization
	if screenCmd.CalledAs() == "" && applicationsCmd.CalledAs() == "" && vacancyCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
