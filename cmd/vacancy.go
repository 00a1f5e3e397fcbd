package cmd

import (
	"context"
	"log"

	"github.com/ashmnv/hh-screener/internal/logger"
	"github.com/ashmnv/hh-screener/internal/store"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var vacancyCmd = &cobra.Command{
	Use:   "add-vacancy <file>",
	Short: "Store a vacancy described by a json file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		addVacancy(args[0])
	},
}

func init() {
	rootCmd.AddCommand(vacancyCmd)
}

func addVacancy(path string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if config == nil || config.Store == nil || config.Store.URL == "" {
		logger.Fatal("database url is required under store.url",
			zap.String("hint", "set HH_SCREENER_DATABASE_URL environment variable or the 'store.url' key in the configuration file"),
		)
	}

	vac, err := loadVacancy(path)
	if err != nil {
		logger.Fatal("loading vacancy", zap.Error(err), zap.String("file", path))
	}

	st, err := store.New(ctx, config.Store.URL)
	if err != nil {
		logger.Fatal("connecting to the store", zap.Error(err))
	}
	defer st.Close()

	if err := st.EnsureSchema(ctx); err != nil {
		logger.Fatal("preparing the schema", zap.Error(err))
	}

	id, err := st.CreateVacancy(ctx, vac)
	if err != nil {
		logger.Fatal("storing vacancy", zap.Error(err))
	}

	logger.Info("stored vacancy", zap.Int64("vacancy_id", id), zap.String("title", vac.Title))
}
