package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/ashmnv/hh-screener/internal/logger"
	"github.com/ashmnv/hh-screener/internal/matching"
	"github.com/ashmnv/hh-screener/internal/resume"
	"github.com/ashmnv/hh-screener/internal/vacancy"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score a parsed profile against a vacancy",
	Run: func(cmd *cobra.Command, _ []string) {
		match(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringP("resume", "r", "", "json file with a parsed profile (output of the parse command)")
	matchCmd.Flags().StringP("vacancy", "v", "", "json file with the vacancy requirements")

	matchCmd.MarkFlagRequired("resume")
	matchCmd.MarkFlagRequired("vacancy")
}

func match(cmd *cobra.Command) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	resumeFile, _ := cmd.Flags().GetString("resume")
	vacancyFile, _ := cmd.Flags().GetString("vacancy")

	profile, err := loadProfile(resumeFile)
	if err != nil {
		logger.Fatal("loading profile", zap.Error(err), zap.String("file", resumeFile))
	}

	vac, err := loadVacancy(vacancyFile)
	if err != nil {
		logger.Fatal("loading vacancy", zap.Error(err), zap.String("file", vacancyFile))
	}

	result := matching.Evaluate(profile, vac)

	logger.Debug("evaluated candidate",
		zap.String("status", string(result.InitialStatus)),
		zap.Float64("score", result.MatchScore),
	)

	pretty, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.Fatal("encoding result", zap.Error(err))
	}

	fmt.Println(string(pretty))
}

func loadProfile(path string) (*resume.Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var profile resume.Profile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}

	return &profile, nil
}

func loadVacancy(path string) (*vacancy.Vacancy, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var v vacancy.Vacancy
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decode vacancy: %w", err)
	}

	if err := v.Validate(); err != nil {
		return nil, err
	}

	return &v, nil
}
