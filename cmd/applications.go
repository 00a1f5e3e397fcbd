package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/ashmnv/hh-screener/internal/logger"
	"github.com/ashmnv/hh-screener/internal/matching"
	"github.com/ashmnv/hh-screener/internal/store"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const PromptBack = "back"

var applicationsCmd = &cobra.Command{
	Use:   "applications",
	Short: "List stored applications for a vacancy and review their statuses",
	Run: func(cmd *cobra.Command, _ []string) {
		applications(cmd)
	},
}

func init() {
	rootCmd.AddCommand(applicationsCmd)

	applicationsCmd.Flags().Int64P("vacancy-id", "i", 0, "id of the vacancy")
	applicationsCmd.Flags().StringP("status", "s", "", "only show applications with this status")
	applicationsCmd.Flags().Bool("review", false, "interactively change application statuses")

	applicationsCmd.MarkFlagRequired("vacancy-id")
}

func applications(cmd *cobra.Command) {
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

	vacancyID, _ := cmd.Flags().GetInt64("vacancy-id")
	status, _ := cmd.Flags().GetString("status")
	review, _ := cmd.Flags().GetBool("review")

	st, err := store.New(ctx, config.Store.URL)
	if err != nil {
		logger.Fatal("connecting to the store", zap.Error(err))
	}
	defer st.Close()

	apps, err := st.ApplicationsForVacancy(ctx, vacancyID, matching.Status(status))
	if err != nil {
		logger.Fatal("listing applications", zap.Error(err), zap.Int64("vacancy_id", vacancyID))
	}

	logger.Info("current list of applications", zap.Int("count", len(apps)))

	if !review {
		pretty, _ := json.MarshalIndent(apps, "", "  ")
		fmt.Println(string(pretty))
		return
	}

	if err := reviewApplications(ctx, st, logger, apps); err != nil {
		logger.Fatal("exiting", zap.Error(err))
	}
}

func reviewApplications(ctx context.Context, st *store.Store, logger *zap.Logger, apps []store.Application) error {
	for {
		items := make([]string, 0)
		for _, a := range apps {
			items = append(items, fmt.Sprintf("%d candidate=%d score=%.2f / %s", a.ID, a.CandidateID, a.MatchScore, a.InitialStatus))
		}

		appPrompt := promptui.Select{
			Label: "Choose an application and press ENTER",
			Items: append(items, PromptBack),
		}

		idx, selected, err := appPrompt.Run()
		if err != nil {
			return err
		}

		if selected == PromptBack {
			return nil
		}

		statusPrompt := promptui.Select{
			Label: "New status",
			Items: []string{
				string(matching.StatusAdvanceToReview),
				string(matching.StatusReject),
				string(matching.StatusNeedsManualReview),
				PromptBack,
			},
		}

		_, newStatus, err := statusPrompt.Run()
		if err != nil {
			return err
		}

		if newStatus == PromptBack {
			continue
		}

		if err := st.UpdateApplicationStatus(ctx, apps[idx].ID, matching.Status(newStatus)); err != nil {
			return err
		}

		apps[idx].InitialStatus = matching.Status(newStatus)
		logger.Info("updated application status",
			zap.Int64("application_id", apps[idx].ID),
			zap.String("status", newStatus),
		)
	}
}
