package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/ashmnv/hh-screener/internal/logger"
	"github.com/ashmnv/hh-screener/internal/matching"
	"github.com/ashmnv/hh-screener/internal/resume"
	"github.com/ashmnv/hh-screener/internal/store"
	"github.com/ashmnv/hh-screener/internal/util"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// maxLoggedTextLength bounds debug logging of extracted document text.
const maxLoggedTextLength = 500

const (
	PromptSave          = "Save the decision"
	PromptShowBreakdown = "Show the score breakdown"
	PromptProfileToFile = "Dump extracted profile to file"
	PromptQuit          = "Quit"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "Proceed?",
	Items: []string{PromptSave, PromptShowBreakdown, PromptProfileToFile, PromptQuit},
}

var screenCmd = &cobra.Command{
	Use:   "screen <resume-file>",
	Short: "Run the full screening pipeline for one resume against a stored vacancy",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		screen(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(screenCmd)

	screenCmd.Flags().Int64P("candidate-id", "c", 0, "id of the candidate the resume belongs to")
	screenCmd.Flags().Int64P("vacancy-id", "i", 0, "id of the stored vacancy to score against")
	screenCmd.Flags().BoolP("yes", "y", false, "save the decision without asking for confirmation")

	screenCmd.MarkFlagRequired("candidate-id")
	screenCmd.MarkFlagRequired("vacancy-id")
}

// screen is the main command for the cli.
func screen(cmd *cobra.Command, path string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the hh-screener", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil || config.Store == nil || config.Store.URL == "" {
		logger.Fatal("database url is required under store.url",
			zap.String("hint", "set HH_SCREENER_DATABASE_URL environment variable or the 'store.url' key in the configuration file"),
		)
	}

	candidateID, _ := cmd.Flags().GetInt64("candidate-id")
	vacancyID, _ := cmd.Flags().GetInt64("vacancy-id")

	st, err := store.New(ctx, config.Store.URL)
	if err != nil {
		logger.Fatal("connecting to the store", zap.Error(err))
	}
	defer st.Close()

	if err := st.EnsureSchema(ctx); err != nil {
		logger.Fatal("preparing the schema", zap.Error(err))
	}

	vac, err := st.GetVacancy(ctx, vacancyID)
	if err != nil {
		logger.Fatal("loading vacancy", zap.Error(err), zap.Int64("vacancy_id", vacancyID))
	}

	logger.Info("screening against vacancy", zap.Int64("vacancy_id", vac.ID), zap.String("title", vac.Title))

	profile := extractProfile(path, config, logger)

	result := matching.Evaluate(profile, vac)

	logger.Info("evaluated candidate",
		zap.Int64("candidate_id", candidateID),
		zap.String("status", string(result.InitialStatus)),
		zap.Float64("score", result.MatchScore),
	)

	action := PromptSave
	for {
		var err error
		if cmd.Flag("yes").Value.String() == "false" {
			_, action, err = prompt.Run()
			if err != nil {
				logger.Fatal("exiting", zap.Error(err))
			}
		}

		if err := handleAction(ctx, action, st, logger, candidateID, path, profile, vac.ID, result); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(ctx context.Context, action string, st *store.Store, logger *zap.Logger, candidateID int64, path string, profile *resume.Profile, vacancyID int64, result *matching.Result) error {
	switch action {
	case PromptSave:
		return saveDecision(ctx, st, logger, candidateID, path, profile, vacancyID, result)
	case PromptShowBreakdown:
		pretty, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(pretty))
		return nil
	case PromptProfileToFile:
		filename, err := dumpProfile(profile)
		if err != nil {
			return fmt.Errorf("dump profile to file: %w", err)
		}
		logger.Info("dumping profile to file", zap.String("filename", filename))
		return nil
	case PromptQuit:
		logger.Info("exiting", zap.String("reason", "decision discarded"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// extractProfile parses the resume document. Extraction failures do not
// abort the pipeline: an empty profile still produces an application so
// the candidate lands in manual review instead of vanishing.
func extractProfile(path string, config *Config, logger *zap.Logger) *resume.Profile {
	var markers []string
	if config.Parser != nil {
		markers = config.Parser.RelevanceMarkers
	}

	text, err := resume.TextFromFile(path)
	if err != nil {
		logger.Warn("reading resume document", zap.Error(err), zap.String("file", path))
		return &resume.Profile{}
	}

	logger.Debug("extracted document text", zap.String("text", util.TruncateForLog(text, maxLoggedTextLength)))

	profile, err := resume.NewExtractor(markers).Extract(text)
	if err != nil {
		logger.Warn("extracting profile", zap.Error(err), zap.String("file", path))
		return &resume.Profile{}
	}

	return profile
}

func saveDecision(ctx context.Context, st *store.Store, logger *zap.Logger, candidateID int64, path string, profile *resume.Profile, vacancyID int64, result *matching.Result) error {
	resumeID, err := st.SaveResume(ctx, candidateID, path, profile)
	if err != nil {
		return fmt.Errorf("saving resume: %w", err)
	}

	application, created, err := st.CreateApplication(ctx, candidateID, vacancyID, resumeID, result)
	if err != nil {
		return fmt.Errorf("saving application: %w", err)
	}

	if !created {
		logger.Info("application already exists, keeping the stored decision",
			zap.Int64("application_id", application.ID),
			zap.String("status", string(application.InitialStatus)),
		)
		return errExit
	}

	logger.Info("saved application",
		zap.Int64("application_id", application.ID),
		zap.Int64("resume_id", resumeID),
		zap.String("status", string(application.InitialStatus)),
		zap.Float64("score", application.MatchScore),
	)
	return errExit
}

func dumpProfile(profile *resume.Profile) (string, error) {
	pretty, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return "", err
	}

	f, err := os.CreateTemp("", app+"-profile-*.json")
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := f.Write(pretty); err != nil {
		return "", err
	}

	return f.Name(), nil
}
