package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/ashmnv/hh-screener/internal/logger"
	"github.com/ashmnv/hh-screener/internal/resume"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Extract a structured profile from a resume document",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		parse(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringSliceP("relevance-marker", "m", nil, "section header that starts relevant experience (can be repeated)")
}

func parse(cmd *cobra.Command, path string) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	markers, _ := cmd.Flags().GetStringSlice("relevance-marker")

	text, err := resume.TextFromFile(path)
	if err != nil {
		logger.Error("reading resume document", zap.Error(err), zap.String("file", path))
		printJSONError(err)
		os.Exit(1)
	}

	profile, err := resume.NewExtractor(markers).Extract(text)
	if err != nil {
		logger.Error("extracting profile", zap.Error(err), zap.String("file", path))
		printJSONError(err)
		os.Exit(1)
	}

	pretty, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		logger.Fatal("encoding profile", zap.Error(err))
	}

	fmt.Println(string(pretty))
}

// printJSONError keeps stdout machine-readable even on failure, so
// callers piping the output always get valid json.
func printJSONError(err error) {
	out, _ := json.Marshal(map[string]string{"error": err.Error()})
	fmt.Println(string(out))
}
