package cmd

import (
	"context"
	"fmt"

	"github.com/alphadata/cvmatch/internal/results"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent match history",
	Run: func(cmd *cobra.Command, _ []string) {
		runHistory(cmd)
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntP("limit", "n", 10, "number of history entries to fetch")
}

func runHistory(cmd *cobra.Command) {
	ctx := context.Background()
	logger, _, client := bootstrap(ctx)
	prefs := loadSettings(logger)

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		logger.Fatal("reading flags", zap.Error(err))
	}

	history, err := client.GetMatchHistory(limit)
	if err != nil {
		logger.Fatal("getting match history", zap.Error(err))
	}

	if len(history.Matches) == 0 {
		logger.Info("exiting", zap.String("reason", "no match history yet"))
		return
	}

	renderer := &results.Renderer{Colored: prefs.Dark()}

	for {
		items := make([]string, 0, len(history.Matches)+1)
		for _, entry := range history.Matches {
			level := results.LevelFor(entry.Score)
			items = append(items, fmt.Sprintf("%s %s vs %s (%d/100) %s",
				level.Icon(), entry.CVName, entry.JDName, entry.Score, entry.MatchDate))
		}
		items = append(items, PromptBack)

		prompt := promptui.Select{Label: "Match history", Items: items, Size: 12}
		idx, chosen, err := prompt.Run()
		if err != nil || chosen == PromptBack {
			return
		}

		details, err := client.GetMatchDetails(history.Matches[idx].ID)
		if err != nil {
			logger.Error("failed to load match details", zap.Error(err))
			continue
		}
		result, err := details.Result()
		if err != nil {
			logger.Error("failed to decode match details", zap.Error(err))
			continue
		}

		fmt.Printf("\n%s vs %s (%s)\n", details.CVName, details.JDName, details.MatchDate)
		fmt.Println(renderer.Row(1, result))
		fmt.Println(renderer.Details(result))
	}
}
