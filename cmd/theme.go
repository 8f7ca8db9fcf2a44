package cmd

import (
	"fmt"
	"log"

	"github.com/alphadata/cvmatch/internal/logger"
	"github.com/alphadata/cvmatch/internal/settings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Show or toggle the display theme",
	Run: func(cmd *cobra.Command, _ []string) {
		runTheme(cmd)
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)

	themeCmd.Flags().BoolP("toggle", "t", false, "switch between light and dark")
}

func runTheme(cmd *cobra.Command) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	prefs, err := settings.Load("")
	if err != nil {
		logger.Fatal("loading settings", zap.Error(err))
	}

	if cmd.Flag("toggle").Value.String() == "true" {
		theme, err := prefs.ToggleTheme()
		if err != nil {
			logger.Fatal("saving settings", zap.Error(err))
		}
		fmt.Printf("theme set to %s\n", theme)
		return
	}

	fmt.Printf("theme: %s\n", prefs.Theme)
}
