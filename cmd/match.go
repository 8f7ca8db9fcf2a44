package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alphadata/cvmatch/internal/hiring"
	"github.com/alphadata/cvmatch/internal/progress"
	"github.com/alphadata/cvmatch/internal/results"
	"github.com/alphadata/cvmatch/internal/selection"
	"github.com/alphadata/cvmatch/internal/utils"

	"github.com/dustin/go-humanize"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	PromptBack            = "back"
	PromptStartMatch      = "Start matching"
	PromptToggleSelectAll = "Select all / Deselect all"
	PromptSearchCVs       = "Search CVs"
	PromptFilterCategory  = "Filter by category"
	PromptDumpResults     = "Dump results to file"

	msgSelectJD  = "Please select a Job Description"
	msgSelectCVs = "Please select at least one CV to match"

	// Pause after the progress display snaps to complete, before results.
	completionPause = 500 * time.Millisecond
)

var errExit = errors.New("exit requested")

// Model identifiers accepted by the backend.
var models = []string{
	"gpt-4.1-mini-2025-04-14",
	"gpt-4o-mini",
	"gpt-4o",
	"gpt-4-turbo",
	"gpt-3.5-turbo",
	"ollama",
}

const defaultModel = "gpt-4o-mini"

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match selected CVs against a job description using AI",
	Run: func(cmd *cobra.Command, _ []string) {
		runMatch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringP("model", "m", "", "model identifier to use for matching")
	matchCmd.Flags().Bool("all", false, "match all CVs known to the backend instead of picking a subset")
}

func runMatch(cmd *cobra.Command) {
	ctx := context.Background()
	logger, config, client := bootstrap(ctx)
	prefs := loadSettings(logger)

	jds, err := client.GetDocuments(hiring.FileTypeJD, "")
	if err != nil {
		logger.Fatal("loading job descriptions", zap.Error(err))
	}
	cvs, err := client.GetDocuments(hiring.FileTypeCV, "")
	if err != nil {
		logger.Fatal("loading cvs", zap.Error(err))
	}

	if jds.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no job descriptions uploaded yet"))
		return
	}
	if cvs.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no CVs uploaded yet"))
		return
	}

	jd, err := chooseJD(jds)
	if err != nil {
		logger.Fatal("exiting", zap.Error(err))
	}

	model := config.Match.Model
	if flag := cmd.Flag("model").Value.String(); flag != "" {
		model = flag
	}
	model, err = chooseModel(model)
	if err != nil {
		logger.Fatal("exiting", zap.Error(err))
	}

	var cvIDs []int
	names := cvs.Names()
	if cmd.Flag("all").Value.String() != "true" {
		set, err := chooseCVs(cvs)
		if err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
		// The request may only carry CVs the client knows about.
		set.Restrict(cvs.IDs())
		cvIDs = set.IDs()
		names = namesForIDs(cvs, cvIDs)
	}

	// Both preconditions are enforced by the prompts above; check them
	// anyway so no request can ever leave without a JD and at least one CV.
	if jd == nil {
		fmt.Println(msgSelectJD)
		return
	}
	if cvIDs != nil && len(cvIDs) == 0 {
		fmt.Println(msgSelectCVs)
		return
	}

	report := runMatchRequest(ctx, logger, config, client, jd.ID, cvIDs, names, model)
	if report == nil {
		return
	}

	browseResults(report, prefs.Dark(), logger)
}

func chooseJD(jds *hiring.Documents) (*hiring.Document, error) {
	items := make([]string, 0, jds.Len())
	for _, jd := range jds.Items {
		items = append(items, fmt.Sprintf("%s (%s)", jd.Filename, jd.Category))
	}

	prompt := promptui.Select{
		Label: "Select a Job Description",
		Items: items,
		Size:  10,
	}

	idx, _, err := prompt.Run()
	if err != nil {
		return nil, err
	}

	return jds.Items[idx], nil
}

func chooseModel(preferred string) (string, error) {
	pos := 0
	for i, m := range models {
		if m == preferred {
			pos = i
		}
	}

	prompt := promptui.Select{
		Label:     "AI model",
		Items:     models,
		CursorPos: pos,
	}

	_, model, err := prompt.Run()
	if err != nil {
		return "", err
	}

	return model, nil
}

// chooseCVs runs the selection loop: toggle individual CVs, select all over
// the currently visible set, narrow by search or category. It returns a
// non-empty selection or errExit.
func chooseCVs(cvs *hiring.Documents) (*selection.Set, error) {
	set := selection.New()
	search := ""
	category := "all"

	for {
		visible := cvs.FilterByCategory(category).FilterByName(search)

		items := make([]string, 0, visible.Len()+5)
		for _, cv := range visible.Items {
			marker := "[ ]"
			if set.Has(cv.ID) {
				marker = "[x]"
			}
			items = append(items, fmt.Sprintf("%s %s (%s, %s)",
				marker, cv.Filename, cv.Category, humanize.IBytes(uint64(cv.FileSize))))
		}
		items = append(items, PromptToggleSelectAll, PromptSearchCVs, PromptFilterCategory, PromptStartMatch, PromptBack)

		label := fmt.Sprintf("Select CVs to match (%d selected)", set.Count())
		if visible.Len() == 0 {
			label = "No CVs match your search criteria"
		}

		prompt := promptui.Select{Label: label, Items: items, Size: 15}
		idx, chosen, err := prompt.Run()
		if err != nil {
			return nil, err
		}

		switch chosen {
		case PromptToggleSelectAll:
			// Select-all covers exactly the visible set, never CVs hidden
			// by the active filters.
			set.ToggleAll(visible.IDs())
		case PromptSearchCVs:
			input := promptui.Prompt{Label: "Search CVs (empty clears)", Default: search, AllowEdit: true}
			text, err := input.Run()
			if err != nil {
				return nil, err
			}
			search = text
		case PromptFilterCategory:
			cats := append([]string{"all"}, cvs.CategoryNames()...)
			catPrompt := promptui.Select{Label: "Category", Items: cats, Size: 12}
			_, picked, err := catPrompt.Run()
			if err != nil {
				return nil, err
			}
			category = picked
		case PromptStartMatch:
			if set.Count() == 0 {
				fmt.Println(msgSelectCVs)
				continue
			}
			return set, nil
		case PromptBack:
			return nil, errExit
		default:
			set.Toggle(visible.Items[idx].ID)
		}
	}
}

func namesForIDs(cvs *hiring.Documents, ids []int) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if doc := cvs.FindByID(id); doc != nil {
			names = append(names, doc.Filename)
		}
	}
	return names
}

// runMatchRequest performs the real match call with the cosmetic progress
// display running alongside it. The progress ticker is torn down the instant
// the request settles, success or failure. Returns nil after surfacing an
// error; the caller is back in a clean state and may submit again.
func runMatchRequest(ctx context.Context, logger *zap.Logger, config *Config, client *hiring.Client, jdID int, cvIDs []int, names []string, model string) *hiring.MatchReport {
	logger.Info("starting the match",
		zap.Int("jd_id", jdID),
		zap.Int("cv_count", len(names)),
		zap.String("model", model),
	)

	sim := progress.New(names, printProgress)
	if config.Match.ProgressIntervalMS > 0 {
		sim.SetInterval(time.Duration(config.Match.ProgressIntervalMS) * time.Millisecond)
	}
	sim.Start()

	report, err := client.MatchCVsToJD(jdID, cvIDs, model)
	if err != nil {
		sim.Stop()
		fmt.Println()
		logger.Error("failed to match CVs - check your API connection", zap.Error(err))
		return nil
	}

	final := sim.Finish()
	printProgress(final)
	fmt.Println()

	for _, result := range report.Results {
		logger.Debug("match result",
			zap.String("cv_name", result.CVName),
			zap.Int("score", result.Score),
			zap.String("summary", utils.TruncateForLog(result.Summary, 120)),
		)
	}

	// Let completion sit on screen briefly before the results replace it.
	_ = utils.WaitFor(ctx, completionPause)

	return report
}

func printProgress(snap progress.Snapshot) {
	line := fmt.Sprintf("%d of %d CVs analyzed (%d%%) %s", snap.Processed, snap.Total, snap.Percent(), snap.Stage)
	if snap.CurrentCV != "" {
		line += fmt.Sprintf(" [%s]", snap.CurrentCV)
	}
	fmt.Printf("\r%-100s", line)
}

// browseResults is the interactive results view: ranked rows, one row
// expandable at a time with toggle semantics.
func browseResults(report *hiring.MatchReport, colored bool, logger *zap.Logger) {
	renderer := &results.Renderer{Colored: colored}
	expanded := 0

	for {
		fmt.Println(renderer.Report(report, expanded))

		items := make([]string, 0, report.Len()+2)
		for i, result := range report.Results {
			verb := "Expand"
			if result.CVID == expanded {
				verb = "Collapse"
			}
			items = append(items, fmt.Sprintf("%s #%d %s", verb, i+1, result.CVName))
		}
		items = append(items, PromptDumpResults, PromptBack)

		prompt := promptui.Select{Label: "Results", Items: items, Size: 12}
		idx, chosen, err := prompt.Run()
		if err != nil {
			logger.Debug("leaving results view", zap.Error(err))
			return
		}

		switch chosen {
		case PromptBack:
			return
		case PromptDumpResults:
			filename, err := report.DumpToTmpFile()
			if err != nil {
				logger.Error("failed to dump results", zap.Error(err))
				continue
			}
			logger.Info("dumped results to file", zap.String("filename", filename))
		default:
			picked := report.Results[idx].CVID
			if picked == expanded {
				expanded = 0
			} else {
				expanded = picked
			}
		}
	}
}
