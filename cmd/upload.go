package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/alphadata/cvmatch/internal/hiring"
	"github.com/alphadata/cvmatch/internal/staging"
	"github.com/alphadata/cvmatch/internal/utils"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	PromptAddCVs     = "Add CV files"
	PromptRemoveCV   = "Remove a staged CV"
	PromptSetJD      = "Set JD file"
	PromptClearJD    = "Clear JD file"
	PromptUploadCVs  = "Upload staged CVs"
	PromptUploadJD   = "Upload JD"
	PromptUploadBoth = "Upload CVs and JD together"
	PromptQuickMatch = "Quick match uploaded CVs against the new JD"
	PromptDone       = "Done"

	// How many per-file results to print before collapsing the rest.
	uploadResultPreview = 3
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Stage and upload CVs and job descriptions",
	Run: func(cmd *cobra.Command, _ []string) {
		runUpload(cmd)
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)

	uploadCmd.Flags().StringArray("cv", nil, "CV file to stage, repeatable")
	uploadCmd.Flags().String("jd", "", "job description file to stage")
	uploadCmd.Flags().Bool("quick-match", false, "match all uploaded CVs against the new JD once both uploads succeed")
}

func runUpload(cmd *cobra.Command) {
	ctx := context.Background()
	logger, config, client := bootstrap(ctx)

	cvZone := &staging.CVZone{}
	jdZone := &staging.JDZone{}
	session := &staging.Session{}
	delay := time.Duration(config.Upload.DisplayDelaySeconds) * time.Second

	cvFiles, err := cmd.Flags().GetStringArray("cv")
	if err != nil {
		logger.Fatal("reading flags", zap.Error(err))
	}
	jdFile := cmd.Flag("jd").Value.String()
	quickMatch := cmd.Flag("quick-match").Value.String() == "true"

	if len(cvFiles) > 0 || jdFile != "" {
		runUploadOneShot(ctx, logger, config, client, cvZone, jdZone, session, cvFiles, jdFile, quickMatch)
		return
	}

	runUploadInteractive(ctx, logger, config, client, cvZone, jdZone, session, delay)
}

// runUploadOneShot stages the files given on the command line and submits
// them without prompting. The two zones submit concurrently.
func runUploadOneShot(ctx context.Context, logger *zap.Logger, config *Config, client *hiring.Client,
	cvZone *staging.CVZone, jdZone *staging.JDZone, session *staging.Session,
	cvFiles []string, jdFile string, quickMatch bool) {
	if len(cvFiles) > 0 {
		if err := cvZone.Add(cvFiles...); err != nil {
			logger.Fatal("staging CV files", zap.Error(err))
		}
	}
	if jdFile != "" {
		if err := jdZone.Set(jdFile); err != nil {
			logger.Fatal("staging JD file", zap.Error(err))
		}
	}

	var wg sync.WaitGroup
	if cvZone.Len() > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			submitCVs(ctx, logger, client, cvZone, session, 0)
		}()
	}
	if jdZone.File() != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			submitJD(ctx, logger, client, jdZone, session, 0)
		}()
	}
	wg.Wait()

	if quickMatch {
		if !session.QuickMatchReady() {
			logger.Error("quick match needs both a successful CV upload and a successful JD upload")
			return
		}
		quickMatchRun(ctx, logger, config, client, session)
	}
}

func runUploadInteractive(ctx context.Context, logger *zap.Logger, config *Config, client *hiring.Client,
	cvZone *staging.CVZone, jdZone *staging.JDZone, session *staging.Session, delay time.Duration) {
	fmt.Printf("Accepted file types: %s\n", strings.Join(staging.AcceptedExtensions(), ", "))

	for {
		items := []string{PromptAddCVs}
		if cvZone.Len() > 0 {
			items = append(items, PromptRemoveCV, PromptUploadCVs)
		}
		items = append(items, PromptSetJD)
		if jdZone.File() != "" {
			items = append(items, PromptClearJD, PromptUploadJD)
		}
		if cvZone.Len() > 0 && jdZone.File() != "" {
			items = append(items, PromptUploadBoth)
		}
		if session.QuickMatchReady() {
			items = append(items, PromptQuickMatch)
		}
		items = append(items, PromptDone)

		label := fmt.Sprintf("Upload (%d CVs staged, JD: %s)", cvZone.Len(), jdLabel(jdZone))
		prompt := promptui.Select{Label: label, Items: items, Size: 10}
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		switch action {
		case PromptAddCVs:
			input := promptui.Prompt{Label: "CV file paths (patterns allowed, space separated)"}
			text, err := input.Run()
			if err != nil {
				continue
			}
			paths, err := expandPaths(text)
			if err != nil {
				fmt.Println(err)
				continue
			}
			if err := cvZone.Add(paths...); err != nil {
				fmt.Println(err)
			}
		case PromptRemoveCV:
			files := cvZone.Files()
			filePrompt := promptui.Select{Label: "Remove which file?", Items: append(files, PromptBack), Size: 10}
			idx, chosen, err := filePrompt.Run()
			if err != nil || chosen == PromptBack {
				continue
			}
			if err := cvZone.Remove(idx); err != nil {
				fmt.Println(err)
			}
		case PromptSetJD:
			input := promptui.Prompt{Label: "JD file path"}
			text, err := input.Run()
			if err != nil {
				continue
			}
			if err := jdZone.Set(strings.TrimSpace(text)); err != nil {
				fmt.Println(err)
			}
		case PromptClearJD:
			jdZone.Clear()
		case PromptUploadCVs:
			submitCVs(ctx, logger, client, cvZone, session, delay)
		case PromptUploadJD:
			submitJD(ctx, logger, client, jdZone, session, delay)
		case PromptUploadBoth:
			var wg sync.WaitGroup
			wg.Add(2)
			go func() {
				defer wg.Done()
				submitCVs(ctx, logger, client, cvZone, session, delay)
			}()
			go func() {
				defer wg.Done()
				submitJD(ctx, logger, client, jdZone, session, delay)
			}()
			wg.Wait()
		case PromptQuickMatch:
			quickMatchRun(ctx, logger, config, client, session)
		case PromptDone:
			return
		}
	}
}

// submitCVs uploads the staged batch. On transport failure the staged files
// are kept so the user can retry manually; on success the outcome stays on
// screen for displayDelay before the zone resets for the next batch.
func submitCVs(ctx context.Context, logger *zap.Logger, client *hiring.Client,
	zone *staging.CVZone, session *staging.Session, displayDelay time.Duration) {
	if err := zone.Begin(); err != nil {
		fmt.Println(err)
		return
	}
	defer zone.Finish()

	report, err := client.UploadCVs(zone.Files())
	if err != nil {
		logger.Error("failed to upload CVs", zap.Error(err))
		return
	}

	session.RecordCVUpload()
	fmt.Printf("\n%d CVs Uploaded\n", report.Uploaded)
	if report.Failed > 0 {
		fmt.Printf("%d Failed\n", report.Failed)
		for _, uploadErr := range report.Errors {
			fmt.Printf("  %s: %s\n", uploadErr.Filename, uploadErr.Error)
		}
	}
	for i, result := range report.Results {
		if i == uploadResultPreview {
			fmt.Printf("  +%d more\n", len(report.Results)-uploadResultPreview)
			break
		}
		fmt.Printf("  %s -> %s\n", result.Filename, result.Category)
	}

	if err := utils.WaitFor(ctx, displayDelay); err != nil {
		return
	}
	zone.Clear()
}

func submitJD(ctx context.Context, logger *zap.Logger, client *hiring.Client,
	zone *staging.JDZone, session *staging.Session, displayDelay time.Duration) {
	if err := zone.Begin(); err != nil {
		fmt.Println(err)
		return
	}
	defer zone.Finish()

	result, err := client.UploadJD(zone.File())
	if err != nil {
		logger.Error("failed to upload the JD", zap.Error(err))
		return
	}

	session.RecordJDUpload(result.ID)
	fmt.Printf("\n1 JD Uploaded\n  %s -> %s\n", result.Filename, result.Category)

	if err := utils.WaitFor(ctx, displayDelay); err != nil {
		return
	}
	zone.Clear()
}

// quickMatchRun matches the freshly uploaded JD against every CV the backend
// holds. A nil CV list means all associated CVs server-side.
func quickMatchRun(ctx context.Context, logger *zap.Logger, config *Config, client *hiring.Client, session *staging.Session) {
	cvs, err := client.GetDocuments(hiring.FileTypeCV, "")
	if err != nil {
		logger.Error("failed to load CVs for quick match", zap.Error(err))
		return
	}
	jd, err := client.GetDocument(session.LastJDID())
	if err != nil {
		logger.Error("failed to load the uploaded JD", zap.Error(err))
		return
	}

	report := runMatchRequest(ctx, logger, config, client, jd.ID, nil, cvs.Names(), config.Match.Model)
	if report == nil {
		return
	}

	prefs := loadSettings(logger)
	browseResults(report, prefs.Dark(), logger)
}

func expandPaths(text string) ([]string, error) {
	var paths []string
	for _, pattern := range strings.Fields(text) {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", pattern)
		}
		paths = append(paths, matches...)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no files given")
	}
	return paths, nil
}

func jdLabel(zone *staging.JDZone) string {
	if file := zone.File(); file != "" {
		return filepath.Base(file)
	}
	return "none"
}
