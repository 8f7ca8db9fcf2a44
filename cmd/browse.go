package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alphadata/cvmatch/internal/hiring"
	"github.com/alphadata/cvmatch/internal/preview"

	"github.com/dustin/go-humanize"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	PromptSearchDocuments = "Search by filename"
	PromptFilterType      = "Filter by type"
	PromptViewDocument    = "View a document"
	PromptDeleteDocument  = "Delete a document"
	PromptRefresh         = "Refresh"
	PromptYes             = "Yes"
	PromptNo              = "No"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the document database",
	Run: func(cmd *cobra.Command, _ []string) {
		runBrowse(cmd)
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(_ *cobra.Command) {
	ctx := context.Background()
	logger, _, client := bootstrap(ctx)

	typeFilter := ""     // empty means both types
	categoryFilter := "" // empty means every category
	search := ""

	var docs *hiring.Documents
	var cats *hiring.Categories
	needsFetch := true

	for {
		if needsFetch {
			var err error
			docs, err = client.GetDocuments(typeFilter, categoryFilter)
			if err != nil {
				logger.Error("failed to load documents", zap.Error(err))
				return
			}
			cats, err = client.GetCategories()
			if err != nil {
				logger.Error("failed to load categories", zap.Error(err))
				return
			}
			needsFetch = false
		}

		// Search narrows the fetched set in memory, no round trip.
		visible := docs.FilterByName(search)
		printDocuments(visible, cats, search)

		prompt := promptui.Select{
			Label: "Database",
			Items: []string{
				PromptSearchDocuments, PromptFilterType, PromptFilterCategory,
				PromptViewDocument, PromptDeleteDocument, PromptRefresh, PromptBack,
			},
			Size: 8,
		}
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		switch action {
		case PromptSearchDocuments:
			input := promptui.Prompt{Label: "Search (empty clears)", Default: search, AllowEdit: true}
			text, err := input.Run()
			if err != nil {
				continue
			}
			search = text
		case PromptFilterType:
			typePrompt := promptui.Select{Label: "Type", Items: []string{"all", hiring.FileTypeCV, hiring.FileTypeJD}}
			_, picked, err := typePrompt.Run()
			if err != nil {
				continue
			}
			if picked == "all" {
				picked = ""
			}
			if picked != typeFilter {
				typeFilter = picked
				needsFetch = true
			}
		case PromptFilterCategory:
			allLabel := fmt.Sprintf("All Categories (%d)", cats.Sum())
			items := append([]string{allLabel}, categoryItems(cats)...)
			catPrompt := promptui.Select{Label: "Category", Items: items, Size: 12}
			idx, _, err := catPrompt.Run()
			if err != nil {
				continue
			}
			picked := ""
			if idx > 0 {
				picked = cats.Items[idx-1].Name
			}
			if picked != categoryFilter {
				categoryFilter = picked
				needsFetch = true
			}
		case PromptViewDocument:
			doc := chooseDocument(visible, "View which document?")
			if doc == nil {
				continue
			}
			viewDocument(client, logger, doc)
		case PromptDeleteDocument:
			doc := chooseDocument(visible, "Delete which document?")
			if doc == nil {
				continue
			}
			if deleteDocument(client, logger, doc) {
				needsFetch = true
			}
		case PromptRefresh:
			needsFetch = true
		case PromptBack:
			return
		}
	}
}

func printDocuments(docs *hiring.Documents, cats *hiring.Categories, search string) {
	fmt.Printf("\nCategories (%d documents total):\n", cats.Sum())
	for _, cat := range cats.Items {
		fmt.Printf("  %s: %d (%d CVs, %d JDs)\n", cat.Name, cat.Total, cat.CVCount, cat.JDCount)
	}

	if docs.Len() == 0 {
		if search != "" {
			fmt.Printf("\nNo documents found for %q\n", search)
		} else {
			fmt.Println("\nNo documents found. Upload some CVs or JDs to get started")
		}
		return
	}

	groups := docs.GroupByCategory()
	for _, category := range docs.CategoryNames() {
		members := groups[category]
		fmt.Printf("\n%s (%d)\n", category, len(members))
		for _, doc := range members {
			fmt.Printf("  [%s] %s, %s, %s\n",
				strings.ToUpper(doc.FileType), doc.Filename,
				humanize.IBytes(uint64(doc.FileSize)), doc.UploadDate)
		}
	}
}

func categoryItems(cats *hiring.Categories) []string {
	items := make([]string, 0, len(cats.Items))
	for _, cat := range cats.Items {
		items = append(items, fmt.Sprintf("%s (%d)", cat.Name, cat.Total))
	}
	return items
}

func chooseDocument(docs *hiring.Documents, label string) *hiring.Document {
	if docs.Len() == 0 {
		fmt.Println("No documents to choose from")
		return nil
	}

	items := make([]string, 0, docs.Len()+1)
	for _, doc := range docs.Items {
		items = append(items, fmt.Sprintf("%s (%s, %s)", doc.Filename, doc.FileType, doc.Category))
	}
	items = append(items, PromptBack)

	prompt := promptui.Select{Label: label, Items: items, Size: 15}
	idx, chosen, err := prompt.Run()
	if err != nil || chosen == PromptBack {
		return nil
	}
	return docs.Items[idx]
}

// viewDocument describes how the file can be previewed and offers a local
// download.
func viewDocument(client *hiring.Client, logger *zap.Logger, doc *hiring.Document) {
	url := client.ViewDocumentURL(doc.ID)
	fmt.Println(preview.Describe(doc.Filename, url))

	confirm := promptui.Select{Label: "Download a local copy?", Items: []string{PromptNo, PromptYes}}
	_, answer, err := confirm.Run()
	if err != nil || answer != PromptYes {
		return
	}

	dest := doc.Filename
	if err := client.Download(doc.ID, dest); err != nil {
		logger.Error("failed to download the document", zap.Error(err))
		return
	}
	logger.Info("downloaded the document", zap.String("filename", dest))
}

// deleteDocument asks for confirmation before the destructive call and
// reports whether the listing needs a reload.
func deleteDocument(client *hiring.Client, logger *zap.Logger, doc *hiring.Document) bool {
	confirm := promptui.Select{
		Label: fmt.Sprintf("Delete %q? This cannot be undone", doc.Filename),
		Items: []string{PromptNo, PromptYes},
	}
	_, answer, err := confirm.Run()
	if err != nil || answer != PromptYes {
		return false
	}

	if err := client.DeleteDocument(doc.ID); err != nil {
		logger.Error("failed to delete the document", zap.Error(err))
		// A stale record was deleted elsewhere already; resync the listing.
		return errors.Is(err, hiring.ErrNotFound)
	}

	logger.Info("deleted the document", zap.String("filename", doc.Filename), zap.Int("id", doc.ID))
	return true
}
