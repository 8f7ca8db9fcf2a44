package hiring

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
)

const (
	documentsPath  = "/documents"
	categoriesPath = "/documents/categories"

	// File type values assigned by the backend.
	FileTypeCV = "cv"
	FileTypeJD = "jd"
)

type Documents struct {
	Total int         `json:"total"`
	Items []*Document `json:"documents"`
}

// Document is the client's transient copy of a backend record. It goes stale
// the moment any mutating call succeeds; callers re-fetch the list instead of
// patching it locally.
type Document struct {
	ID         int    `json:"id"`
	Filename   string `json:"filename"`
	FileType   string `json:"file_type"`
	Category   string `json:"category"`
	FileSize   int64  `json:"file_size"`
	UploadDate string `json:"upload_date"`
}

type Categories struct {
	Items []*Category `json:"categories"`
}

// Category is a server-computed aggregate used to populate filter sidebars.
type Category struct {
	Name    string `json:"name"`
	CVCount int    `json:"cv_count"`
	JDCount int    `json:"jd_count"`
	Total   int    `json:"total"`
}

// GetDocuments lists documents. An empty fileType or category means no
// constraint on that axis; both filters are applied server-side.
func (c *Client) GetDocuments(fileType, category string) (*Documents, error) {
	q := url.Values{}
	if fileType != "" {
		q.Set("file_type", fileType)
	}
	if category != "" {
		q.Set("category", category)
	}

	var docs Documents
	if err := c.getJSON(c.endpoint(documentsPath), q, &docs); err != nil {
		return nil, fmt.Errorf("get documents: %w", err)
	}

	return &docs, nil
}

func (c *Client) GetCategories() (*Categories, error) {
	var categories Categories
	if err := c.getJSON(c.endpoint(categoriesPath), nil, &categories); err != nil {
		return nil, fmt.Errorf("get categories: %w", err)
	}

	return &categories, nil
}

func (c *Client) GetDocument(id int) (*Document, error) {
	var doc Document
	if err := c.getJSON(c.endpoint(fmt.Sprintf("%s/%d", documentsPath, id)), nil, &doc); err != nil {
		return nil, fmt.Errorf("get document %d: %w", id, err)
	}

	return &doc, nil
}

// ViewDocumentURL returns the binary-serving URL for a document. It is a
// derived value, not a call: suitable for a download link or an inline
// viewer. Content type is the backend's business.
func (c *Client) ViewDocumentURL(id int) string {
	return c.endpoint(fmt.Sprintf("%s/%d/view", documentsPath, id))
}

// Download streams the document body to a local file at dest.
func (c *Client) Download(id int, dest string) error {
	req, err := http.NewRequestWithContext(c.ctx, http.MethodGet, c.ViewDocumentURL(id), nil)
	if err != nil {
		return err
	}

	resp, err := c.request(c.setHeaders(req))
	if err != nil {
		return fmt.Errorf("download document %d: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("download document %d: %w", id, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download document %d: bad status: %s", id, resp.Status)
	}

	file, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err := io.Copy(file, resp.Body); err != nil {
		return fmt.Errorf("download document %d: %w", id, err)
	}

	return nil
}

// DeleteDocument removes a document. Unknown ids report ErrNotFound;
// otherwise the delete is idempotent on the backend.
func (c *Client) DeleteDocument(id int) error {
	if err := c.deleteJSON(c.endpoint(fmt.Sprintf("%s/%d", documentsPath, id)), nil); err != nil {
		return fmt.Errorf("delete document %d: %w", id, err)
	}

	return nil
}

func (d *Documents) Len() int {
	return len(d.Items)
}

func (d *Documents) FindByID(id int) *Document {
	for _, doc := range d.Items {
		if doc.ID == id {
			return doc
		}
	}
	return nil
}

// FilterByName keeps documents whose filename contains the query,
// case-insensitively. An empty query returns the receiver unchanged. Purely
// in-memory; no re-fetch happens on search changes.
func (d *Documents) FilterByName(query string) *Documents {
	query = strings.TrimSpace(query)
	if query == "" {
		return d
	}

	q := strings.ToLower(query)
	filtered := &Documents{}
	for _, doc := range d.Items {
		if strings.Contains(strings.ToLower(doc.Filename), q) {
			filtered.Items = append(filtered.Items, doc)
		}
	}
	filtered.Total = len(filtered.Items)

	return filtered
}

// FilterByCategory keeps documents in the given category. The literal "all"
// or an empty string returns the receiver unchanged.
func (d *Documents) FilterByCategory(category string) *Documents {
	if category == "" || category == "all" {
		return d
	}

	filtered := &Documents{}
	for _, doc := range d.Items {
		if doc.Category == category {
			filtered.Items = append(filtered.Items, doc)
		}
	}
	filtered.Total = len(filtered.Items)

	return filtered
}

// GroupByCategory splits the list by category, preserving list order inside
// each group. A presentation transform, not a fetch.
func (d *Documents) GroupByCategory() map[string][]*Document {
	groups := make(map[string][]*Document)
	for _, doc := range d.Items {
		groups[doc.Category] = append(groups[doc.Category], doc)
	}
	return groups
}

// CategoryNames returns the distinct categories in first-seen order.
func (d *Documents) CategoryNames() []string {
	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, doc := range d.Items {
		if !seen[doc.Category] {
			seen[doc.Category] = true
			names = append(names, doc.Category)
		}
	}
	return names
}

func (d *Documents) IDs() []int {
	ids := make([]int, 0, len(d.Items))
	for _, doc := range d.Items {
		ids = append(ids, doc.ID)
	}
	return ids
}

func (d *Documents) Names() []string {
	names := make([]string, 0, len(d.Items))
	for _, doc := range d.Items {
		names = append(names, doc.Filename)
	}
	return names
}

// Sum returns the total document count across all category aggregates.
func (c *Categories) Sum() int {
	sum := 0
	for _, cat := range c.Items {
		sum += cat.Total
	}
	return sum
}

func (c *Categories) Names() []string {
	names := make([]string, 0, len(c.Items))
	for _, cat := range c.Items {
		names = append(names, cat.Name)
	}
	return names
}
