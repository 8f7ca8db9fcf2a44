package hiring

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

const (
	// defaultBaseURL points at a local development backend.
	defaultBaseURL = "http://localhost:8000/api"
	userAgent      = "alphadata/cvmatch"
)

// Client talks to the hiring backend over HTTP. Parsing, categorization and
// scoring all happen server-side; the client only moves files and JSON around.
type Client struct {
	// ctx used only for http requests right now
	ctx        context.Context
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	BaseURL    string
}

// New returns a client for the given base URL. An empty baseURL falls back to
// the local development backend. Trailing slashes are trimmed so that joining
// endpoint paths always yields exactly one separator.
func New(ctx context.Context, logger *zap.Logger, baseURL string) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		ctx:     ctx,
		logger:  logger,
		BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		// Match calls run real inference on the backend and may take
		// minutes for large batches. No client-side timeout.
		HTTPClient: &http.Client{},
		UserAgent:  userAgent,
	}
}

func (c *Client) endpoint(path string) string {
	return c.BaseURL + "/" + strings.TrimLeft(path, "/")
}
