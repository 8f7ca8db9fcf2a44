package hiring

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/mitchellh/mapstructure"
)

const (
	matchPath        = "/match"
	matchHistoryPath = "/match/history"

	defaultHistoryLimit = 10
)

type MatchRequest struct {
	JDID int `json:"jd_id"`
	// CVIDs nil means "all associated CVs". Serialized without omitempty so
	// the backend sees an explicit null.
	CVIDs []int  `json:"cv_ids"`
	Model string `json:"model"`
}

// MatchReport is one full match session result. It is held in memory for the
// duration of one session and discarded afterwards.
type MatchReport struct {
	JDID            int            `json:"jd_id"`
	JDName          string         `json:"jd_name"`
	TotalCVsMatched int            `json:"total_cvs_matched"`
	Results         []*MatchResult `json:"results"`
}

type MatchResult struct {
	CVID       int      `json:"cv_id"`
	CVName     string   `json:"cv_name"`
	Score      int      `json:"score"`
	MatchLevel string   `json:"match_level"`
	KeyMatches []string `json:"key_matches"`
	Gaps       []string `json:"gaps"`
	Summary    string   `json:"summary"`
}

type MatchHistory struct {
	Matches []*HistoryEntry `json:"matches"`
}

type HistoryEntry struct {
	ID        int    `json:"id"`
	CVName    string `json:"cv_name"`
	JDName    string `json:"jd_name"`
	Score     int    `json:"score"`
	MatchDate string `json:"match_date"`
}

type MatchDetails struct {
	ID        int            `json:"id"`
	CVName    string         `json:"cv_name"`
	JDName    string         `json:"jd_name"`
	Score     int            `json:"score"`
	MatchDate string         `json:"match_date"`
	Details   map[string]any `json:"details"`
}

// MatchCVsToJD asks the backend to score the given CVs against one JD. A nil
// cvIDs slice means "all associated CVs". The call blocks until the backend
// finishes inference; there is no incremental progress signal.
func (c *Client) MatchCVsToJD(jdID int, cvIDs []int, model string) (*MatchReport, error) {
	payload := &MatchRequest{JDID: jdID, CVIDs: cvIDs, Model: model}

	var report MatchReport
	if err := c.postJSON(c.endpoint(matchPath), payload, &report); err != nil {
		return nil, fmt.Errorf("match cvs to jd: %w", err)
	}

	return &report, nil
}

// GetMatchHistory returns recent matches, newest first. Non-positive limits
// fall back to the backend default of 10.
func (c *Client) GetMatchHistory(limit int) (*MatchHistory, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))

	var history MatchHistory
	if err := c.getJSON(c.endpoint(matchHistoryPath), q, &history); err != nil {
		return nil, fmt.Errorf("get match history: %w", err)
	}

	return &history, nil
}

// GetMatchDetails fetches one stored match. The details payload is schemaless
// on the wire; Result decodes it into the regular result shape.
func (c *Client) GetMatchDetails(id int) (*MatchDetails, error) {
	var details MatchDetails
	if err := c.getJSON(c.endpoint(fmt.Sprintf("%s/%d", matchPath, id)), nil, &details); err != nil {
		return nil, fmt.Errorf("get match details %d: %w", id, err)
	}

	return &details, nil
}

// Result decodes the raw details map into a MatchResult. Keys the backend
// did not store stay at their zero values.
func (d *MatchDetails) Result() (*MatchResult, error) {
	result := &MatchResult{
		CVName: d.CVName,
		Score:  d.Score,
	}

	cfg := &mapstructure.DecoderConfig{
		Metadata: nil,
		Result:   result,
		TagName:  "json",
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(d.Details); err != nil {
		return nil, fmt.Errorf("decode match details: %w", err)
	}

	return result, nil
}

func (r *MatchReport) Len() int {
	return len(r.Results)
}

func (r *MatchReport) FindByCVID(id int) *MatchResult {
	for _, result := range r.Results {
		if result.CVID == id {
			return result
		}
	}
	return nil
}

func (r *MatchReport) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "match_results_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}
