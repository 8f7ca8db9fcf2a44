package hiring

import "fmt"

const (
	uploadCVPath = "/upload/cv"
	uploadJDPath = "/upload/jd"
)

// UploadReport is the backend's account of one CV batch. Per-file failures
// live inside a successful response; only transport or server errors surface
// as an error from UploadCVs.
type UploadReport struct {
	Uploaded int             `json:"uploaded"`
	Failed   int             `json:"failed"`
	Results  []*UploadedFile `json:"results"`
	Errors   []*UploadError  `json:"errors"`
}

type UploadedFile struct {
	ID       int    `json:"id"`
	Filename string `json:"filename"`
	Category string `json:"category"`
	Status   string `json:"status,omitempty"`
}

type UploadError struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// UploadCVs submits the given files as one multipart batch.
func (c *Client) UploadCVs(paths []string) (*UploadReport, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no CV files to upload")
	}

	var report UploadReport
	if err := c.postFiles(c.endpoint(uploadCVPath), "files", paths, &report); err != nil {
		return nil, fmt.Errorf("upload cvs: %w", err)
	}

	return &report, nil
}

// UploadJD submits a single job description file. The endpoint accepts
// exactly one file; batching is the CV endpoint's business.
func (c *Client) UploadJD(path string) (*UploadedFile, error) {
	var result UploadedFile
	if err := c.postFiles(c.endpoint(uploadJDPath), "file", []string{path}, &result); err != nil {
		return nil, fmt.Errorf("upload jd: %w", err)
	}

	return &result, nil
}
