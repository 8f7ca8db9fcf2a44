// Package staging holds the pre-submission state of the two upload zones.
// The zones are independent: each guards against duplicate in-flight
// submissions on its own, and both may be submitting at the same time.
package staging

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrBusy reports a second submission attempted while one is in flight
	// for the same zone.
	ErrBusy = errors.New("a submission for this zone is already in flight")
	// ErrEmpty reports a submission attempted with nothing selected.
	ErrEmpty = errors.New("nothing selected to upload")
)

// Only these extensions ever reach the wire. The backend would reject
// anything else anyway.
var acceptedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
}

// Accepted reports whether the filename carries an uploadable extension.
func Accepted(path string) bool {
	return acceptedExtensions[strings.ToLower(filepath.Ext(path))]
}

// AcceptedExtensions lists the uploadable extensions in stable order.
func AcceptedExtensions() []string {
	exts := make([]string, 0, len(acceptedExtensions))
	for ext := range acceptedExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

func validate(paths ...string) error {
	for _, path := range paths {
		if !Accepted(path) {
			return fmt.Errorf("unsupported file %q: only PDF and DOCX are accepted", filepath.Base(path))
		}
	}
	return nil
}

// CVZone accumulates CV files across multiple picks. Files stay staged until
// explicitly submitted or individually removed.
type CVZone struct {
	mu       sync.Mutex
	files    []string
	inFlight bool
}

// Add appends files to the staged list. The whole batch is rejected when any
// file has an unsupported extension; nothing is staged partially.
func (z *CVZone) Add(paths ...string) error {
	if err := validate(paths...); err != nil {
		return err
	}

	z.mu.Lock()
	defer z.mu.Unlock()
	z.files = append(z.files, paths...)
	return nil
}

func (z *CVZone) Remove(i int) error {
	z.mu.Lock()
	defer z.mu.Unlock()
	if i < 0 || i >= len(z.files) {
		return fmt.Errorf("no staged file at index %d", i)
	}
	z.files = append(z.files[:i], z.files[i+1:]...)
	return nil
}

func (z *CVZone) Files() []string {
	z.mu.Lock()
	defer z.mu.Unlock()
	files := make([]string, len(z.files))
	copy(files, z.files)
	return files
}

func (z *CVZone) Len() int {
	z.mu.Lock()
	defer z.mu.Unlock()
	return len(z.files)
}

func (z *CVZone) Clear() {
	z.mu.Lock()
	defer z.mu.Unlock()
	z.files = nil
}

// Begin marks the zone as submitting. It fails when the zone is empty or a
// previous submission has not finished yet; no network call may be made in
// either case.
func (z *CVZone) Begin() error {
	z.mu.Lock()
	defer z.mu.Unlock()
	if z.inFlight {
		return ErrBusy
	}
	if len(z.files) == 0 {
		return ErrEmpty
	}
	z.inFlight = true
	return nil
}

func (z *CVZone) Finish() {
	z.mu.Lock()
	defer z.mu.Unlock()
	z.inFlight = false
}

func (z *CVZone) InFlight() bool {
	z.mu.Lock()
	defer z.mu.Unlock()
	return z.inFlight
}

// JDZone holds at most one job description file. Setting a new file replaces
// the previous selection.
type JDZone struct {
	mu       sync.Mutex
	file     string
	inFlight bool
}

func (z *JDZone) Set(path string) error {
	if err := validate(path); err != nil {
		return err
	}

	z.mu.Lock()
	defer z.mu.Unlock()
	z.file = path
	return nil
}

func (z *JDZone) File() string {
	z.mu.Lock()
	defer z.mu.Unlock()
	return z.file
}

func (z *JDZone) Clear() {
	z.mu.Lock()
	defer z.mu.Unlock()
	z.file = ""
}

func (z *JDZone) Begin() error {
	z.mu.Lock()
	defer z.mu.Unlock()
	if z.inFlight {
		return ErrBusy
	}
	if z.file == "" {
		return ErrEmpty
	}
	z.inFlight = true
	return nil
}

func (z *JDZone) Finish() {
	z.mu.Lock()
	defer z.mu.Unlock()
	z.inFlight = false
}

func (z *JDZone) InFlight() bool {
	z.mu.Lock()
	defer z.mu.Unlock()
	return z.inFlight
}

// Session tracks upload outcomes within one run. Quick match becomes
// available only after both a CV batch and a JD upload have succeeded, and
// remembers the most recently uploaded JD.
type Session struct {
	mu         sync.Mutex
	cvUploaded bool
	jdUploaded bool
	lastJDID   int
}

func (s *Session) RecordCVUpload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cvUploaded = true
}

func (s *Session) RecordJDUpload(jdID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jdUploaded = true
	s.lastJDID = jdID
}

func (s *Session) QuickMatchReady() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cvUploaded && s.jdUploaded
}

func (s *Session) LastJDID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastJDID
}
