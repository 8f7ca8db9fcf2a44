package staging

import (
	"errors"
	"testing"
)

func TestCVZoneAccumulatesAcrossAdds(t *testing.T) {
	zone := &CVZone{}

	if err := zone.Add("alice.pdf", "bob.docx"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := zone.Add("carol.PDF"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	files := zone.Files()
	if len(files) != 3 {
		t.Fatalf("expected 3 staged files, got %d", len(files))
	}
	if files[2] != "carol.PDF" {
		t.Fatalf("expected append, not replace: %v", files)
	}
}

func TestCVZoneRejectsUnsupportedExtension(t *testing.T) {
	zone := &CVZone{}

	err := zone.Add("alice.pdf", "notes.txt")
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if zone.Len() != 0 {
		t.Fatalf("expected nothing staged after a rejected batch, got %d", zone.Len())
	}
}

func TestCVZoneRemove(t *testing.T) {
	zone := &CVZone{}
	if err := zone.Add("a.pdf", "b.pdf", "c.pdf"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := zone.Remove(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	files := zone.Files()
	if len(files) != 2 || files[0] != "a.pdf" || files[1] != "c.pdf" {
		t.Fatalf("unexpected files after remove: %v", files)
	}

	if err := zone.Remove(5); err == nil {
		t.Fatalf("expected error for out of range index")
	}
}

func TestCVZoneInFlightGuard(t *testing.T) {
	zone := &CVZone{}
	if err := zone.Add("a.pdf"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := zone.Begin(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := zone.Begin(); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}

	zone.Finish()
	if err := zone.Begin(); err != nil {
		t.Fatalf("expected zone reusable after Finish, got %v", err)
	}
}

func TestCVZoneBeginEmpty(t *testing.T) {
	zone := &CVZone{}
	if err := zone.Begin(); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestJDZoneReplacesSelection(t *testing.T) {
	zone := &JDZone{}

	if err := zone.Set("first.pdf"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := zone.Set("second.docx"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if zone.File() != "second.docx" {
		t.Fatalf("expected replacement, got %q", zone.File())
	}
}

func TestJDZoneRejectsUnsupportedExtension(t *testing.T) {
	zone := &JDZone{}
	if err := zone.Set("role.odt"); err == nil {
		t.Fatalf("expected validation error")
	}
	if zone.File() != "" {
		t.Fatalf("expected empty selection, got %q", zone.File())
	}
}

func TestJDZoneGuards(t *testing.T) {
	zone := &JDZone{}
	if err := zone.Begin(); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}

	if err := zone.Set("role.pdf"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := zone.Begin(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := zone.Begin(); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
}

func TestZonesAreIndependent(t *testing.T) {
	cv := &CVZone{}
	jd := &JDZone{}
	if err := cv.Add("a.pdf"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := jd.Set("role.pdf"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := cv.Begin(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The CV submission being in flight must not block the JD zone.
	if err := jd.Begin(); err != nil {
		t.Fatalf("expected independent zones, got %v", err)
	}
}

func TestSessionQuickMatchGating(t *testing.T) {
	session := &Session{}

	if session.QuickMatchReady() {
		t.Fatalf("quick match must not be ready before any upload")
	}

	session.RecordCVUpload()
	if session.QuickMatchReady() {
		t.Fatalf("quick match needs a JD upload too")
	}

	session.RecordJDUpload(7)
	if !session.QuickMatchReady() {
		t.Fatalf("quick match should be ready after both uploads")
	}

	session.RecordJDUpload(9)
	if session.LastJDID() != 9 {
		t.Fatalf("expected most recent JD id, got %d", session.LastJDID())
	}
}

func TestAccepted(t *testing.T) {
	for _, path := range []string{"a.pdf", "b.PDF", "c.docx", "d.DocX"} {
		if !Accepted(path) {
			t.Fatalf("expected %q to be accepted", path)
		}
	}
	for _, path := range []string{"a.doc", "b.txt", "c", "d.pdf.exe"} {
		if Accepted(path) {
			t.Fatalf("expected %q to be rejected", path)
		}
	}
}

func TestAcceptedExtensions(t *testing.T) {
	got := AcceptedExtensions()
	want := []string{".docx", ".pdf"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
