package preview

import (
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		filename string
		expect   Variant
	}{
		{"cv.pdf", VariantPDF},
		{"CV.PDF", VariantPDF},
		{"role.docx", VariantDOCX},
		{"Role.DocX", VariantDOCX},
		{"notes.txt", VariantUnsupported},
		{"archive", VariantUnsupported},
		{"cv.pdf.bak", VariantUnsupported},
	}

	for _, tt := range tests {
		if got := Classify(tt.filename); got != tt.expect {
			t.Fatalf("Classify(%q): expected %v, got %v", tt.filename, tt.expect, got)
		}
	}
}

func TestInline(t *testing.T) {
	if !Classify("a.pdf").Inline() {
		t.Fatalf("pdf should be inline viewable")
	}
	if Classify("a.docx").Inline() {
		t.Fatalf("docx must not be inline viewable")
	}
}

func TestDescribeCarriesURL(t *testing.T) {
	url := "http://backend/api/documents/3/view"
	for _, filename := range []string{"a.pdf", "b.docx", "c.txt"} {
		if out := Describe(filename, url); !strings.Contains(out, url) {
			t.Fatalf("Describe(%q) must carry the binary URL, got: %s", filename, out)
		}
	}

	if out := Describe("b.docx", url); !strings.Contains(out, "Download") {
		t.Fatalf("docx description should offer a download fallback: %s", out)
	}
}
