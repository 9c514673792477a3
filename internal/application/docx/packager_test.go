package docx

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func para(s string) Block { return Block{Kind: BlockParagraph, Text: s} }

var pageBreak = Block{Kind: BlockPageBreak}

func TestLayout(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Block
	}{
		{
			name: "single line",
			text: "AGREEMENT",
			want: []Block{para("AGREEMENT")},
		},
		{
			name: "lines are trimmed and blank lines kept",
			text: "  Title  \n\n\tClause 1\n",
			want: []Block{para("Title"), para(""), para("Clause 1"), para("")},
		},
		{
			name: "break between pages only",
			text: "one\ftwo\fthree",
			want: []Block{para("one"), pageBreak, para("two"), pageBreak, para("three")},
		},
		{
			name: "marker on its own line",
			text: "end of page\n\f\nnext page",
			want: []Block{para("end of page"), para(""), pageBreak, para(""), para("next page")},
		},
		{
			name: "trailing marker",
			text: "only\f",
			want: []Block{para("only"), pageBreak, para("")},
		},
		{
			name: "empty text",
			text: "",
			want: []Block{para("")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Layout(tt.text)); diff != "" {
				t.Errorf("Layout() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLayoutPageBreakCount(t *testing.T) {
	for _, text := range []string{"", "a", "a\fb", "\f\f\f", "x\ny\fz\f\n"} {
		breaks := 0
		for _, b := range Layout(text) {
			if b.Kind == BlockPageBreak {
				breaks++
			}
		}
		if want := strings.Count(text, PageBreakMarker); breaks != want {
			t.Errorf("Layout(%q) page breaks = %d, want %d", text, breaks, want)
		}
	}
}

func documentXML(t *testing.T, data []byte) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("output is not a zip archive: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		defer rc.Close()
		b, err := io.ReadAll(rc)
		if err != nil {
			t.Fatal(err)
		}
		return string(b)
	}
	t.Fatal("word/document.xml not found")
	return ""
}

func TestPack(t *testing.T) {
	text := "RENTAL AGREEMENT\n\nClause one\fWITNESSES\nFirst witness\fAnnexure"
	data, err := Pack(text)
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}
	xml := documentXML(t, data)

	for _, want := range []string{"RENTAL AGREEMENT", "Clause one", "WITNESSES", "First witness", "Annexure", FontFamily} {
		if !strings.Contains(xml, want) {
			t.Errorf("document.xml lacks %q", want)
		}
	}
	if got := strings.Count(xml, `w:type="page"`); got != 2 {
		t.Errorf("page breaks in document = %d, want 2", got)
	}
}

func TestPackNoBreakWithoutMarker(t *testing.T) {
	data, err := Pack("Line one\nLine two")
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(documentXML(t, data), `w:type="page"`); got != 0 {
		t.Errorf("page breaks = %d, want 0", got)
	}
}
