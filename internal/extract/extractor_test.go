package extract

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"notes.txt", FormatTXT},
		{"data.CSV", FormatCSV},
		{"letter.rtf", FormatRTF},
		{"report.docx", FormatDOCX},
		{"legacy.DOC", FormatDOC},
		{"archive.tar.txt", FormatTXT},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.filename)
		if err != nil {
			t.Errorf("ParseFormat(%q): %v", tt.filename, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q): got %q, want %q", tt.filename, got, tt.want)
		}
	}
}

func TestParseFormat_unsupported(t *testing.T) {
	for _, filename := range []string{"scan.pdf", "noext", "slides.pptx", "sheet.xlsx"} {
		_, err := ParseFormat(filename)
		var ufe *UnsupportedFormatError
		if !errors.As(err, &ufe) {
			t.Errorf("ParseFormat(%q): got %v, want UnsupportedFormatError", filename, err)
		}
	}
}

func TestParseFormat_namesOffendingTag(t *testing.T) {
	_, err := ParseFormat("scan.pdf")
	var ufe *UnsupportedFormatError
	if !errors.As(err, &ufe) {
		t.Fatalf("got %v", err)
	}
	if ufe.Format != "pdf" {
		t.Errorf("offending tag: got %q, want %q", ufe.Format, "pdf")
	}
}

func TestExtractBytes_plain(t *testing.T) {
	e := NewExtractor()
	got, err := e.ExtractBytes([]byte("Hello world\nLine 2"), FormatTXT)
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if got != "Hello world\nLine 2" {
		t.Errorf("got %q", got)
	}
}

func TestExtractBytes_plainUTF8(t *testing.T) {
	e := NewExtractor()
	got, err := e.ExtractBytes([]byte("caf\xc3\xa9"), FormatTXT)
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if got != "café" {
		t.Errorf("got %q", got)
	}
}

func TestExtractBytes_plainLatin1Fallback(t *testing.T) {
	e := NewExtractor()
	// "café" in ISO 8859-1: 0xE9 is not valid UTF-8, so the fallback decodes it.
	got, err := e.ExtractBytes([]byte("caf\xe9"), FormatTXT)
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if got != "café" {
		t.Errorf("got %q", got)
	}
}

func TestExtractBytes_csv(t *testing.T) {
	e := NewExtractor()
	got, err := e.ExtractBytes([]byte("a,b\nc\n"), FormatCSV)
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if got != "a b c" {
		t.Errorf("got %q, want %q", got, "a b c")
	}
}

func TestExtractBytes_csvQuotedAndEmptyCells(t *testing.T) {
	e := NewExtractor()
	got, err := e.ExtractBytes([]byte("name,note\n\"Smith, Jane\",\nBob,fine\n"), FormatCSV)
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	// The empty cell keeps its position as an empty token.
	if got != "name note Smith, Jane  Bob fine" {
		t.Errorf("got %q", got)
	}
}

func TestExtractBytes_csvLatin1Fallback(t *testing.T) {
	e := NewExtractor()
	got, err := e.ExtractBytes([]byte("caf\xe9,bar\n"), FormatCSV)
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if got != "café bar" {
		t.Errorf("got %q", got)
	}
}

func TestExtractBytes_csvMalformed(t *testing.T) {
	e := NewExtractor()
	_, err := e.ExtractBytes([]byte("a,\"unterminated\nb,c\n"), FormatCSV)
	if !errors.Is(err, ErrExtraction) {
		t.Errorf("got %v, want ErrExtraction", err)
	}
}

func TestExtractBytes_rtf(t *testing.T) {
	e := NewExtractor()
	src := `{\rtf1\ansi{\fonttbl{\f0 Helvetica;}}\f0\fs24 Hello, World!\par Second line.}`
	got, err := e.ExtractBytes([]byte(src), FormatRTF)
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if got != "Hello, World!\nSecond line." {
		t.Errorf("got %q", got)
	}
}

func TestExtractBytes_rtfEscapes(t *testing.T) {
	e := NewExtractor()
	src := `{\rtf1 caf\'e9 \{braces\} 100\~km\tab x}`
	got, err := e.ExtractBytes([]byte(src), FormatRTF)
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	want := "café {braces} 100" + string(rune(0x00a0)) + "km\tx"
	if got != want {
		t.Errorf("got %q", got)
	}
}

func TestExtractBytes_rtfUnicodeEscape(t *testing.T) {
	e := NewExtractor()
	src := `{\rtf1 snow \u9731?man}`
	got, err := e.ExtractBytes([]byte(src), FormatRTF)
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if got != "snow ☃man" {
		t.Errorf("got %q", got)
	}
}

func TestExtractBytes_rtfSkipsDestinations(t *testing.T) {
	e := NewExtractor()
	src := `{\rtf1{\info{\author Nobody}}{\*\generator Acme 1.0;}visible}`
	got, err := e.ExtractBytes([]byte(src), FormatRTF)
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if got != "visible" {
		t.Errorf("got %q", got)
	}
}

// buildDocx builds a minimal .docx archive with the given document.xml body.
func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	ct, err := zw.Create(contentTypesPath)
	if err != nil {
		t.Fatal(err)
	}
	_, _ = ct.Write([]byte(`<?xml version="1.0"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
		`<Override PartName="/word/document.xml" ContentType="` + docxMainContentType + `"/></Types>`))
	doc, err := zw.Create(docxDocumentXMLPath)
	if err != nil {
		t.Fatal(err)
	}
	_, _ = doc.Write([]byte(documentXML))
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestExtractBytes_docxParagraphs(t *testing.T) {
	content := buildDocx(t, `<w:document><w:body>`+
		`<w:p w:rsidR="00A"><w:r><w:t>First </w:t></w:r><w:r><w:t>paragraph</w:t></w:r></w:p>`+
		`<w:p/>`+
		`<w:p><w:pPr><w:jc w:val="center"/></w:pPr><w:r><w:t xml:space="preserve">Second</w:t></w:r></w:p>`+
		`</w:body></w:document>`)

	e := NewExtractor()
	got, err := e.ExtractBytes(content, FormatDOCX)
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	// Runs concatenate within a paragraph; paragraphs join with \n.
	// The self-closing empty paragraph yields no line because it has no
	// <w:p>...</w:p> block.
	if got != "First paragraph\nSecond" {
		t.Errorf("got %q", got)
	}
}

func TestExtractBytes_docxEmptyParagraphKeepsLine(t *testing.T) {
	content := buildDocx(t, `<w:document><w:body>`+
		`<w:p><w:r><w:t>a</w:t></w:r></w:p>`+
		`<w:p></w:p>`+
		`<w:p><w:r><w:t>b</w:t></w:r></w:p>`+
		`</w:body></w:document>`)

	e := NewExtractor()
	got, err := e.ExtractBytes(content, FormatDOCX)
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if got != "a\n\nb" {
		t.Errorf("got %q", got)
	}
}

func TestExtractBytes_docxEntities(t *testing.T) {
	content := buildDocx(t, `<w:document><w:body><w:p><w:r><w:t>a &amp; b &lt;c&gt;</w:t></w:r></w:p></w:body></w:document>`)
	e := NewExtractor()
	got, err := e.ExtractBytes(content, FormatDOCX)
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if got != "a & b <c>" {
		t.Errorf("got %q", got)
	}
}

func TestExtractBytes_docNotAZip(t *testing.T) {
	e := NewExtractor()
	_, err := e.ExtractBytes([]byte("\xd0\xcf\x11\xe0 legacy binary"), FormatDOC)
	if !errors.Is(err, ErrExtraction) {
		t.Errorf("got %v, want ErrExtraction", err)
	}
}

func TestExtractBytes_unsupported(t *testing.T) {
	e := NewExtractor()
	_, err := e.ExtractBytes([]byte("%PDF-1.4"), Format("pdf"))
	var ufe *UnsupportedFormatError
	if !errors.As(err, &ufe) {
		t.Fatalf("got %v, want UnsupportedFormatError", err)
	}
	if ufe.Format != "pdf" {
		t.Errorf("offending tag: got %q", ufe.Format)
	}
}

func TestExtract_file(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.txt")
	if err := os.WriteFile(path, []byte("File content"), 0600); err != nil {
		t.Fatal(err)
	}

	e := NewExtractor()
	got, err := e.Extract(path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got != "File content" {
		t.Errorf("got %q", got)
	}
}

func TestExtract_unsupportedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scan.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0600); err != nil {
		t.Fatal(err)
	}

	e := NewExtractor()
	_, err := e.Extract(path)
	var ufe *UnsupportedFormatError
	if !errors.As(err, &ufe) {
		t.Fatalf("got %v, want UnsupportedFormatError", err)
	}
}
