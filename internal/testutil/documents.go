// Package testutil builds small but valid resume documents for tests.
package testutil

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
)

// BuildPDF renders one page per entry, each with a single line of Helvetica text.
// An empty entry produces a page without any text.
func BuildPDF(pages ...string) []byte {
	pageCount := len(pages)
	fontObj := 3
	firstPageObj := 4

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
	}

	kids := make([]string, 0, pageCount)
	for i := range pages {
		kids = append(kids, fmt.Sprintf("%d 0 R", firstPageObj+i*2))
	}
	objects = append(objects,
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), pageCount),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	)

	for i, text := range pages {
		contentObj := firstPageObj + i*2 + 1
		objects = append(objects, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>",
			fontObj, contentObj))

		stream := ""
		if text != "" {
			stream = fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", escapePDFString(text))
		}
		objects = append(objects, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	}

	buf := &bytes.Buffer{}
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, object := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(buf, "%d 0 obj\n%s\nendobj\n", i+1, object)
	}

	xrefOffset := buf.Len()
	fmt.Fprintf(buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, offset := range offsets {
		fmt.Fprintf(buf, "%010d 00000 n \n", offset)
	}
	fmt.Fprintf(buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xrefOffset)

	return buf.Bytes()
}

func escapePDFString(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`)
	return replacer.Replace(s)
}

// BuildDOCX produces a WordprocessingML package with one paragraph per entry.
func BuildDOCX(paragraphs ...string) []byte {
	body := &strings.Builder{}
	for _, paragraph := range paragraphs {
		body.WriteString(DOCXParagraph(paragraph))
	}
	return BuildDOCXBody(body.String())
}

// DOCXParagraph renders one w:p element holding a single text run.
func DOCXParagraph(text string) string {
	return "<w:p>" + DOCXRun(text) + "</w:p>"
}

func DOCXRun(text string) string {
	return "<w:r><w:t xml:space=\"preserve\">" + escapeXML(text) + "</w:t></w:r>"
}

// BuildDOCXBody wraps raw w:body markup into a WordprocessingML package.
func BuildDOCXBody(body string) []byte {
	files := []struct{ name, content string }{
		{"[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8"?>` +
			`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
			`<Default Extension="xml" ContentType="application/xml"/>` +
			`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
			`</Types>`},
		{"word/document.xml", `<?xml version="1.0" encoding="UTF-8"?>` +
			`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			body +
			`</w:body></w:document>`},
	}

	buf := &bytes.Buffer{}
	w := zip.NewWriter(buf)
	for _, file := range files {
		f, err := w.Create(file.name)
		if err != nil {
			panic(err)
		}
		if _, err = f.Write([]byte(file.content)); err != nil {
			panic(err)
		}
	}
	if err := w.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func escapeXML(s string) string {
	replacer := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return replacer.Replace(s)
}
