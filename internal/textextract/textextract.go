package textextract

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/maxaizer/job-tracker/internal/apperr"
	"github.com/pkg/errors"
)

const docxDocumentPart = "word/document.xml"

type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Extract(path string) (string, error) {
	return Extract(path)
}

// Extract returns the plain text of a resume. The format is chosen by file extension.
func Extract(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return extractPDF(path)
	case ".docx":
		return extractDOCX(path)
	default:
		return "", apperr.ErrUnsupportedFormat
	}
}

func extractPDF(path string) (text string, err error) {
	// the pdf reader panics on some malformed documents
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = errors.Errorf("failed to parse pdf %s: %v", path, r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to open pdf %s", path)
	}
	defer f.Close()

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", errors.Wrapf(err, "failed to read page %d of %s", i, path)
		}
		if strings.TrimSpace(pageText) == "" {
			continue
		}
		pages = append(pages, pageText)
	}

	return strings.Join(pages, " "), nil
}

func extractDOCX(path string) (string, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to open docx %s", path)
	}
	defer archive.Close()

	for _, file := range archive.File {
		if file.Name != docxDocumentPart {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return "", errors.Wrapf(err, "failed to open %s in %s", docxDocumentPart, path)
		}
		defer rc.Close()

		paragraphs, err := readParagraphs(rc)
		if err != nil {
			return "", errors.Wrapf(err, "failed to parse %s", path)
		}
		return strings.Join(paragraphs, " "), nil
	}

	return "", fmt.Errorf("%s has no %s part", path, docxDocumentPart)
}

// readParagraphs collects the text runs of every w:p element, one string per paragraph.
// A paragraph nested in another one, as in text boxes, is emitted on its own and the
// outer paragraph keeps the text around it.
func readParagraphs(r io.Reader) ([]string, error) {
	decoder := xml.NewDecoder(r)

	var (
		paragraphs []string
		open       []*strings.Builder
		inText     bool
	)

	current := func() *strings.Builder {
		if len(open) == 0 {
			return nil
		}
		return open[len(open)-1]
	}

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return paragraphs, nil
		}
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				open = append(open, &strings.Builder{})
			case "t":
				inText = true
			case "tab", "br":
				if b := current(); b != nil {
					b.WriteString(" ")
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if len(open) == 0 {
					continue
				}
				paragraphs = append(paragraphs, open[len(open)-1].String())
				open = open[:len(open)-1]
				if parent := current(); parent != nil {
					parent.WriteString(" ")
				}
			}
		case xml.CharData:
			if b := current(); inText && b != nil {
				b.Write(t)
			}
		}
	}
}
