package syllabus

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// DOCXExtractor reads paragraph text from word/document.xml.
type DOCXExtractor struct{}

type documentXML struct {
	Body struct {
		Paragraphs []paragraphXML `xml:"p"`
	} `xml:"body"`
}

type paragraphXML struct {
	Runs []struct {
		Text []struct {
			Content string `xml:",chardata"`
		} `xml:"t"`
	} `xml:"r"`
}

func (DOCXExtractor) Extract(_ context.Context, data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("open document.xml: %w", err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("read document.xml: %w", err)
		}
		return parseDocumentXML(content)
	}
	return "", fmt.Errorf("%w: no word/document.xml in archive", ErrUnsupportedFormat)
}

// parseDocumentXML joins paragraphs with newlines. Empty paragraphs become
// blank lines so paragraph breaks survive into segmentation.
func parseDocumentXML(content []byte) (string, error) {
	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return "", fmt.Errorf("parse document.xml: %w", err)
	}

	lines := make([]string, 0, len(doc.Body.Paragraphs))
	for _, p := range doc.Body.Paragraphs {
		var b strings.Builder
		for _, r := range p.Runs {
			for _, t := range r.Text {
				b.WriteString(t.Content)
			}
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n"), nil
}
