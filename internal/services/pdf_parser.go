package services

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

type PDFParserService interface {
	ExtractText(filepath string) (string, error)
	ExtractResumeText(filepath string) (string, error)
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

func (p *pdfParserService) ExtractText(filePath string) (string, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return "", fmt.Errorf("file does not exist: %s", filePath)
	}

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, keep the rest
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	text := textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text content found in PDF")
	}

	return text, nil
}

// ExtractResumeText extracts text from a resume PDF and normalizes it for the
// question generator agent.
func (p *pdfParserService) ExtractResumeText(filePath string) (string, error) {
	text, err := p.ExtractText(filePath)
	if err != nil {
		return "", err
	}

	cleaned := CleanResumeText(text)
	if cleaned == "" {
		return "", fmt.Errorf("no text content found in PDF")
	}

	return cleaned, nil
}

var (
	resumeNoiseRegex      = regexp.MustCompile(`[^\w\s,.|:/-]`)
	resumeWhitespaceRegex = regexp.MustCompile(`\s+`)
)

// CleanResumeText strips symbols that confuse the agent and collapses runs of
// whitespace into single spaces.
func CleanResumeText(text string) string {
	text = resumeNoiseRegex.ReplaceAllString(text, "")
	text = resumeWhitespaceRegex.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
