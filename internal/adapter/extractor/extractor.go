package extractor

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"wikiquiz/internal/domain"
	"wikiquiz/internal/logger"

	"go.uber.org/zap"
)

const (
	// minParagraphLen filters navigation boxes, captions and stubs. Paragraphs
	// at or under this trimmed length are dropped.
	minParagraphLen = 50

	// minBodyLen is the smallest article body worth prompting with.
	minBodyLen = 500

	// maxBodyLen bounds the prompt size sent downstream.
	maxBodyLen = 15000
)

// Extractor pulls the article title and body paragraphs out of raw Wikipedia
// HTML. It is a structural heuristic, not semantic analysis: the length filter
// accepts occasional false positives and negatives.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract implements domain.ArticleExtractor
func (e *Extractor) Extract(html string) (*domain.ArticleText, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, domain.NewExtractionError("could not parse article HTML")
	}

	title := strings.TrimSpace(doc.Find("#firstHeading").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	content := doc.Find("#mw-content-text .mw-parser-output").First()
	if content.Length() == 0 {
		content = doc.Find("#mw-content-text").First()
	}
	if content.Length() == 0 {
		logger.Get().Warn("Article content container not found", zap.String("title", title))
		return nil, domain.NewExtractionError("could not find article content")
	}

	var paragraphs []string
	content.Find("p").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if len(text) > minParagraphLen {
			paragraphs = append(paragraphs, text)
		}
	})

	body := strings.Join(paragraphs, "\n\n")
	if len(body) > maxBodyLen {
		// Back up to a rune boundary so the cut never splits a multibyte
		// character.
		cut := maxBodyLen
		for cut > 0 && !utf8.RuneStart(body[cut]) {
			cut--
		}
		body = body[:cut]
	}

	if len(body) < minBodyLen {
		logger.Get().Warn("Extracted article content too short",
			zap.String("title", title),
			zap.Int("length", len(body)))
		return nil, domain.NewExtractionError("content too short")
	}

	return &domain.ArticleText{Title: title, Body: body}, nil
}

var _ domain.ArticleExtractor = (*Extractor)(nil)
