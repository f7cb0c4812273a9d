package compiler

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"textdigest/internal/domain"
)

const (
	summaryHeading = "1 - Summary"
	codeHeader     = "\nCode block:\n"
	keywordsHeader = "3 - 関連キーワード"
)

// Compile turns one model result plus its source URL into the ordered edit
// batch that renders the digest document. The batch is pure data: every
// offset is derived from the rune lengths of the inserted literals, so the
// output can be verified without a document backend. Empty fields degrade to
// empty sections; Compile never fails.
//
// Section order is a fixed contract: summary, code blocks (only when
// present), source URL, keywords.
func Compile(result domain.ModelResult, sourceURL string) []domain.Request {
	b := &batch{position: 1}

	b.summarySection(result.SummaryLines)
	b.codeSection(result.CodeBlocks)
	b.sourceSection(result.PageTitle, sourceURL)
	b.keywordsSection(result.Keywords)

	return b.requests
}

// batch accumulates edit operations while tracking the rune offset the next
// insertion lands at. Offsets start at 1: offset 0 is reserved by the
// document format.
type batch struct {
	requests []domain.Request
	position int64
}

func (b *batch) summarySection(lines []string) {
	start, _ := b.insert(summaryHeading + "\n")
	b.paragraphStyle(domain.Range{
		Start: start,
		End:   start + runeLen(summaryHeading),
	}, domain.HeadingTop)

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		lineStart, lineEnd := b.insert(line + "\n")

		if strings.HasPrefix(trimmed, string(domain.SummaryBulletRune)) {
			b.bullets(domain.Range{
				Start: lineStart,
				End:   lineEnd - 1,
			}, domain.BulletPresetDiscCircleSquare)
		}
	}
}

func (b *batch) codeSection(blocks []string) {
	if len(blocks) == 0 {
		return
	}

	b.insert(codeHeader)

	for _, block := range blocks {
		start, end := b.insert(block + "\n\n")
		b.textStyle(domain.UpdateTextStyle{
			Range: domain.Range{
				Start: start,
				End:   end - 2,
			},
			FontFamily: domain.CodeFontFamily,
			FontSizePt: domain.CodeFontSizePt,
		})
	}
}

func (b *batch) sourceSection(pageTitle, sourceURL string) {
	heading := fmt.Sprintf("2 - URL - %s", pageTitle)
	start, end := b.insert("\n" + heading + "\n" + sourceURL + "\n")

	headingStart := start + 1
	b.paragraphStyle(domain.Range{
		Start: headingStart,
		End:   headingStart + runeLen(heading),
	}, domain.HeadingSecond)

	b.textStyle(domain.UpdateTextStyle{
		Range: domain.Range{
			Start: end - runeLen(sourceURL) - 1,
			End:   end - 1,
		},
		LinkURL: sourceURL,
	})
}

func (b *batch) keywordsSection(keywords string) {
	start, _ := b.insert("\n" + keywordsHeader + "\n" + keywords + "\n")

	headingStart := start + 1
	b.paragraphStyle(domain.Range{
		Start: headingStart,
		End:   headingStart + runeLen(keywordsHeader),
	}, domain.HeadingSecond)
}

// insert appends an InsertText operation at the current position and
// advances it by the rune count of text. It returns the half-open range the
// inserted text occupies.
func (b *batch) insert(text string) (start, end int64) {
	start = b.position
	b.requests = append(b.requests, domain.Request{
		InsertText: &domain.InsertText{
			Position: start,
			Text:     text,
		},
	})
	b.position += runeLen(text)

	return start, b.position
}

func (b *batch) paragraphStyle(r domain.Range, named string) {
	b.requests = append(b.requests, domain.Request{
		UpdateParagraphStyle: &domain.UpdateParagraphStyle{
			Range: r,
			Named: named,
		},
	})
}

func (b *batch) bullets(r domain.Range, preset string) {
	b.requests = append(b.requests, domain.Request{
		CreateBullets: &domain.CreateBullets{
			Range:  r,
			Preset: preset,
		},
	})
}

func (b *batch) textStyle(style domain.UpdateTextStyle) {
	b.requests = append(b.requests, domain.Request{
		UpdateTextStyle: &style,
	})
}

func runeLen(s string) int64 {
	return int64(utf8.RuneCountInString(s))
}
