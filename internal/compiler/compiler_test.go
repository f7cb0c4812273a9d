package compiler_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"textdigest/internal/compiler"
	"textdigest/internal/domain"
)

// docBuffer simulates the insert-only document the edit batch targets.
// Offset 0 is reserved, so the buffer carries one placeholder rune and
// operation offsets map directly onto rune indices.
type docBuffer struct {
	runes []rune
}

func newDocBuffer() *docBuffer {
	return &docBuffer{runes: []rune{0}}
}

func (d *docBuffer) insert(t *testing.T, position int64, text string) {
	t.Helper()

	if position < 1 || position > int64(len(d.runes)) {
		t.Fatalf("insert position %d out of range (doc length %d)", position, len(d.runes))
	}

	inserted := []rune(text)
	d.runes = append(d.runes[:position], append(inserted, d.runes[position:]...)...)
}

func (d *docBuffer) slice(t *testing.T, r domain.Range) string {
	t.Helper()

	if r.Start < 1 || r.End > int64(len(d.runes)) || r.Start > r.End {
		t.Fatalf("range [%d, %d) out of bounds (doc length %d)", r.Start, r.End, len(d.runes))
	}

	return string(d.runes[r.Start:r.End])
}

func (d *docBuffer) text() string {
	return string(d.runes[1:])
}

// replay applies every operation in order, calling onStyle with the text
// span each style operation covers at the moment it applies.
func replay(t *testing.T, requests []domain.Request, onStyle func(req domain.Request, span string)) *docBuffer {
	t.Helper()

	doc := newDocBuffer()
	for _, req := range requests {
		switch {
		case req.InsertText != nil:
			doc.insert(t, req.InsertText.Position, req.InsertText.Text)
		case req.UpdateParagraphStyle != nil:
			onStyle(req, doc.slice(t, req.UpdateParagraphStyle.Range))
		case req.CreateBullets != nil:
			onStyle(req, doc.slice(t, req.CreateBullets.Range))
		case req.UpdateTextStyle != nil:
			onStyle(req, doc.slice(t, req.UpdateTextStyle.Range))
		default:
			t.Fatalf("request with no operation set: %+v", req)
		}
	}

	return doc
}

func TestCompileSummaryHeadingCoversHeaderWithoutNewline(t *testing.T) {
	requests := compiler.Compile(domain.ModelResult{
		PageTitle: "Example",
		Keywords:  "a, b",
	}, "https://example.com")

	var headingSpans []string
	replay(t, requests, func(req domain.Request, span string) {
		if req.UpdateParagraphStyle != nil && req.UpdateParagraphStyle.Named == domain.HeadingTop {
			headingSpans = append(headingSpans, span)
		}
	})

	if len(headingSpans) != 1 {
		t.Fatalf("expected exactly one top heading, got %d", len(headingSpans))
	}

	if headingSpans[0] != "1 - Summary" {
		t.Fatalf("unexpected top heading span: %q", headingSpans[0])
	}
}

func TestCompileEmptySummaryStillEmitsHeading(t *testing.T) {
	requests := compiler.Compile(domain.ModelResult{
		PageTitle: domain.PageTitleFailure,
		Keywords:  domain.KeywordsFailure,
	}, "https://example.com")

	doc := replay(t, requests, func(domain.Request, string) {})

	if !strings.HasPrefix(doc.text(), "1 - Summary\n") {
		t.Fatalf("expected document to start with summary header, got %q", doc.text())
	}
}

func TestCompileBulletRangeCoversLineWithoutNewline(t *testing.T) {
	requests := compiler.Compile(domain.ModelResult{
		SummaryLines: []string{"・foo"},
		PageTitle:    "Example",
		Keywords:     "a",
	}, "https://example.com")

	var bulletSpans []string
	replay(t, requests, func(req domain.Request, span string) {
		if req.CreateBullets != nil {
			bulletSpans = append(bulletSpans, span)

			if req.CreateBullets.Preset != domain.BulletPresetDiscCircleSquare {
				t.Fatalf("unexpected bullet preset: %q", req.CreateBullets.Preset)
			}
		}
	})

	if len(bulletSpans) != 1 {
		t.Fatalf("expected exactly one bullet operation, got %d", len(bulletSpans))
	}

	if bulletSpans[0] != "・foo" {
		t.Fatalf("unexpected bullet span: %q", bulletSpans[0])
	}

	if got := utf8.RuneCountInString(bulletSpans[0]); got != 4 {
		t.Fatalf("expected bullet span of 4 runes, got %d", got)
	}
}

func TestCompilePlainLineYieldsNoBullet(t *testing.T) {
	requests := compiler.Compile(domain.ModelResult{
		SummaryLines: []string{"foo"},
		PageTitle:    "Example",
		Keywords:     "a",
	}, "https://example.com")

	for _, req := range requests {
		if req.CreateBullets != nil {
			t.Fatalf("expected no bullet operation for a plain line")
		}
	}
}

func TestCompileSkipsBlankSummaryLines(t *testing.T) {
	requests := compiler.Compile(domain.ModelResult{
		SummaryLines: []string{"", "   ", "・bar"},
		PageTitle:    "Example",
		Keywords:     "a",
	}, "https://example.com")

	doc := replay(t, requests, func(domain.Request, string) {})

	if !strings.HasPrefix(doc.text(), "1 - Summary\n・bar\n") {
		t.Fatalf("expected blank lines to be dropped, got %q", doc.text())
	}
}

func TestCompileSkipsCodeSectionWhenNoBlocks(t *testing.T) {
	requests := compiler.Compile(domain.ModelResult{
		SummaryLines: []string{"・foo"},
		PageTitle:    "Example",
		Keywords:     "a",
	}, "https://example.com")

	doc := replay(t, requests, func(domain.Request, string) {})

	if strings.Contains(doc.text(), "Code block:") {
		t.Fatalf("expected no code header without code blocks, got %q", doc.text())
	}
}

func TestCompileCodeStyleCoversBlockWithoutTrailingNewlines(t *testing.T) {
	block := "```python\nprint(1)\n```"
	requests := compiler.Compile(domain.ModelResult{
		SummaryLines: []string{"・foo"},
		CodeBlocks:   []string{block},
		PageTitle:    "Example",
		Keywords:     "a",
	}, "https://example.com")

	var codeSpans []string
	doc := replay(t, requests, func(req domain.Request, span string) {
		if req.UpdateTextStyle != nil && req.UpdateTextStyle.FontFamily != "" {
			codeSpans = append(codeSpans, span)

			if req.UpdateTextStyle.FontFamily != domain.CodeFontFamily {
				t.Fatalf("unexpected font family: %q", req.UpdateTextStyle.FontFamily)
			}
			if req.UpdateTextStyle.FontSizePt != domain.CodeFontSizePt {
				t.Fatalf("unexpected font size: %v", req.UpdateTextStyle.FontSizePt)
			}
		}
	})

	if !strings.Contains(doc.text(), "\nCode block:\n") {
		t.Fatalf("expected code header, got %q", doc.text())
	}

	if len(codeSpans) != 1 {
		t.Fatalf("expected exactly one code style operation, got %d", len(codeSpans))
	}

	if codeSpans[0] != block {
		t.Fatalf("unexpected code span: %q", codeSpans[0])
	}
}

func TestCompileLinkRangeUsesRuneLengthForMultiByteURL(t *testing.T) {
	sourceURL := "https://例え.jp/ページ"
	requests := compiler.Compile(domain.ModelResult{
		SummaryLines: []string{"・foo"},
		PageTitle:    "タイトル",
		Keywords:     "a",
	}, sourceURL)

	var linkSpans []string
	replay(t, requests, func(req domain.Request, span string) {
		if req.UpdateTextStyle != nil && req.UpdateTextStyle.LinkURL != "" {
			linkSpans = append(linkSpans, span)

			if req.UpdateTextStyle.LinkURL != sourceURL {
				t.Fatalf("unexpected link URL: %q", req.UpdateTextStyle.LinkURL)
			}

			length := req.UpdateTextStyle.Range.End - req.UpdateTextStyle.Range.Start
			if length != int64(utf8.RuneCountInString(sourceURL)) {
				t.Fatalf("link range length %d does not match URL rune count %d",
					length, utf8.RuneCountInString(sourceURL))
			}
		}
	})

	if len(linkSpans) != 1 {
		t.Fatalf("expected exactly one link operation, got %d", len(linkSpans))
	}

	if linkSpans[0] != sourceURL {
		t.Fatalf("unexpected link span: %q", linkSpans[0])
	}
}

func TestCompileSecondLevelHeadingsCoverHeaderSubstrings(t *testing.T) {
	requests := compiler.Compile(domain.ModelResult{
		SummaryLines: []string{"・foo"},
		PageTitle:    "Example",
		Keywords:     "greeting, world",
	}, "https://example.com")

	var secondHeadings []string
	replay(t, requests, func(req domain.Request, span string) {
		if req.UpdateParagraphStyle != nil && req.UpdateParagraphStyle.Named == domain.HeadingSecond {
			secondHeadings = append(secondHeadings, span)
		}
	})

	want := []string{"2 - URL - Example", "3 - 関連キーワード"}
	if len(secondHeadings) != len(want) {
		t.Fatalf("expected %d second-level headings, got %d", len(want), len(secondHeadings))
	}
	for i, span := range secondHeadings {
		if span != want[i] {
			t.Fatalf("unexpected heading span at %d: got %q want %q", i, span, want[i])
		}
	}
}

func TestCompileEndToEndExample(t *testing.T) {
	sourceURL := "https://example.com"
	requests := compiler.Compile(domain.ModelResult{
		SummaryLines: []string{"・こんにちは世界"},
		CodeBlocks:   []string{"```python\nprint(1)\n```"},
		PageTitle:    "Example",
		Keywords:     "greeting, world",
	}, sourceURL)

	doc := replay(t, requests, func(domain.Request, string) {})

	want := "1 - Summary\n" +
		"・こんにちは世界\n" +
		"\nCode block:\n" +
		"```python\nprint(1)\n```\n\n" +
		"\n2 - URL - Example\n" +
		"https://example.com\n" +
		"\n3 - 関連キーワード\n" +
		"greeting, world\n"

	if doc.text() != want {
		t.Fatalf("unexpected document text:\ngot  %q\nwant %q", doc.text(), want)
	}
}

func TestCompileSectionOrderIsStable(t *testing.T) {
	requests := compiler.Compile(domain.ModelResult{
		SummaryLines: []string{"・foo"},
		CodeBlocks:   []string{"```\nx\n```"},
		PageTitle:    "Example",
		Keywords:     "a, b",
	}, "https://example.com")

	doc := replay(t, requests, func(domain.Request, string) {})

	text := doc.text()
	summaryAt := strings.Index(text, "1 - Summary")
	codeAt := strings.Index(text, "Code block:")
	urlAt := strings.Index(text, "2 - URL - ")
	keywordsAt := strings.Index(text, "3 - 関連キーワード")

	if summaryAt < 0 || codeAt < 0 || urlAt < 0 || keywordsAt < 0 {
		t.Fatalf("missing section in %q", text)
	}

	if !(summaryAt < codeAt && codeAt < urlAt && urlAt < keywordsAt) {
		t.Fatalf("sections out of order in %q", text)
	}
}
