package translator

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"textdigest/internal/domain"
)

const summaryFallback = "和訳の取得に失敗しました。"

var (
	leadingFenceRe  = regexp.MustCompile("^```(?:json)?\\s*")
	trailingFenceRe = regexp.MustCompile("\\s*```$")
)

type modelPayload struct {
	TranslatedSummary string   `json:"translated_summary"`
	CodeBlocks        []string `json:"code_blocks"`
	PageTitle         string   `json:"page_title"`
	Keywords          string   `json:"keywords"`
}

// Parse distills one raw model response into a fully populated ModelResult.
// The model is asked to emit fenced JSON but does not reliably do so, so the
// fences are stripped first. Parse is total: malformed output degrades into
// a result whose summary carries the diagnostic and the raw text, so the
// request still publishes a document reporting the failure.
func Parse(raw string) domain.ModelResult {
	cleaned := strings.TrimSpace(raw)
	cleaned = leadingFenceRe.ReplaceAllString(cleaned, "")
	cleaned = trailingFenceRe.ReplaceAllString(cleaned, "")

	var payload modelPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		diagnostic := fmt.Sprintf("モデル応答のJSON解析失敗: %v\nRaw: %s", err, raw)

		return domain.ModelResult{
			SummaryLines: strings.Split(diagnostic, "\n"),
			PageTitle:    domain.PageTitleFailure,
			Keywords:     domain.KeywordsFailure,
		}
	}

	summary := payload.TranslatedSummary
	if strings.TrimSpace(summary) == "" {
		summary = summaryFallback
	}

	pageTitle := strings.TrimSpace(payload.PageTitle)
	if pageTitle == "" {
		pageTitle = domain.PageTitleFailure
	}

	keywords := strings.TrimSpace(payload.Keywords)
	if keywords == "" {
		keywords = domain.KeywordsFailure
	}

	return domain.ModelResult{
		SummaryLines: strings.Split(summary, "\n"),
		CodeBlocks:   payload.CodeBlocks,
		PageTitle:    pageTitle,
		Keywords:     keywords,
	}
}

// Degraded builds the fallback result for a failed model call, mirroring the
// shape Parse produces for malformed output.
func Degraded(err error) domain.ModelResult {
	return domain.ModelResult{
		SummaryLines: []string{fmt.Sprintf("モデル呼び出しエラー: %v", err)},
		PageTitle:    domain.PageTitleFailure,
		Keywords:     domain.KeywordsFailure,
	}
}
