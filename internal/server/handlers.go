package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"textdigest/internal/compiler"
	"textdigest/internal/domain"
	"textdigest/internal/pagetitle"
	"textdigest/internal/translator"
)

const docTitleTextPrefixRunes = 20

type processRequest struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

type processResponse struct {
	DocumentURL string `json:"document_url"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleProcess(c echo.Context) error {
	ctx := c.Request().Context()

	var req processRequest
	if err := c.Bind(&req); err != nil {
		return s.respondError(c, http.StatusBadRequest, "request must be JSON")
	}

	pageURL := strings.TrimSpace(req.URL)
	if strings.TrimSpace(req.Text) == "" || pageURL == "" {
		return s.respondError(c, http.StatusBadRequest,
			"missing 'text' or 'url' in request body")
	}

	if s.urlRe.FindString(pageURL) != pageURL {
		return s.respondError(c, http.StatusBadRequest,
			"'url' must be a valid http(s) URL")
	}

	if s.translator == nil || s.publisher == nil {
		return s.respondError(c, http.StatusInternalServerError,
			"service clients failed to initialize, check logs")
	}

	s.log.InfoContext(ctx, "Processing document request",
		"pageURL", pageURL,
		"textLength", len(req.Text))

	result := s.translate(ctx, req.Text, pageURL)

	if result.PageTitle == domain.PageTitleFailure && s.titles != nil {
		if title := s.titles.Fetch(ctx, pageURL); title != "" && title != pagetitle.Failure {
			result.PageTitle = title
		}
	}

	requests := compiler.Compile(result, pageURL)
	title := documentTitle(result.PageTitle, req.Text)

	docURL, err := s.publisher.Publish(ctx, title, requests)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to publish document",
			"error", err,
			"pageURL", pageURL,
			"title", title)

		return s.respondError(c, http.StatusInternalServerError,
			fmt.Sprintf("an internal server error occurred: %v", err))
	}

	s.log.InfoContext(ctx, "Document is published",
		"documentURL", docURL,
		"pageURL", pageURL)

	s.requests.WithLabelValues("200").Inc()

	return c.JSON(http.StatusOK, processResponse{DocumentURL: docURL})
}

// translate runs the model call and distills its output. Model failures
// degrade into a diagnostic result so the request still publishes a document
// reporting them.
func (s *Server) translate(
	ctx context.Context,
	text, pageURL string,
) domain.ModelResult {
	raw, err := s.translator.Translate(ctx, text, pageURL)
	if err != nil {
		s.log.WarnContext(ctx, "Model call failed so degraded result is used",
			"error", err,
			"pageURL", pageURL)

		return translator.Degraded(err)
	}

	return translator.Parse(raw)
}

func (s *Server) respondError(c echo.Context, status int, msg string) error {
	s.requests.WithLabelValues(fmt.Sprint(status)).Inc()

	return c.JSON(status, errorResponse{Error: msg})
}

func documentTitle(pageTitle, text string) string {
	prefix := []rune(text)
	if len(prefix) > docTitleTextPrefixRunes {
		prefix = prefix[:docTitleTextPrefixRunes]
	}

	return fmt.Sprintf("%s - %s...", pageTitle, string(prefix))
}
