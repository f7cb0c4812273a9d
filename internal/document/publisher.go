package document

import (
	"context"
	"errors"
	"log/slog"

	"textdigest/internal/domain"
)

// Publisher creates a document, applies one compiled edit batch and shares
// the result. A rejected batch rolls the created document back so no
// half-written document survives a failed request.
type Publisher struct {
	service    Service
	shareEmail string
	log        *slog.Logger
}

// NewPublisher builds a publisher. shareEmail may be empty, in which case no
// reader grant is attempted.
func NewPublisher(service Service, shareEmail string, log *slog.Logger) *Publisher {
	return &Publisher{
		service:    service,
		shareEmail: shareEmail,
		log:        log,
	}
}

// Publish returns the URL of the created document. On a batch failure the
// document is deleted best-effort and the batch error is surfaced; a failed
// share or a failed rollback deletion is logged, never escalated.
func (p *Publisher) Publish(
	ctx context.Context,
	title string,
	requests []domain.Request,
) (string, error) {
	id, docURL, err := p.service.Create(ctx, title)
	if err != nil {
		return "", &CreateError{Err: err}
	}
	if id == "" {
		return "", &CreateError{Err: errors.New("no document ID returned")}
	}

	if p.shareEmail != "" {
		if shareErr := p.service.Share(ctx, id, p.shareEmail); shareErr != nil {
			p.log.WarnContext(ctx, "Failed to share document",
				"error", shareErr,
				"documentID", id,
				"shareEmail", p.shareEmail)
		} else {
			p.log.InfoContext(ctx, "Document is shared",
				"documentID", id,
				"shareEmail", p.shareEmail)
		}
	}

	if applyErr := p.service.ApplyBatch(ctx, id, requests); applyErr != nil {
		batchErr := &BatchError{DocumentID: id, Err: applyErr}

		if deleteErr := p.service.Delete(ctx, id); deleteErr != nil {
			p.log.ErrorContext(ctx, "Failed to delete partially created document",
				"error", deleteErr,
				"documentID", id)
		} else {
			p.log.InfoContext(ctx, "Cleaned up partially created document",
				"documentID", id)
		}

		return "", batchErr
	}

	return docURL, nil
}
