// Package document publishes compiled edit batches as shared online
// documents.
package document

import (
	"context"
	"fmt"

	"textdigest/internal/domain"
)

// Service is the capability handle to the document backend. Implementations
// must apply a batch atomically: either every operation lands or none do.
type Service interface {
	Create(ctx context.Context, title string) (id, url string, err error)
	Share(ctx context.Context, id, email string) error
	ApplyBatch(ctx context.Context, id string, requests []domain.Request) error
	Delete(ctx context.Context, id string) error
}

// CreateError reports a failed document creation. No rollback is needed: the
// document never existed.
type CreateError struct {
	Err error
}

func (e *CreateError) Error() string {
	return fmt.Sprintf("create document: %v", e.Err)
}

func (e *CreateError) Unwrap() error {
	return e.Err
}

// BatchError reports a rejected edit batch against an already created
// document.
type BatchError struct {
	DocumentID string
	Err        error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("apply batch to document %s: %v", e.DocumentID, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}
