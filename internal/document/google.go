package document

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"textdigest/internal/domain"
)

const docsMimeType = "application/vnd.google-apps.document"

// GoogleService implements Service over the Google Docs and Drive APIs with
// application default credentials.
type GoogleService struct {
	docs  *docs.Service
	drive *drive.Service
}

func NewGoogleService(ctx context.Context) (*GoogleService, error) {
	scopes := option.WithScopes(docs.DocumentsScope, drive.DriveFileScope)

	docsSvc, err := docs.NewService(ctx, scopes)
	if err != nil {
		return nil, fmt.Errorf("create docs service: %w", err)
	}

	driveSvc, err := drive.NewService(ctx, scopes)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}

	return &GoogleService{docs: docsSvc, drive: driveSvc}, nil
}

func (s *GoogleService) Create(
	ctx context.Context,
	title string,
) (string, string, error) {
	file, err := s.drive.Files.Create(&drive.File{
		Name:     title,
		MimeType: docsMimeType,
	}).Fields("id", "webViewLink").Context(ctx).Do()
	if err != nil {
		return "", "", fmt.Errorf("create file: %w", err)
	}

	return file.Id, file.WebViewLink, nil
}

func (s *GoogleService) Share(ctx context.Context, id, email string) error {
	_, err := s.drive.Permissions.Create(id, &drive.Permission{
		Type:         "user",
		Role:         "reader",
		EmailAddress: email,
	}).Fields("id").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("create permission: %w", err)
	}

	return nil
}

func (s *GoogleService) ApplyBatch(
	ctx context.Context,
	id string,
	requests []domain.Request,
) error {
	batch := make([]*docs.Request, 0, len(requests))
	for _, req := range requests {
		converted, err := toDocsRequest(req)
		if err != nil {
			return fmt.Errorf("convert request: %w", err)
		}

		batch = append(batch, converted)
	}

	_, err := s.docs.Documents.BatchUpdate(id, &docs.BatchUpdateDocumentRequest{
		Requests: batch,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("batch update: %w", err)
	}

	return nil
}

func (s *GoogleService) Delete(ctx context.Context, id string) error {
	if err := s.drive.Files.Delete(id).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete file: %w", err)
	}

	return nil
}

func toDocsRequest(req domain.Request) (*docs.Request, error) {
	switch {
	case req.InsertText != nil:
		return &docs.Request{
			InsertText: &docs.InsertTextRequest{
				Location: &docs.Location{Index: req.InsertText.Position},
				Text:     req.InsertText.Text,
			},
		}, nil
	case req.UpdateParagraphStyle != nil:
		return &docs.Request{
			UpdateParagraphStyle: &docs.UpdateParagraphStyleRequest{
				Range: toDocsRange(req.UpdateParagraphStyle.Range),
				ParagraphStyle: &docs.ParagraphStyle{
					NamedStyleType: req.UpdateParagraphStyle.Named,
				},
				Fields: "namedStyleType",
			},
		}, nil
	case req.CreateBullets != nil:
		return &docs.Request{
			CreateParagraphBullets: &docs.CreateParagraphBulletsRequest{
				Range:        toDocsRange(req.CreateBullets.Range),
				BulletPreset: req.CreateBullets.Preset,
			},
		}, nil
	case req.UpdateTextStyle != nil:
		style := &docs.TextStyle{}
		var fields []string

		if req.UpdateTextStyle.FontFamily != "" {
			style.WeightedFontFamily = &docs.WeightedFontFamily{
				FontFamily: req.UpdateTextStyle.FontFamily,
			}
			fields = append(fields, "weightedFontFamily")
		}
		if req.UpdateTextStyle.FontSizePt != 0 {
			style.FontSize = &docs.Dimension{
				Magnitude: req.UpdateTextStyle.FontSizePt,
				Unit:      "PT",
			}
			fields = append(fields, "fontSize")
		}
		if req.UpdateTextStyle.LinkURL != "" {
			style.Link = &docs.Link{Url: req.UpdateTextStyle.LinkURL}
			fields = append(fields, "link")
		}

		return &docs.Request{
			UpdateTextStyle: &docs.UpdateTextStyleRequest{
				Range:     toDocsRange(req.UpdateTextStyle.Range),
				TextStyle: style,
				Fields:    strings.Join(fields, ","),
			},
		}, nil
	default:
		return nil, errors.New("request with no operation set")
	}
}

func toDocsRange(r domain.Range) *docs.Range {
	return &docs.Range{StartIndex: r.Start, EndIndex: r.End}
}
