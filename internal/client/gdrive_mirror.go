package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"kanban-board-api/internal/metrics"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GDriveMirror uploads files into a Google Drive folder using a service
// account and shares each one as "anyone with the link can view".
type GDriveMirror struct {
	service  *drive.Service
	folderID string
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewGDriveMirror builds a Drive client from service-account JSON.
func NewGDriveMirror(ctx context.Context, credentialsJSON []byte, folderID string, m *metrics.Metrics, logger *zap.Logger) (*GDriveMirror, error) {
	if len(credentialsJSON) == 0 {
		return nil, fmt.Errorf("google drive credentials are required")
	}

	config, err := google.JWTConfigFromJSON(credentialsJSON, drive.DriveFileScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse google drive credentials: %w", err)
	}

	service, err := drive.NewService(ctx, option.WithHTTPClient(config.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create google drive service: %w", err)
	}

	return newGDriveMirror(service, folderID, m, logger), nil
}

func newGDriveMirror(service *drive.Service, folderID string, m *metrics.Metrics, logger *zap.Logger) *GDriveMirror {
	if folderID == "" {
		folderID = "root"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GDriveMirror{
		service:  service,
		folderID: folderID,
		metrics:  m,
		logger:   logger,
	}
}

func (g *GDriveMirror) Name() string { return "gdrive" }

// Upload creates the file and then grants public read access. A failed
// permission grant is logged; the file is still reported as mirrored.
func (g *GDriveMirror) Upload(ctx context.Context, name, contentType string, r io.Reader) (*MirroredFile, error) {
	start := time.Now()
	file, err := g.service.Files.Create(&drive.File{
		Name:    name,
		Parents: []string{g.folderID},
	}).
		Media(r, googleapi.ContentType(contentType)).
		Fields("id, webViewLink").
		Context(ctx).
		Do()
	g.metrics.RecordExternalAPICall("gdrive:files.create", "POST", googleStatus(file, err), time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to upload %q to google drive: %w", name, err)
	}

	start = time.Now()
	_, permErr := g.service.Permissions.Create(file.Id, &drive.Permission{
		Role: "reader",
		Type: "anyone",
	}).Context(ctx).Do()
	g.metrics.RecordExternalAPICall("gdrive:permissions.create", "POST", googleStatus(nil, permErr), time.Since(start), permErr)
	if permErr != nil {
		g.logger.Warn("Failed to share mirrored file",
			zap.String("file_id", file.Id),
			zap.Error(permErr),
		)
	}

	return &MirroredFile{ID: file.Id, URL: file.WebViewLink}, nil
}

func googleStatus(file *drive.File, err error) int {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	if err != nil {
		return 0
	}
	if file != nil && file.HTTPStatusCode != 0 {
		return file.HTTPStatusCode
	}
	return 200
}

var _ Mirror = (*GDriveMirror)(nil)
