package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"kanban-board-api/internal/client"
	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/metrics"
	"kanban-board-api/internal/repository"
	"kanban-board-api/internal/response"
)

// RecentUploadsLimit caps ListUploads.
const RecentUploadsLimit = 50

// UploadService stages, mirrors and records uploaded files
type UploadService interface {
	Upload(ctx context.Context, in *UploadInput) (*UploadResult, error)
	ListUploads(ctx context.Context) ([]*domain.Upload, error)
	// MirrorName is "" when no mirror is configured.
	MirrorName() string
}

// UploadInput is one file taken from a multipart request
type UploadInput struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// UploadResult carries the stored record and how the file was handled
type UploadResult struct {
	Upload  *domain.Upload
	Outcome string
}

// Mirrored reports whether a remote copy was made.
func (r *UploadResult) Mirrored() bool {
	return r.Outcome == metrics.OutcomeMirrored
}

// UploadConfig holds the tunables of UploadService
type UploadConfig struct {
	StagingDir    string
	MaxSize       int64
	MirrorTimeout time.Duration
}

type uploadServiceImpl struct {
	repo    repository.UploadRepository
	mirror  client.Mirror
	cfg     UploadConfig
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewUploadService creates a new instance of UploadService. mirror may be
// nil, in which case every upload is stored as metadata only.
func NewUploadService(repo repository.UploadRepository, mirror client.Mirror, cfg UploadConfig, m *metrics.Metrics, logger *zap.Logger) UploadService {
	if cfg.StagingDir == "" {
		cfg.StagingDir = os.TempDir()
	}
	if cfg.MirrorTimeout <= 0 {
		cfg.MirrorTimeout = 60 * time.Second
	}
	return &uploadServiceImpl{
		repo:    repo,
		mirror:  mirror,
		cfg:     cfg,
		metrics: m,
		logger:  logger,
	}
}

func (s *uploadServiceImpl) MirrorName() string {
	if s.mirror == nil {
		return ""
	}
	return s.mirror.Name()
}

// Upload stages the file, mirrors it when a mirror is configured, removes
// the staged copy and inserts the metadata record. A mirror failure is
// logged and downgrades the outcome to metadata only.
func (s *uploadServiceImpl) Upload(ctx context.Context, in *UploadInput) (*UploadResult, error) {
	if in == nil || in.Body == nil {
		return nil, response.NewAppError(response.ErrCodeValidation, "No file uploaded", "")
	}

	filename := sanitizeFilename(in.Filename)
	contentType := in.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	staged, size, err := s.stage(filename, in.Body)
	if staged != nil {
		defer s.discard(staged)
	}
	if err != nil {
		return nil, err
	}

	upload := &domain.Upload{
		Filename:    filename,
		ContentType: contentType,
		Size:        size,
	}

	outcome := metrics.OutcomeMetadataOnly
	if s.mirror != nil {
		if remote := s.mirrorFile(ctx, staged, filename, contentType); remote != nil {
			backend := s.mirror.Name()
			upload.MirrorID = &remote.ID
			upload.MirrorURL = &remote.URL
			upload.MirrorBackend = &backend
			outcome = metrics.OutcomeMirrored
		}
	}

	if err := s.repo.Create(ctx, upload); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to record upload", err.Error())
	}

	s.metrics.RecordUpload(outcome)
	s.logger.Info("Upload processed",
		zap.Int64("upload_id", upload.ID),
		zap.String("filename", filename),
		zap.Int64("size", size),
		zap.String("outcome", outcome))

	return &UploadResult{Upload: upload, Outcome: outcome}, nil
}

// stage copies body into the staging directory. The returned file, when
// non-nil, must be discarded by the caller even if err is set.
func (s *uploadServiceImpl) stage(filename string, body io.Reader) (*os.File, int64, error) {
	if err := os.MkdirAll(s.cfg.StagingDir, 0o755); err != nil {
		return nil, 0, response.NewAppError(response.ErrCodeInternal, "Failed to stage upload", err.Error())
	}

	path := filepath.Join(s.cfg.StagingDir, uuid.New().String()+"_"+filename)
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, 0, response.NewAppError(response.ErrCodeInternal, "Failed to stage upload", err.Error())
	}

	src := body
	if s.cfg.MaxSize > 0 {
		src = io.LimitReader(body, s.cfg.MaxSize+1)
	}
	n, err := io.Copy(f, src)
	if err != nil {
		return f, 0, response.NewAppError(response.ErrCodeInternal, "Failed to stage upload", err.Error())
	}
	if s.cfg.MaxSize > 0 && n > s.cfg.MaxSize {
		return f, 0, response.NewAppError(response.ErrCodeTooLarge, "File too large",
			fmt.Sprintf("limit is %d bytes", s.cfg.MaxSize))
	}
	if n == 0 {
		return f, 0, response.NewAppError(response.ErrCodeValidation, "No file uploaded", "empty payload")
	}
	return f, n, nil
}

func (s *uploadServiceImpl) mirrorFile(ctx context.Context, staged *os.File, filename, contentType string) *client.MirroredFile {
	if _, err := staged.Seek(0, io.SeekStart); err != nil {
		s.logger.Error("Failed to rewind staged upload", zap.String("filename", filename), zap.Error(err))
		return nil
	}

	mctx, cancel := context.WithTimeout(ctx, s.cfg.MirrorTimeout)
	defer cancel()

	remote, err := s.mirror.Upload(mctx, filename, contentType, staged)
	if err != nil {
		s.logger.Warn("Mirror upload failed, keeping metadata only",
			zap.String("backend", s.mirror.Name()),
			zap.String("filename", filename),
			zap.Error(err))
		return nil
	}
	if remote == nil || remote.ID == "" {
		s.logger.Warn("Mirror returned no file id, keeping metadata only",
			zap.String("backend", s.mirror.Name()),
			zap.String("filename", filename))
		return nil
	}
	return remote
}

func (s *uploadServiceImpl) discard(f *os.File) {
	name := f.Name()
	if err := f.Close(); err != nil {
		s.logger.Warn("Failed to close staged upload", zap.String("path", name), zap.Error(err))
	}
	if err := os.Remove(name); err != nil && !os.IsNotExist(err) {
		s.logger.Error("Failed to remove staged upload", zap.String("path", name), zap.Error(err))
	}
}

// ListUploads returns the most recent upload records, newest first
func (s *uploadServiceImpl) ListUploads(ctx context.Context) ([]*domain.Upload, error) {
	uploads, err := s.repo.FindRecent(ctx, RecentUploadsLimit)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch uploads", err.Error())
	}
	return uploads, nil
}

// sanitizeFilename keeps the base name a client sent, without any path.
func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(strings.TrimSpace(name))
	if name == "." || name == "/" || name == "" {
		return "upload"
	}
	return name
}
