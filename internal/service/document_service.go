package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"qa-agent-be/internal/dto"
	"qa-agent-be/pkg/extract"
)

// ErrFileTooLarge rejects uploads over the configured size limit.
var ErrFileTooLarge = errors.New("file exceeds maximum allowed size")

type IDocumentService interface {
	ValidateUpload(fileName string, size int64) error
	IngestFile(ctx context.Context, filePath string) (int, error)
	Stats(ctx context.Context) (*dto.KnowledgeStatsResponse, error)
	Reset(ctx context.Context) error
}

type documentService struct {
	knowledgeService IKnowledgeService
	uploadDir        string
	maxFileSize      int64
}

func NewDocumentService(
	knowledgeService IKnowledgeService,
	uploadDir string,
	maxFileSize int64,
) IDocumentService {
	return &documentService{
		knowledgeService: knowledgeService,
		uploadDir:        uploadDir,
		maxFileSize:      maxFileSize,
	}
}

func (s *documentService) ValidateUpload(fileName string, size int64) error {
	if !extract.Supported(fileName) {
		return fmt.Errorf("%w: %s", extract.ErrUnsupportedFileType, fileName)
	}
	if size > s.maxFileSize {
		return fmt.Errorf("%w: %s (%d bytes, limit %d)", ErrFileTooLarge, fileName, size, s.maxFileSize)
	}
	return nil
}

// IngestFile extracts a saved upload and feeds it into the knowledge base.
// Returns the number of chunks created.
func (s *documentService) IngestFile(ctx context.Context, filePath string) (int, error) {
	doc, err := extract.Process(filePath)
	if err != nil {
		return 0, err
	}
	return s.knowledgeService.Ingest(ctx, doc)
}

func (s *documentService) Stats(ctx context.Context) (*dto.KnowledgeStatsResponse, error) {
	return s.knowledgeService.Stats(ctx)
}

// Reset drops the knowledge base and wipes the upload directory.
func (s *documentService) Reset(ctx context.Context) error {
	if err := s.knowledgeService.Reset(ctx); err != nil {
		return err
	}

	if s.uploadDir != "" && s.uploadDir != "/" {
		if err := os.RemoveAll(filepath.Clean(s.uploadDir)); err != nil {
			return err
		}
		if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
			return err
		}
	}

	return nil
}
