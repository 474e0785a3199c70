package controller

import (
	"os"
	"path/filepath"

	"qa-agent-be/internal/dto"
	"qa-agent-be/internal/pkg/serverutils"
	"qa-agent-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
	Reset(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService service.IDocumentService
	uploadDir       string
}

func NewDocumentController(documentService service.IDocumentService, uploadDir string) IDocumentController {
	return &documentController{
		documentService: documentService,
		uploadDir:       uploadDir,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/document/v1")
	h.Post("upload", c.Upload)
	h.Get("stats", c.Stats)
	h.Delete("reset", c.Reset)
}

// Upload accepts one or more files under the "files" multipart field. Files
// that fail validation or extraction are reported per entry without failing
// the whole batch.
func (c *documentController) Upload(ctx *fiber.Ctx) error {
	form, err := ctx.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "multipart form is required")
	}

	files := form.File["files"]
	if len(files) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no files provided")
	}

	if err := os.MkdirAll(c.uploadDir, 0o755); err != nil {
		return err
	}

	res := dto.UploadDocumentsResponse{Files: make([]dto.UploadedFileResult, 0, len(files))}
	for _, file := range files {
		result := dto.UploadedFileResult{
			Filename: file.Filename,
			Size:     int(file.Size),
		}

		if err := c.documentService.ValidateUpload(file.Filename, file.Size); err != nil {
			result.Error = err.Error()
			res.Files = append(res.Files, result)
			continue
		}

		destPath := filepath.Join(c.uploadDir, filepath.Base(file.Filename))
		if err := ctx.SaveFile(file, destPath); err != nil {
			result.Error = err.Error()
			res.Files = append(res.Files, result)
			continue
		}

		chunks, err := c.documentService.IngestFile(ctx.Context(), destPath)
		if err != nil {
			result.Error = err.Error()
			res.Files = append(res.Files, result)
			continue
		}

		result.ChunksCreated = chunks
		res.Files = append(res.Files, result)
		res.FilesProcessed++
		res.ChunksCreated += chunks
	}

	return ctx.JSON(serverutils.SuccessResponse("Success upload documents", res))
}

func (c *documentController) Stats(ctx *fiber.Ctx) error {
	res, err := c.documentService.Stats(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Knowledge base stats", res))
}

func (c *documentController) Reset(ctx *fiber.Ctx) error {
	if err := c.documentService.Reset(ctx.Context()); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Knowledge base reset", nil))
}
