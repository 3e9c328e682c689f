package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"careerlink/internal/delivery/http/middleware"
	"careerlink/internal/infrastructure/storage"

	"github.com/gofiber/fiber/v3"
)

type FileStore interface {
	Save(k storage.Kind, originalName string, src io.Reader) (string, error)
	Remove(publicPath string) error
}

// receiveUpload stores the multipart file sent on kind's field and returns
// its public path.
func receiveUpload(c fiber.Ctx, files FileStore, kind storage.Kind) (string, error) {
	fh, err := c.FormFile(kind.Field)
	if err != nil || fh == nil {
		return "", middleware.NewAppError(fiber.StatusBadRequest, "No file uploaded", nil, err)
	}

	src, err := fh.Open()
	if err != nil {
		return "", middleware.NewAppError(fiber.StatusBadRequest, "No file uploaded", nil, err)
	}
	defer src.Close()

	path, err := files.Save(kind, fh.Filename, src)
	if err != nil {
		return "", mapStorageError(kind, err)
	}
	return path, nil
}

func mapStorageError(kind storage.Kind, err error) error {
	switch {
	case errors.Is(err, storage.ErrEmptyFile):
		return middleware.NewAppError(fiber.StatusBadRequest, "No file uploaded", nil, err)
	case errors.Is(err, storage.ErrFileTooLarge):
		return middleware.NewAppError(fiber.StatusBadRequest, "File too large", nil, err)
	case errors.Is(err, storage.ErrUnsupportedType):
		return middleware.NewAppError(fiber.StatusBadRequest, fmt.Sprintf("Invalid file type. Allowed: %s", kind.Allowed()), nil, err)
	case errors.Is(err, storage.ErrInvalidFile):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid file content", nil, err)
	}
	return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
}

// discardUpload removes a stored file whose owning update failed.
func discardUpload(files FileStore, path string, logger *slog.Logger) {
	if err := files.Remove(path); err != nil {
		logger.Warn("discard upload failed", "path", path, "err", err)
	}
}
