package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"travro/internal/apperr"
	"travro/internal/blob"
)

// formImage reads an optional multipart file field. A missing field, or a
// request that is not multipart at all, yields a nil upload.
func (h *Handler) formImage(c *gin.Context, field string) (*blob.Upload, func(), error) {
	noop := func() {}

	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, noop, nil
		}
		return nil, noop, fmt.Errorf("read %s: %v: %w", field, err, apperr.ErrInvalidInput)
	}
	if fh.Size > h.maxUploadBytes {
		return nil, noop, fmt.Errorf("%s larger than %d bytes: %w", field, h.maxUploadBytes, apperr.ErrInvalidInput)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, noop, fmt.Errorf("open %s: %w", field, err)
	}
	return &blob.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	}, func() { _ = f.Close() }, nil
}
