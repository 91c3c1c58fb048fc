package http

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// processScheduleReq binds either a multipart form (text, image, audio) or a JSON body {text}.
func (h *handler) processScheduleReq(c *gin.Context) (processReq, error) {
	var req processReq

	if !strings.HasPrefix(c.ContentType(), gin.MIMEMultipartPOSTForm) {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			return req, err
		}
		return req, nil
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 2*h.maxUpload)
	if err := c.Request.ParseMultipartForm(h.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return req, errFileTooLarge
		}
		return req, err
	}

	req.Text = c.PostForm("text")

	var err error
	if req.Image, req.ImageName, err = h.readFormFile(c, "image"); err != nil {
		return req, err
	}
	if req.Audio, req.AudioName, err = h.readFormFile(c, "audio"); err != nil {
		return req, err
	}
	return req, nil
}

// readFormFile returns nil data when the field is absent.
func (h *handler) readFormFile(c *gin.Context, field string) ([]byte, string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, "", nil
		}
		return nil, "", err
	}
	if fh.Size > h.maxUpload {
		return nil, "", errFileTooLarge
	}

	data, err := readAll(fh)
	if err != nil {
		return nil, "", err
	}
	return data, fh.Filename, nil
}

func readAll(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (h *handler) processPreviewQuery(c *gin.Context) (previewQuery, error) {
	var q previewQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return q, err
	}
	switch q.Format {
	case "", formatJSON, formatICS:
		return q, nil
	default:
		return q, errUnknownFormat
	}
}
