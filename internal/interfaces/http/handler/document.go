// Package handler provides the HTTP handlers
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"docgen-api/internal/application/document"
	"docgen-api/internal/interfaces/http/dto"
	apperrors "docgen-api/pkg/errors"
)

// Route suffixes of every document type
const (
	PreviewSuffix  = "_generator"
	DownloadSuffix = "_download"
	DocsPrefix     = "/docs/"
)

// PreviewPath is the preview route of slug
func PreviewPath(slug string) string { return DocsPrefix + slug + PreviewSuffix }

// DownloadPath is the download route of slug
func DownloadPath(slug string) string { return DocsPrefix + slug + DownloadSuffix }

// DocumentHandler serves the preview and download routes
type DocumentHandler struct {
	svc *document.Service
}

func NewDocumentHandler(svc *document.Service) *DocumentHandler {
	return &DocumentHandler{svc: svc}
}

// Register adds the two routes of every registered document type
func (h *DocumentHandler) Register(r gin.IRoutes) {
	for _, slug := range h.svc.Registry().Slugs() {
		r.POST(PreviewPath(slug), h.Preview(slug))
		r.POST(DownloadPath(slug), h.Download(slug))
	}
	r.GET(DocsPrefix+"types", h.Types)
}

// Preview answers 200 {"data": "<text>"}
// @Summary Preview a document
// @Accept json
// @Produce json
// @Success 200 {object} dto.PreviewResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /docs/{slug}_generator [post]
func (h *DocumentHandler) Preview(slug string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := readBody(c)
		if err != nil {
			dto.Error(c, err)
			return
		}
		text, err := h.svc.Preview(c.Request.Context(), slug, raw)
		if err != nil {
			dto.Error(c, err)
			return
		}
		dto.Preview(c, text)
	}
}

// Download answers with the packed document as an attachment
// @Summary Download a document
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.wordprocessingml.document
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /docs/{slug}_download [post]
func (h *DocumentHandler) Download(slug string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := readBody(c)
		if err != nil {
			dto.Error(c, err)
			return
		}
		f, err := h.svc.Download(c.Request.Context(), slug, raw)
		if err != nil {
			dto.Error(c, err)
			return
		}
		dto.Attachment(c, f.Name, f.ContentType, f.Data)
	}
}

// Types lists the registered document types
func (h *DocumentHandler) Types(c *gin.Context) {
	types := h.svc.Registry().Types()
	out := dto.DocumentTypeList{Types: make([]dto.DocumentType, 0, len(types))}
	for _, t := range types {
		out.Types = append(out.Types, dto.DocumentType{
			Slug:         t.Slug,
			Title:        t.Title,
			Producer:     t.Producer.Name(),
			Template:     t.TemplateID(),
			Filename:     t.Filename,
			PreviewPath:  PreviewPath(t.Slug),
			DownloadPath: DownloadPath(t.Slug),
		})
	}
	c.JSON(http.StatusOK, out)
}

func readBody(c *gin.Context) ([]byte, error) {
	raw, err := c.GetRawData()
	if err == nil {
		return raw, nil
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return nil, apperrors.Wrap(err, apperrors.CodeTooLarge, "request body too large").
			WithDetail("Request body exceeds the size limit")
	}
	return nil, apperrors.Wrap(err, apperrors.CodeInvalidParam, "invalid parameter").
		WithDetail("Could not read the request body")
}
