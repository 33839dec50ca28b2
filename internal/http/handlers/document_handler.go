// Document library HTTP handlers.
//
// This file exposes REST endpoints for the document library:
//   - GET    /categories                      (taxonomy with document counts)
//   - POST   /documents                       (multipart upload, per-file report)
//   - GET    /documents                       (summaries, optional ?category=)
//   - GET    /documents/{filename}            (one document with its chunks)
//   - PUT    /documents/{filename}/category   (category override)
//   - DELETE /documents/{filename}            (remove)
//   - DELETE /data?confirm=true               (clear documents and transcript)
package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-coach-backend/internal/domain"
	"github.com/tbourn/go-coach-backend/internal/services"
)

// UploadFormField is the multipart field carrying the uploaded files.
const UploadFormField = "files"

//
// DTOs
//

// CategoriesResponse lists the taxonomy in canonical order.
type CategoriesResponse struct {
	Categories []services.CategoryCount `json:"categories"`
}

// UploadResponse reports the outcome of every uploaded file, in order.
type UploadResponse struct {
	Results  []services.IngestResult `json:"results"`
	Ingested int                     `json:"ingested" example:"2"`
}

// ListDocumentsResponse wraps document summaries.
type ListDocumentsResponse struct {
	Documents []domain.DocumentSummary `json:"documents"`
}

// SetCategoryRequest overrides a document's category.
type SetCategoryRequest struct {
	Category string `json:"category" binding:"required" example:"CAREER"`
}

//
// Handlers
//

// ListCategories godoc
// @ID          listCategories
// @Summary     List categories
// @Description Returns the ten categories in canonical order with their glyph, color, description and document count.
// @Tags        Documents
// @Produce     json
// @Success     200  {object}  handlers.CategoriesResponse
// @Router      /categories [get]
func (h *Handlers) ListCategories(c *gin.Context) {
	ok(c, http.StatusOK, CategoriesResponse{Categories: h.lib.Categories()})
}

// UploadDocuments godoc
// @ID          uploadDocuments
// @Summary     Upload documents
// @Description Ingests .txt/.md (or text/plain) files sequentially: each file is chunked, categorized and stored.
// @Description Unsupported or oversized files are skipped and filenames already in the library are reported as duplicates.
// @Tags        Documents
// @Accept      multipart/form-data
// @Produce     json
// @Param       files  formData  file  true  "One or more text files"
// @Success     200  {object}  handlers.UploadResponse
// @Failure     400  {object}  handlers.ErrorResponse  "No files"
// @Failure     413  {object}  handlers.ErrorResponse  "Request too large"
// @Router      /documents [post]
func (h *Handlers) UploadDocuments(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			fail(c, http.StatusRequestEntityTooLarge, ErrCodeTooLarge, "upload exceeds the request size limit")
			return
		}
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "multipart form with a \"files\" field required")
		return
	}
	files := form.File[UploadFormField]
	if len(files) == 0 {
		fail(c, http.StatusBadRequest, ErrCodeNoFiles, "no files uploaded")
		return
	}

	uploads := make([]services.Upload, 0, len(files))
	for _, fh := range files {
		uploads = append(uploads, toUpload(fh))
	}

	results := h.lib.Ingest(c.Request.Context(), uploads)
	n := 0
	for _, r := range results {
		if r.Status == services.IngestIngested {
			n++
		}
	}
	ok(c, http.StatusOK, UploadResponse{Results: results, Ingested: n})
}

// ListDocuments godoc
// @ID          listDocuments
// @Summary     List documents
// @Description Returns document summaries, optionally restricted to one category ("ALL" or empty means every document).
// @Tags        Documents
// @Produce     json
// @Param       category  query  string  false  "Category filter"  example(CAREER)
// @Success     200  {object}  handlers.ListDocumentsResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Unknown category"
// @Router      /documents [get]
func (h *Handlers) ListDocuments(c *gin.Context) {
	docs, err := h.lib.List(c.Query("category"))
	if err != nil {
		failErr(c, err, ErrCodeInternal)
		return
	}
	if docs == nil {
		docs = []domain.DocumentSummary{}
	}
	ok(c, http.StatusOK, ListDocumentsResponse{Documents: docs})
}

// GetDocument godoc
// @ID          getDocument
// @Summary     Get a document
// @Description Returns one document including its chunks.
// @Tags        Documents
// @Produce     json
// @Param       filename  path  string  true  "Document filename"  example(goals.md)
// @Success     200  {object}  domain.Document
// @Failure     404  {object}  handlers.ErrorResponse  "Document not found"
// @Router      /documents/{filename} [get]
func (h *Handlers) GetDocument(c *gin.Context) {
	d, err := h.lib.Get(c.Param("filename"))
	if err != nil {
		failErr(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, d)
}

// SetDocumentCategory godoc
// @ID          setDocumentCategory
// @Summary     Override a document's category
// @Tags        Documents
// @Accept      json
// @Produce     json
// @Param       filename  path  string                       true  "Document filename"
// @Param       body      body  handlers.SetCategoryRequest  true  "New category"
// @Success     200  {object}  domain.DocumentSummary
// @Failure     400  {object}  handlers.ErrorResponse  "Unknown category"
// @Failure     404  {object}  handlers.ErrorResponse  "Document not found"
// @Router      /documents/{filename}/category [put]
func (h *Handlers) SetDocumentCategory(c *gin.Context) {
	var req SetCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "category required")
		return
	}
	sum, err := h.lib.SetCategory(c.Request.Context(), c.Param("filename"), req.Category)
	if err != nil {
		failErr(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, sum)
}

// DeleteDocument godoc
// @ID          deleteDocument
// @Summary     Remove a document
// @Tags        Documents
// @Param       filename  path  string  true  "Document filename"
// @Success     204  "Removed"
// @Failure     404  {object}  handlers.ErrorResponse  "Document not found"
// @Router      /documents/{filename} [delete]
func (h *Handlers) DeleteDocument(c *gin.Context) {
	if err := h.lib.Remove(c.Request.Context(), c.Param("filename")); err != nil {
		failErr(c, err, ErrCodeInternal)
		return
	}
	noContent(c)
}

// ClearData godoc
// @ID          clearData
// @Summary     Clear all documents and messages
// @Description Irreversibly deletes every document and the whole transcript. Coaching settings are kept.
// @Description Requires confirm=true.
// @Tags        Data
// @Param       confirm  query  bool  true  "Must be true"
// @Success     204  "Cleared"
// @Failure     400  {object}  handlers.ErrorResponse  "Confirmation missing"
// @Failure     500  {object}  handlers.ErrorResponse  "Clear failed"
// @Router      /data [delete]
func (h *Handlers) ClearData(c *gin.Context) {
	if c.Query("confirm") != "true" {
		fail(c, http.StatusBadRequest, ErrCodeConfirmRequired, "clearing all data is irreversible; pass confirm=true")
		return
	}
	if err := h.lib.ClearAll(c.Request.Context()); err != nil {
		failErr(c, err, ErrCodeClearFailed)
		return
	}
	if h.OnClear != nil {
		h.OnClear()
	}
	noContent(c)
}

// toUpload adapts a multipart file header to a services.Upload.
func toUpload(fh *multipart.FileHeader) services.Upload {
	return services.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			f, err := fh.Open()
			if err != nil {
				return nil, err
			}
			return f, nil
		},
	}
}
