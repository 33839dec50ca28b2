// Conversation HTTP handlers.
//
// This file exposes REST endpoints for the coaching conversation:
//   - POST /ask        (ask a question, get the assistant reply)
//   - GET  /messages   (paginated transcript with ETag support)
//
// Only one question is answered at a time; a question submitted while
// another is in flight is rejected with 409 rather than queued.
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-coach-backend/internal/domain"
	"github.com/tbourn/go-coach-backend/internal/utils"
)

//
// DTOs
//

// AskRequest is the JSON payload for a question.
type AskRequest struct {
	// Question is the user's question. It must not be blank.
	Question string `json:"question" binding:"required" example:"How can I grow my career this year?"`
	// Category optionally restricts retrieval; empty or "ALL" searches every document.
	Category string `json:"category,omitempty" example:"CAREER"`
}

// AskResponse carries the assistant reply.
type AskResponse struct {
	Message *domain.Message `json:"message"`
	// Sources are the distinct filenames that informed the answer, in rank order.
	Sources []string `json:"sources"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
}

// ListMessagesResponse contains a page of the transcript.
type ListMessagesResponse struct {
	Messages   []domain.Message `json:"messages"`
	Pagination Pagination       `json:"pagination"`
}

//
// Helpers
//

// clampPagination parses page/page_size query parameters with defaults and caps.
func clampPagination(c *gin.Context) (page, pageSize int) {
	page = utils.AtoiDefault(c.Query("page"), 1)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), utils.DefaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > utils.MaxPageSize {
		pageSize = utils.MaxPageSize
	}
	return
}

//
// Handlers
//

// Ask godoc
// @ID          ask
// @Summary     Ask the coach
// @Description Ranks the library against the question, asks the completion provider and appends both messages to the transcript.
// @Description If the provider fails, a fallback reply is recorded and returned with 200.
// @Description Supports safe retries via the Idempotency-Key header.
// @Tags        Conversation
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key  header  string               false  "Key for safe retries"
// @Param       body             body    handlers.AskRequest  true   "Question"
// @Success     200  {object}  handlers.AskResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Blank, too long, or unknown category"
// @Failure     409  {object}  handlers.ErrorResponse  "Another question is in flight"
// @Router      /ask [post]
func (h *Handlers) Ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "question required")
		return
	}

	msg, err := h.conv.Ask(c.Request.Context(), req.Question, req.Category)
	if err != nil {
		failErr(c, err, ErrCodeAnswerFailed)
		return
	}

	sources := msg.DisplaySources()
	if sources == nil {
		sources = []string{}
	}
	ok(c, http.StatusOK, AskResponse{Message: msg, Sources: sources})
}

// ListMessages godoc
// @ID          listMessages
// @Summary     List the transcript
// @Description Returns the conversation in chronological order, paginated. Responses carry a weak ETag; send If-None-Match to get 304 when nothing changed.
// @Tags        Conversation
// @Produce     json
// @Param       page       query  int  false  "Page number"     minimum(1) default(1)
// @Param       page_size  query  int  false  "Items per page"  minimum(1) maximum(100) default(20)
// @Success     200  {object}  handlers.ListMessagesResponse
// @Success     304  "Not modified"
// @Router      /messages [get]
func (h *Handlers) ListMessages(c *gin.Context) {
	page, pageSize := clampPagination(c)

	count, last := h.conv.Stats()
	etag := fmt.Sprintf(`W/"messages:%d:%d:%d:%d"`, count, last.UnixMilli(), page, pageSize)
	c.Header("ETag", etag)
	if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
		c.Status(http.StatusNotModified)
		return
	}

	items, total, err := h.conv.ListPage(c.Request.Context(), page, pageSize)
	if err != nil {
		failErr(c, err, ErrCodeInternal)
		return
	}
	if items == nil {
		items = []domain.Message{}
	}

	totalPages := (total + pageSize - 1) / pageSize
	ok(c, http.StatusOK, ListMessagesResponse{
		Messages: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}
