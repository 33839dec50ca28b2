// Settings HTTP handlers.
//
//   - GET  /settings         (current coaching settings)
//   - PUT  /settings         (replace, validated)
//   - POST /settings/reset   (restore defaults)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-coach-backend/internal/domain"
)

// GetSettings godoc
// @ID          getSettings
// @Summary     Get coaching settings
// @Tags        Settings
// @Produce     json
// @Success     200  {object}  domain.CoachingSettings
// @Router      /settings [get]
func (h *Handlers) GetSettings(c *gin.Context) {
	ok(c, http.StatusOK, h.settings.Get())
}

// UpdateSettings godoc
// @ID          updateSettings
// @Summary     Replace coaching settings
// @Description Requires at least one non-blank alignment principle and style levels between 1 and 10.
// @Tags        Settings
// @Accept      json
// @Produce     json
// @Param       body  body  domain.CoachingSettings  true  "New settings"
// @Success     200  {object}  domain.CoachingSettings
// @Failure     400  {object}  handlers.ErrorResponse  "Malformed JSON"
// @Failure     422  {object}  handlers.ErrorResponse  "Invalid settings"
// @Failure     500  {object}  handlers.ErrorResponse  "Settings could not be saved"
// @Router      /settings [put]
func (h *Handlers) UpdateSettings(c *gin.Context) {
	var req domain.CoachingSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "settings JSON required")
		return
	}
	cur, err := h.settings.Update(c.Request.Context(), req)
	if err != nil {
		failErr(c, err, ErrCodeSettingsFailed)
		return
	}
	ok(c, http.StatusOK, cur)
}

// ResetSettings godoc
// @ID          resetSettings
// @Summary     Restore default coaching settings
// @Tags        Settings
// @Produce     json
// @Success     200  {object}  domain.CoachingSettings
// @Failure     500  {object}  handlers.ErrorResponse  "Settings could not be saved"
// @Router      /settings/reset [post]
func (h *Handlers) ResetSettings(c *gin.Context) {
	cur, err := h.settings.Reset(c.Request.Context())
	if err != nil {
		failErr(c, err, ErrCodeSettingsFailed)
		return
	}
	ok(c, http.StatusOK, cur)
}
