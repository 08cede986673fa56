package handlers

import (
	"errors"
	"strconv"

	"doctor-portal-server/internal/middleware"
	"doctor-portal-server/internal/models"
	"doctor-portal-server/internal/store"
	"doctor-portal-server/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// currentPractitioner loads the signed-in practitioner. A session whose row
// has disappeared is treated as signed out. It returns false when a
// response has already been written.
func currentPractitioner(c *gin.Context, practitioners store.PractitionerStore, sessions *utils.SessionCodec, log zerolog.Logger) (*models.Practitioner, bool) {
	id, ok := middleware.GetPractitionerIDFromContext(c)
	if !ok {
		utils.Redirect(c, middleware.SignInPath)
		return nil, false
	}

	p, err := practitioners.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn().Uint("practitioner_id", id).Msg("session refers to a missing practitioner")
			sessions.Clear(c)
			utils.Redirect(c, middleware.SignInPath)
			return nil, false
		}
		log.Error().Err(err).Uint("practitioner_id", id).Msg("load practitioner")
		utils.InternalServerError(c)
		return nil, false
	}
	return p, true
}

// patientIDParam parses the :id path segment. Anything but a positive
// integer reads as not found.
func patientIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
