package handlers

import (
	"errors"
	"net/http"

	"doctor-portal-server/internal/middleware"
	"doctor-portal-server/internal/models"
	"doctor-portal-server/internal/store"
	"doctor-portal-server/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ProfileHandler serves the dashboard and the practitioner's own profile.
type ProfileHandler struct {
	Practitioners store.PractitionerStore
	Patients      store.PatientStore
	Sessions      *utils.SessionCodec
	Log           zerolog.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(practitioners store.PractitionerStore, patients store.PatientStore, sessions *utils.SessionCodec, log zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{Practitioners: practitioners, Patients: patients, Sessions: sessions, Log: log}
}

// Dashboard greets the practitioner with a summary of their patients.
func (h *ProfileHandler) Dashboard(c *gin.Context) {
	practitioner, ok := currentPractitioner(c, h.Practitioners, h.Sessions, h.Log)
	if !ok {
		return
	}

	count, err := h.Patients.CountByPractitioner(c.Request.Context(), practitioner.ID)
	if err != nil {
		h.Log.Error().Err(err).Msg("count patients")
		utils.InternalServerError(c)
		return
	}

	utils.Page(c, "dashboard.html", gin.H{
		"Title":        "Dashboard",
		"Practitioner": practitioner,
		"PatientCount": count,
	})
}

func (h *ProfileHandler) profilePage(c *gin.Context, status int, practitioner, profile *models.Practitioner, message string) {
	data := gin.H{
		"Title":        "My profile",
		"Practitioner": practitioner,
		"Profile":      profile,
	}
	if status == http.StatusOK {
		switch {
		case c.Query("updated") != "":
			data["Notice"] = "Profile updated."
		case c.Query("password") != "":
			data["Notice"] = "Password updated."
		}
		utils.Page(c, "profile.html", data)
		return
	}
	utils.FormError(c, status, "profile.html", data, message)
}

// GetProfile renders the signed-in practitioner's own record.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	practitioner, ok := currentPractitioner(c, h.Practitioners, h.Sessions, h.Log)
	if !ok {
		return
	}
	h.profilePage(c, http.StatusOK, practitioner, practitioner, "")
}

// UpdateProfile rewrites the signed-in practitioner's record. The target
// row is always the session's; nothing in the form can redirect the write.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	practitioner, ok := currentPractitioner(c, h.Practitioners, h.Sessions, h.Log)
	if !ok {
		return
	}

	var req ProfileForm
	bindErr := utils.BindAndValidate(c, &req)
	updated := *practitioner
	if err := req.apply(&updated); err != nil && bindErr == nil {
		bindErr = err
	}
	if bindErr != nil {
		h.profilePage(c, http.StatusBadRequest, practitioner, &updated, bindErr.Error())
		return
	}

	ctx := c.Request.Context()
	if updated.Email != practitioner.Email {
		taken, err := h.Practitioners.EmailTaken(ctx, updated.Email, practitioner.ID)
		if err != nil {
			h.Log.Error().Err(err).Msg("profile email check")
			utils.InternalServerError(c)
			return
		}
		if taken {
			h.profilePage(c, http.StatusConflict, practitioner, &updated, "Another account already uses this email")
			return
		}
	}

	if err := h.Practitioners.UpdateProfile(ctx, practitioner.ID, &updated); err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateEmail):
			h.profilePage(c, http.StatusConflict, practitioner, &updated, "Another account already uses this email")
		case errors.Is(err, store.ErrNotFound):
			h.Sessions.Clear(c)
			utils.Redirect(c, middleware.SignInPath)
		default:
			h.Log.Error().Err(err).Msg("update profile")
			utils.InternalServerError(c)
		}
		return
	}

	utils.Redirect(c, "/my-profile?updated=1")
}

// UpdatePassword changes the password after re-checking the current one.
// A mismatched confirmation or a wrong current password is a 400 and
// nothing is written.
func (h *ProfileHandler) UpdatePassword(c *gin.Context) {
	var req PasswordForm
	bindErr := utils.BindAndValidate(c, &req)

	practitioner, ok := currentPractitioner(c, h.Practitioners, h.Sessions, h.Log)
	if !ok {
		return
	}

	switch {
	case bindErr != nil:
		h.profilePage(c, http.StatusBadRequest, practitioner, practitioner, bindErr.Error())
		return
	case req.NewPassword != req.ConfirmPassword:
		h.profilePage(c, http.StatusBadRequest, practitioner, practitioner, "New password and confirmation do not match")
		return
	case !practitioner.CheckPassword(req.OldPassword):
		h.profilePage(c, http.StatusBadRequest, practitioner, practitioner, "Current password is incorrect")
		return
	}

	hash, err := models.HashPassword(req.NewPassword)
	if err != nil {
		h.Log.Error().Err(err).Msg("hash password")
		utils.InternalServerError(c)
		return
	}

	// Read-then-write with no lock: two concurrent changes from the same
	// account can interleave, and the last write wins.
	if err := h.Practitioners.UpdatePassword(c.Request.Context(), practitioner.ID, hash); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.Sessions.Clear(c)
			utils.Redirect(c, middleware.SignInPath)
			return
		}
		h.Log.Error().Err(err).Msg("update password")
		utils.InternalServerError(c)
		return
	}

	h.Log.Info().Uint("practitioner_id", practitioner.ID).Msg("password updated")
	utils.Redirect(c, "/my-profile?password=updated")
}
