package handlers

import (
	"errors"
	"net/http"
	"strings"

	"doctor-portal-server/internal/middleware"
	"doctor-portal-server/internal/models"
	"doctor-portal-server/internal/store"
	"doctor-portal-server/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const invalidCredentials = "Invalid email or password"

// AuthHandler handles sign-in, sign-up and logout.
type AuthHandler struct {
	Practitioners store.PractitionerStore
	Sessions      *utils.SessionCodec
	Log           zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(practitioners store.PractitionerStore, sessions *utils.SessionCodec, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{Practitioners: practitioners, Sessions: sessions, Log: log}
}

// SigninPage renders the sign-in form.
func (h *AuthHandler) SigninPage(c *gin.Context) {
	data := gin.H{"Title": "Sign in", "Email": ""}
	if c.Query("registered") != "" {
		data["Notice"] = "Your account was created. Please sign in."
	}
	utils.Page(c, "signin.html", data)
}

// Signin verifies the credentials and starts a session. An unknown email
// and a wrong password look the same to the caller.
func (h *AuthHandler) Signin(c *gin.Context) {
	var req SigninForm
	bindErr := utils.BindAndValidate(c, &req)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	data := gin.H{"Title": "Sign in", "Email": email}
	if bindErr != nil {
		utils.FormError(c, http.StatusOK, "signin.html", data, invalidCredentials)
		return
	}

	practitioner, err := h.Practitioners.GetByEmail(c.Request.Context(), email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			h.Log.Error().Err(err).Msg("sign-in lookup")
			utils.InternalServerError(c)
			return
		}
		utils.FormError(c, http.StatusOK, "signin.html", data, invalidCredentials)
		return
	}

	if !practitioner.CheckPassword(req.Password) {
		utils.FormError(c, http.StatusOK, "signin.html", data, invalidCredentials)
		return
	}

	if err := h.Sessions.Issue(c, practitioner.ID); err != nil {
		h.Log.Error().Err(err).Msg("issue session")
		utils.InternalServerError(c)
		return
	}

	h.Log.Info().Uint("practitioner_id", practitioner.ID).Msg("signed in")
	utils.Redirect(c, "/dashboard")
}

// SignupPage renders the registration form.
func (h *AuthHandler) SignupPage(c *gin.Context) {
	utils.Page(c, "signup.html", gin.H{"Title": "Sign up", "Form": SignupForm{}})
}

// Signup creates a practitioner account.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupForm
	data := gin.H{"Title": "Sign up"}
	err := utils.BindAndValidate(c, &req)
	password := req.Password
	req.Password = ""
	data["Form"] = req
	if err != nil {
		utils.FormError(c, http.StatusBadRequest, "signup.html", data, err.Error())
		return
	}

	practitioner := models.Practitioner{}
	if err := req.apply(&practitioner); err != nil {
		utils.FormError(c, http.StatusBadRequest, "signup.html", data, err.Error())
		return
	}

	taken, err := h.Practitioners.EmailTaken(c.Request.Context(), practitioner.Email, 0)
	if err != nil {
		h.Log.Error().Err(err).Msg("sign-up email check")
		utils.InternalServerError(c)
		return
	}
	if taken {
		utils.FormError(c, http.StatusConflict, "signup.html", data, "An account with this email already exists")
		return
	}

	if err := practitioner.SetPassword(password); err != nil {
		h.Log.Error().Err(err).Msg("hash password")
		utils.InternalServerError(c)
		return
	}

	if err := h.Practitioners.Create(c.Request.Context(), &practitioner); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			utils.FormError(c, http.StatusConflict, "signup.html", data, "An account with this email already exists")
			return
		}
		h.Log.Error().Err(err).Msg("create practitioner")
		utils.InternalServerError(c)
		return
	}

	h.Log.Info().Uint("practitioner_id", practitioner.ID).Msg("practitioner registered")
	utils.Redirect(c, middleware.SignInPath+"?registered=1")
}

// Logout ends the session. It is safe to call without one.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Sessions.Clear(c)
	utils.Redirect(c, middleware.SignInPath)
}
