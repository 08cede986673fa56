package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"doctor-portal-server/internal/models"
	"doctor-portal-server/internal/store"
	"doctor-portal-server/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const uploadField = "file_upload"

// PatientHandler handles the practitioner's patient registry. Every read
// and write goes through an owner-scoped store call, so another
// practitioner's patient is indistinguishable from a missing one.
type PatientHandler struct {
	Practitioners  store.PractitionerStore
	Patients       store.PatientStore
	Sessions       *utils.SessionCodec
	UploadDir      string
	MaxUploadBytes int64
	Log            zerolog.Logger
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(practitioners store.PractitionerStore, patients store.PatientStore, sessions *utils.SessionCodec, uploadDir string, maxUploadBytes int64, log zerolog.Logger) *PatientHandler {
	return &PatientHandler{
		Practitioners:  practitioners,
		Patients:       patients,
		Sessions:       sessions,
		UploadDir:      uploadDir,
		MaxUploadBytes: maxUploadBytes,
		Log:            log,
	}
}

func uploadErrorMessage(err error) string {
	switch {
	case errors.Is(err, utils.ErrUploadTooLarge):
		return "The document is too large"
	case errors.Is(err, utils.ErrUploadType):
		return "Documents must be PDF, image, text or Word files"
	default:
		return "The document could not be uploaded"
	}
}

// RegisterPatientPage renders an empty patient form.
func (h *PatientHandler) RegisterPatientPage(c *gin.Context) {
	practitioner, ok := currentPractitioner(c, h.Practitioners, h.Sessions, h.Log)
	if !ok {
		return
	}
	utils.Page(c, "register_patient.html", gin.H{
		"Title":        "Register patient",
		"Practitioner": practitioner,
		"Patient":      &models.Patient{},
	})
}

// RegisterPatient creates a patient owned by the signed-in practitioner.
func (h *PatientHandler) RegisterPatient(c *gin.Context) {
	practitioner, ok := currentPractitioner(c, h.Practitioners, h.Sessions, h.Log)
	if !ok {
		return
	}

	var req PatientForm
	bindErr := utils.BindAndValidate(c, &req)
	patient := &models.Patient{}
	if err := req.apply(patient); err != nil && bindErr == nil {
		bindErr = err
	}
	data := gin.H{
		"Title":        "Register patient",
		"Practitioner": practitioner,
		"Patient":      patient,
	}
	if bindErr != nil {
		utils.FormError(c, http.StatusBadRequest, "register_patient.html", data, bindErr.Error())
		return
	}

	stored, err := utils.SaveUpload(c, uploadField, h.UploadDir, h.MaxUploadBytes)
	if err != nil {
		h.Log.Warn().Err(err).Msg("patient document upload")
		utils.FormError(c, http.StatusBadRequest, "register_patient.html", data, uploadErrorMessage(err))
		return
	}
	patient.FileUpload = stored
	patient.DoctorID = practitioner.ID

	if err := h.Patients.Create(c.Request.Context(), patient); err != nil {
		h.Log.Error().Err(err).Msg("create patient")
		if rmErr := utils.RemoveUpload(h.UploadDir, stored); rmErr != nil {
			h.Log.Warn().Err(rmErr).Str("file", stored).Msg("remove orphaned upload")
		}
		utils.InternalServerError(c)
		return
	}

	h.Log.Info().Uint("practitioner_id", practitioner.ID).Uint("patient_id", patient.ID).Msg("patient registered")
	utils.Redirect(c, "/my-patients")
}

// MyPatients lists the signed-in practitioner's patients. No patients is
// an ordinary empty page.
func (h *PatientHandler) MyPatients(c *gin.Context) {
	practitioner, ok := currentPractitioner(c, h.Practitioners, h.Sessions, h.Log)
	if !ok {
		return
	}

	patients, err := h.Patients.ListByPractitioner(c.Request.Context(), practitioner.ID)
	if err != nil {
		h.Log.Error().Err(err).Msg("list patients")
		utils.InternalServerError(c)
		return
	}

	utils.Page(c, "my_patients.html", gin.H{
		"Title":        "My patients",
		"Practitioner": practitioner,
		"Patients":     patients,
	})
}

// ownedPatient loads patient :id for practitioner, writing the 404 itself
// when the id is malformed, missing or someone else's.
func (h *PatientHandler) ownedPatient(c *gin.Context, practitioner *models.Practitioner) (*models.Patient, bool) {
	id, ok := patientIDParam(c)
	if !ok {
		utils.NotFound(c)
		return nil, false
	}

	patient, err := h.Patients.GetForPractitioner(c.Request.Context(), id, practitioner.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c)
			return nil, false
		}
		h.Log.Error().Err(err).Uint("patient_id", id).Msg("load patient")
		utils.InternalServerError(c)
		return nil, false
	}
	if !patient.BelongsTo(practitioner.ID) {
		h.Log.Error().Uint("patient_id", id).Uint("practitioner_id", practitioner.ID).Msg("store returned a foreign patient")
		utils.NotFound(c)
		return nil, false
	}
	return patient, true
}

// PatientDocument sends an owned patient's stored document as a download.
func (h *PatientHandler) PatientDocument(c *gin.Context) {
	practitioner, ok := currentPractitioner(c, h.Practitioners, h.Sessions, h.Log)
	if !ok {
		return
	}
	patient, ok := h.ownedPatient(c, practitioner)
	if !ok {
		return
	}

	file, ok := utils.UploadPath(h.UploadDir, patient.FileUpload)
	if !ok {
		utils.NotFound(c)
		return
	}

	name := strings.ReplaceAll(patient.FullName(), " ", "_") + "-document" + filepath.Ext(patient.FileUpload)
	c.FileAttachment(file, name)
}

// EditPatientPage renders the edit form for an owned patient.
func (h *PatientHandler) EditPatientPage(c *gin.Context) {
	practitioner, ok := currentPractitioner(c, h.Practitioners, h.Sessions, h.Log)
	if !ok {
		return
	}
	patient, ok := h.ownedPatient(c, practitioner)
	if !ok {
		return
	}

	data := gin.H{
		"Title":        "Edit patient",
		"Practitioner": practitioner,
		"Patient":      patient,
	}
	if c.Query("updated") != "" {
		data["Notice"] = "Patient updated."
	}
	utils.Page(c, "edit_patient.html", data)
}

// EditPatient updates an owned patient. A newly uploaded document replaces
// the previous one; otherwise the stored document is kept.
func (h *PatientHandler) EditPatient(c *gin.Context) {
	practitioner, ok := currentPractitioner(c, h.Practitioners, h.Sessions, h.Log)
	if !ok {
		return
	}
	existing, ok := h.ownedPatient(c, practitioner)
	if !ok {
		return
	}

	var req PatientForm
	bindErr := utils.BindAndValidate(c, &req)
	patient := *existing
	if err := req.apply(&patient); err != nil && bindErr == nil {
		bindErr = err
	}
	data := gin.H{
		"Title":        "Edit patient",
		"Practitioner": practitioner,
		"Patient":      &patient,
	}
	if bindErr != nil {
		utils.FormError(c, http.StatusBadRequest, "edit_patient.html", data, bindErr.Error())
		return
	}

	stored, err := utils.SaveUpload(c, uploadField, h.UploadDir, h.MaxUploadBytes)
	if err != nil {
		h.Log.Warn().Err(err).Msg("patient document upload")
		utils.FormError(c, http.StatusBadRequest, "edit_patient.html", data, uploadErrorMessage(err))
		return
	}
	if stored != "" {
		patient.FileUpload = stored
	}

	if err := h.Patients.UpdateForPractitioner(c.Request.Context(), practitioner.ID, &patient); err != nil {
		if rmErr := utils.RemoveUpload(h.UploadDir, stored); rmErr != nil {
			h.Log.Warn().Err(rmErr).Str("file", stored).Msg("remove orphaned upload")
		}
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c)
			return
		}
		h.Log.Error().Err(err).Uint("patient_id", patient.ID).Msg("update patient")
		utils.InternalServerError(c)
		return
	}

	if stored != "" && existing.FileUpload != "" {
		if err := utils.RemoveUpload(h.UploadDir, existing.FileUpload); err != nil {
			h.Log.Warn().Err(err).Str("file", existing.FileUpload).Msg("remove replaced upload")
		}
	}

	utils.Redirect(c, fmt.Sprintf("/edit-patient/%d?updated=1", patient.ID))
}

// DeletePatient removes an owned patient and its stored document.
func (h *PatientHandler) DeletePatient(c *gin.Context) {
	practitioner, ok := currentPractitioner(c, h.Practitioners, h.Sessions, h.Log)
	if !ok {
		return
	}
	patient, ok := h.ownedPatient(c, practitioner)
	if !ok {
		return
	}

	if err := h.Patients.DeleteForPractitioner(c.Request.Context(), patient.ID, practitioner.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c)
			return
		}
		h.Log.Error().Err(err).Uint("patient_id", patient.ID).Msg("delete patient")
		utils.InternalServerError(c)
		return
	}

	if err := utils.RemoveUpload(h.UploadDir, patient.FileUpload); err != nil {
		h.Log.Warn().Err(err).Str("file", patient.FileUpload).Msg("remove deleted patient's upload")
	}

	h.Log.Info().Uint("practitioner_id", practitioner.ID).Uint("patient_id", patient.ID).Msg("patient deleted")
	utils.Redirect(c, "/my-patients")
}
