package routes

import (
	"fmt"

	"doctor-portal-server/internal/config"
	"doctor-portal-server/internal/handlers"
	"doctor-portal-server/internal/middleware"
	"doctor-portal-server/internal/store"
	"doctor-portal-server/internal/utils"
	"doctor-portal-server/internal/views"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Dependencies is everything the router needs to build its handlers.
type Dependencies struct {
	Config        *config.Config
	Practitioners store.PractitionerStore
	Patients      store.PatientStore
	Sessions      *utils.SessionCodec
	Logger        zerolog.Logger
}

// NewRouter builds the gin engine with its middleware chain, templates and
// routes.
func NewRouter(deps Dependencies) (*gin.Engine, error) {
	cfg := deps.Config

	tmpl, err := views.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	router := gin.New()
	router.SetHTMLTemplate(tmpl)
	router.MaxMultipartMemory = int64(cfg.MaxUploadMB) << 20

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-CSRF-Token"}

	router.Use(
		gin.Recovery(),
		middleware.RequestLogger(deps.Logger),
		cors.New(corsConfig),
	)

	SetupRoutes(router, deps)
	return router, nil
}

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, deps Dependencies) {
	cfg := deps.Config
	log := deps.Logger

	authHandler := handlers.NewAuthHandler(deps.Practitioners, deps.Sessions, log)
	profileHandler := handlers.NewProfileHandler(deps.Practitioners, deps.Patients, deps.Sessions, log)
	uploadBytes := int64(cfg.MaxUploadMB) << 20
	patientHandler := handlers.NewPatientHandler(deps.Practitioners, deps.Patients, deps.Sessions,
		cfg.UploadDir, uploadBytes, log)
	staticHandler := handlers.NewStaticHandler(cfg.StaticDir)
	secure := cfg.IsProduction()

	// Sign-in accepts credentials without a prior token
	signin := router.Group("", middleware.CSRFToken(secure))
	for _, p := range []string{"/signin", "/login"} {
		signin.GET(p, authHandler.SigninPage)
		signin.POST(p, authHandler.Signin)
	}

	public := router.Group("", middleware.CSRF(secure))
	for _, p := range []string{"/signup", "/register"} {
		public.GET(p, authHandler.SignupPage)
		public.POST(p, authHandler.Signup)
	}
	router.GET("/logout", authHandler.Logout)
	router.GET("/health", handlers.Health)
	router.GET("/", staticHandler.Index)

	// Session-guarded routes. The guard runs before anything reads the body.
	private := router.Group("")
	private.Use(
		middleware.SessionGuard(deps.Sessions),
		middleware.LimitBody(uploadBytes+1<<20),
		middleware.CSRF(secure),
	)
	{
		private.GET("/dashboard", profileHandler.Dashboard)
		private.GET("/my-profile", profileHandler.GetProfile)
		private.POST("/my-profile", profileHandler.UpdateProfile)
		private.POST("/update-password", profileHandler.UpdatePassword)

		private.GET("/register-patient", patientHandler.RegisterPatientPage)
		private.POST("/register-patient", patientHandler.RegisterPatient)
		private.GET("/my-patients", patientHandler.MyPatients)
		private.GET("/edit-patient/:id", patientHandler.EditPatientPage)
		private.POST("/edit-patient/:id", patientHandler.EditPatient)
		private.POST("/delete-patient/:id", patientHandler.DeletePatient)
		private.GET("/patient-document/:id", patientHandler.PatientDocument)
	}

	router.NoRoute(staticHandler.NotFound)
}
