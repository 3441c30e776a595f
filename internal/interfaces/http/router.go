package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/hotelops-api/internal/application/auth"
	"github.com/jhoicas/hotelops-api/internal/application/usecase"
	"github.com/jhoicas/hotelops-api/internal/domain/access"
	"github.com/jhoicas/hotelops-api/internal/domain/entity"
	"github.com/jhoicas/hotelops-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	ProvisioningUC *usecase.ProvisioningUseCase
	HotelUC        *usecase.HotelUseCase
	RoomUC         *usecase.RoomUseCase
	StaffUC        *usecase.StaffUseCase
	PreferenceUC   *usecase.PreferenceUseCase
	Logger         *logger.Logger

	AllowOrigins    string // CORS de /api; vacío = "*"
	RateLimitMax    int    // peticiones por IP y ventana en /api/auth; 0 = sin límite
	RateLimitWindow time.Duration
	WebhookSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	app.Use(requestid.New())

	// Función de aprovisionamiento (CORS abierto, secreto opcional)
	provisioning := NewProvisioningHandler(deps.ProvisioningUC, deps.WebhookSecret, log)
	app.Post("/functions/v1/provision-user", provisioning.CORS, provisioning.Provision)
	app.Options("/functions/v1/provision-user", provisioning.CORS)

	origins := deps.AllowOrigins
	if origins == "" {
		origins = "*"
	}
	api := app.Group("/api", cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	authn := AuthMiddleware(deps.AuthUC)
	dashboard := RequireRole(entity.RoleAdmin, entity.RoleStaff)

	// Navegación del login (público; la sesión es opcional)
	navHandler := NewNavigationHandler(log)
	nav := api.Group("/navigation", OptionalAuth(deps.AuthUC))
	nav.Get("/", navHandler.Get)
	nav.Post("/mode", navHandler.SwitchMode)

	// Auth (público, con límite por IP)
	authHandler := NewAuthHandler(deps.AuthUC, log)
	authGroup := api.Group("/auth")
	if deps.RateLimitMax > 0 {
		authGroup.Use(limiter.New(limiter.Config{
			Max:        deps.RateLimitMax,
			Expiration: deps.RateLimitWindow,
			LimitReached: func(c *fiber.Ctx) error {
				return fail(c, fiber.StatusTooManyRequests, "RATE_LIMITED", "Demasiados intentos", "espere un momento e intente de nuevo")
			},
		}))
	}
	authGroup.Post("/signup", authHandler.SignUp)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/guest-login", authHandler.GuestLogin)
	authGroup.Post("/verify-email", authHandler.VerifyEmail)
	authGroup.Post("/resend-verification", authHandler.ResendVerification)
	authGroup.Post("/password/forgot", authHandler.ForgotPassword)
	authGroup.Post("/password/reset", authHandler.ResetPassword)
	authGroup.Post("/logout", authn, authHandler.Logout)
	authGroup.Get("/verification", authn, dashboard, authHandler.VerificationStatus)
	authGroup.Post("/password/setup", authn, dashboard, authHandler.SetupPassword)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", authn)

	// Perfil y preferencias (cualquier rol)
	prefHandler := NewPreferenceHandler(deps.PreferenceUC, log)
	me := protected.Group("/me")
	me.Get("/", prefHandler.Profile)
	me.Post("/onboarding", prefHandler.CompleteOnboarding)
	me.Get("/tutorials/:id", prefHandler.Tutorial)
	me.Post("/tutorials/:id", prefHandler.MarkTutorialViewed)

	// Hotel (solo admin)
	hotelHandler := NewHotelHandler(deps.HotelUC, log)
	hotels := protected.Group("/hotels", RequireRole(entity.RoleAdmin))
	hotels.Post("/", hotelHandler.Setup)
	hotels.Get("/me", RequireHotel(), hotelHandler.Get)
	hotels.Put("/me", RequireHotel(), hotelHandler.Update)
	hotels.Get("/me/code", RequireHotel(), hotelHandler.Code)
	hotels.Post("/me/code", RequireHotel(), hotelHandler.RegenerateCode)

	// Habitaciones
	roomHandler := NewRoomHandler(deps.RoomUC, log)
	rooms := protected.Group("/rooms", dashboard, RequireHotel())
	rooms.Get("/", roomHandler.List)
	rooms.Get("/lookup", roomHandler.Lookup)
	rooms.Post("/", RequirePermission(access.CanManageRooms), roomHandler.Create)
	rooms.Post("/:id/code", RequirePermission(access.CanManageRooms), roomHandler.RegenerateCode)

	// Staff
	staffHandler := NewStaffHandler(deps.StaffUC, deps.AuthUC, log)
	staff := protected.Group("/staff", dashboard, RequireHotel(), RequirePermission(access.CanManageStaff))
	staff.Get("/", staffHandler.List)
	staff.Post("/", staffHandler.Invite)
	staff.Patch("/:id/permissions", staffHandler.UpdatePermissions)
	staff.Post("/:id/reset-password", staffHandler.ResetPassword)
}
