package routes

import (
	"time"

	"parishcare/internal/adapters/http/handlers"
	"parishcare/internal/adapters/http/middleware"
	"parishcare/internal/adapters/persistence/repositories"
	"parishcare/internal/config"
	"parishcare/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application and returns the
// services the caller still needs (the cron scheduler reuses them).
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) (*services.MembershipService, *services.NotificationService) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	attendanceRepo := repositories.NewAttendanceRepository(db)
	mortuaryRepo := repositories.NewMortuaryRepository(db)
	announcementRepo := repositories.NewAnnouncementRepository(db)
	scheduleRepo := repositories.NewMassScheduleRepository(db)
	familyRepo := repositories.NewFamilyRepository(db)
	eventRepo := repositories.NewEventRepository(db)
	donationRepo := repositories.NewDonationRepository(db)
	certificateRepo := repositories.NewCertificateRepository(db)
	sacramentRepo := repositories.NewSacramentRepository(db)

	// Initialize services
	notificationService := services.NewNotificationService(cfg.Email)
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	memberService := services.NewMemberService(userRepo, attendanceRepo)
	membershipService := services.NewMembershipService(userRepo, attendanceRepo)
	mortuaryService := services.NewMortuaryService(mortuaryRepo, cfg.Mortuary.DefaultRows, cfg.Mortuary.DefaultCols)
	announcementService := services.NewAnnouncementService(announcementRepo)
	scheduleService := services.NewMassScheduleService(scheduleRepo)
	familyService := services.NewFamilyService(familyRepo, userRepo)
	eventService := services.NewEventService(eventRepo, memberService)
	donationService := services.NewDonationService(donationRepo, userRepo)
	certificateService := services.NewCertificateService(certificateRepo, userRepo, notificationService)
	sacramentService := services.NewSacramentService(sacramentRepo, userRepo, notificationService)
	dashboardService := services.NewDashboardService(membershipService, mortuaryService, donationService, eventRepo, sacramentRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	memberHandler := handlers.NewMemberHandler(memberService, membershipService)
	mortuaryHandler := handlers.NewMortuaryHandler(mortuaryService)
	announcementHandler := handlers.NewAnnouncementHandler(announcementService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)
	familyHandler := handlers.NewFamilyHandler(familyService)
	eventHandler := handlers.NewEventHandler(eventService)
	donationHandler := handlers.NewDonationHandler(donationService)
	certificateHandler := handlers.NewCertificateHandler(certificateService)
	sacramentHandler := handlers.NewSacramentHandler(sacramentService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Auth routes (public, rate-limited)
	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Public parish info
	apiV1.Get("/mass-schedules", middleware.PublicCache(5*time.Minute), scheduleHandler.List)
	apiV1.Get("/announcements", middleware.OptionalAuth(cfg), announcementHandler.List)
	apiV1.Get("/announcements/:id", announcementHandler.Get)
	apiV1.Get("/events", eventHandler.List)
	apiV1.Get("/events/:id", eventHandler.Get)

	// Profile routes (authenticated users)
	profileRoutes := apiV1.Group("/profile")
	profileRoutes.Use(middleware.AuthMiddleware(cfg))
	setupProfileRoutes(profileRoutes, memberHandler)

	// Member management routes (Staff/Admin)
	memberRoutes := apiV1.Group("/members")
	memberRoutes.Use(middleware.AuthMiddleware(cfg))
	memberRoutes.Use(middleware.StaffOrAdmin())
	setupMemberRoutes(memberRoutes, memberHandler)

	// Mortuary routes (Staff/Admin)
	mortuaryRoutes := apiV1.Group("/mortuary")
	mortuaryRoutes.Use(middleware.AuthMiddleware(cfg))
	mortuaryRoutes.Use(middleware.StaffOrAdmin())
	setupMortuaryRoutes(mortuaryRoutes, mortuaryHandler)

	// Announcement management (Staff/Admin)
	announcementRoutes := apiV1.Group("/announcements")
	announcementRoutes.Use(middleware.AuthMiddleware(cfg))
	announcementRoutes.Use(middleware.StaffOrAdmin())
	announcementRoutes.Post("/", announcementHandler.Create)
	announcementRoutes.Put("/:id", announcementHandler.Update)
	announcementRoutes.Delete("/:id", announcementHandler.Delete)

	// Mass schedule management (Staff/Admin for writes)
	scheduleRoutes := apiV1.Group("/mass-schedules")
	scheduleRoutes.Use(middleware.AuthMiddleware(cfg))
	scheduleRoutes.Use(middleware.StaffOrAdmin())
	scheduleRoutes.Get("/all", scheduleHandler.ListAll)
	scheduleRoutes.Get("/:id", scheduleHandler.Get)
	scheduleRoutes.Post("/", scheduleHandler.Create)
	scheduleRoutes.Put("/:id", scheduleHandler.Update)
	scheduleRoutes.Delete("/:id", scheduleHandler.Delete)

	// Event management and participation
	eventRoutes := apiV1.Group("/events")
	eventRoutes.Use(middleware.AuthMiddleware(cfg))
	setupEventRoutes(eventRoutes, eventHandler)

	// Family routes (Staff/Admin)
	familyRoutes := apiV1.Group("/families")
	familyRoutes.Use(middleware.AuthMiddleware(cfg))
	familyRoutes.Use(middleware.StaffOrAdmin())
	setupFamilyRoutes(familyRoutes, familyHandler)

	// Donation routes
	donationRoutes := apiV1.Group("/donations")
	donationRoutes.Use(middleware.AuthMiddleware(cfg))
	setupDonationRoutes(donationRoutes, donationHandler)

	// Certificate routes
	certificateRoutes := apiV1.Group("/certificates")
	certificateRoutes.Use(middleware.AuthMiddleware(cfg))
	setupCertificateRoutes(certificateRoutes, certificateHandler)

	// Sacrament appointment routes
	sacramentRoutes := apiV1.Group("/sacraments")
	sacramentRoutes.Use(middleware.AuthMiddleware(cfg))
	setupSacramentRoutes(sacramentRoutes, sacramentHandler)

	// Dashboard routes (Staff/Admin)
	dashboardRoutes := apiV1.Group("/dashboard")
	dashboardRoutes.Use(middleware.AuthMiddleware(cfg))
	dashboardRoutes.Use(middleware.StaffOrAdmin())
	dashboardRoutes.Get("/", dashboardHandler.AdminDashboard)

	return membershipService, notificationService
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes (rate-limited against brute force)
	router.Post("/register", middleware.StrictRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", middleware.AuthRateLimiter(), handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupProfileRoutes configures profile routes (authenticated)
func setupProfileRoutes(router fiber.Router, handler *handlers.MemberHandler) {
	router.Get("/", handler.GetProfile)
	router.Put("/", handler.UpdateProfile)
	router.Put("/password", middleware.StrictRateLimiter(), handler.ChangePassword)
}

// setupMemberRoutes configures member management routes (Staff/Admin)
func setupMemberRoutes(router fiber.Router, handler *handlers.MemberHandler) {
	router.Get("/", handler.ListMembers)
	router.Get("/statistics", handler.MembershipStatistics)
	router.Post("/sweep", handler.SweepMembershipStatuses)
	router.Get("/:id", handler.GetMember)
	router.Get("/:id/attendance", handler.GetMemberAttendance)
	router.Post("/:id/attendance", handler.RecordAttendance)
	router.Post("/:id/refresh-status", handler.RefreshMemberStatus)

	// Admin only
	adminRoutes := router.Group("")
	adminRoutes.Use(middleware.AdminOnly())
	adminRoutes.Put("/:id", handler.UpdateMember)
	adminRoutes.Delete("/:id", handler.DeleteMember)
}

// setupMortuaryRoutes configures columbarium routes (Staff/Admin)
func setupMortuaryRoutes(router fiber.Router, handler *handlers.MortuaryHandler) {
	router.Get("/racks", handler.ListRacks)
	router.Get("/racks/:id", handler.GetRack)
	router.Get("/available-positions", handler.GetAvailablePositions)
	router.Get("/statistics", handler.Statistics)
	router.Post("/racks", handler.AddRack)
	router.Put("/racks/:id", handler.UpdateRack)
	router.Post("/racks/:id/reset", handler.ResetRack)
	router.Delete("/racks/:id", handler.DeleteRack)
	router.Post("/bulk-update", handler.BulkUpdate)

	// Admin only
	adminRoutes := router.Group("")
	adminRoutes.Use(middleware.AdminOnly())
	adminRoutes.Post("/initialize", handler.InitializeGrid)
}

// setupEventRoutes configures event routes
func setupEventRoutes(router fiber.Router, handler *handlers.EventHandler) {
	// Members register themselves
	router.Post("/:id/register", handler.Register)

	// Staff/Admin manage events and attendance
	staffRoutes := router.Group("")
	staffRoutes.Use(middleware.StaffOrAdmin())
	staffRoutes.Post("/", handler.Create)
	staffRoutes.Put("/:id", handler.Update)
	staffRoutes.Delete("/:id", handler.Delete)
	staffRoutes.Get("/:id/registrations", handler.ListRegistrations)
	staffRoutes.Post("/:id/attendance", handler.MarkAttended)
}

// setupFamilyRoutes configures family routes (Staff/Admin)
func setupFamilyRoutes(router fiber.Router, handler *handlers.FamilyHandler) {
	router.Get("/", handler.List)
	router.Get("/:id", handler.Get)
	router.Post("/", handler.Create)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", handler.Delete)
	router.Post("/:id/members", handler.AssignMember)
	router.Delete("/:id/members/:userId", handler.RemoveMember)
}

// setupDonationRoutes configures donation routes
func setupDonationRoutes(router fiber.Router, handler *handlers.DonationHandler) {
	// Members view their own giving history
	router.Get("/mine", handler.ListMine)

	// Staff/Admin record and report
	staffRoutes := router.Group("")
	staffRoutes.Use(middleware.StaffOrAdmin())
	staffRoutes.Get("/", handler.List)
	staffRoutes.Get("/statistics", handler.Statistics)
	staffRoutes.Post("/", handler.Record)
	staffRoutes.Get("/:id", handler.Get)

	// Admin only
	adminRoutes := router.Group("")
	adminRoutes.Use(middleware.AdminOnly())
	adminRoutes.Delete("/:id", handler.Delete)
}

// setupCertificateRoutes configures certificate routes
func setupCertificateRoutes(router fiber.Router, handler *handlers.CertificateHandler) {
	// Members request and track their own certificates
	router.Post("/", handler.Request)
	router.Get("/mine", handler.ListMine)

	// Staff/Admin process requests
	staffRoutes := router.Group("")
	staffRoutes.Use(middleware.StaffOrAdmin())
	staffRoutes.Get("/", handler.List)
	staffRoutes.Get("/:id", handler.Get)
	staffRoutes.Post("/:id/advance", handler.Advance)

	// Admin only
	adminRoutes := router.Group("")
	adminRoutes.Use(middleware.AdminOnly())
	adminRoutes.Delete("/:id", handler.Delete)
}

// setupSacramentRoutes configures sacrament appointment routes
func setupSacramentRoutes(router fiber.Router, handler *handlers.SacramentHandler) {
	// Members request and track their own appointments
	router.Post("/", handler.Request)
	router.Get("/mine", handler.ListMine)
	router.Post("/:id/cancel", handler.Cancel)

	// Staff/Admin process requests
	staffRoutes := router.Group("")
	staffRoutes.Use(middleware.StaffOrAdmin())
	staffRoutes.Get("/", handler.List)
	staffRoutes.Get("/:id", handler.Get)
	staffRoutes.Post("/:id/approve", handler.Approve)
	staffRoutes.Post("/:id/complete", handler.Complete)
}
