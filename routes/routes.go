package routes

import (
	"github.com/gofiber/fiber/v2"

	"loanportal-backend/controllers"
	"loanportal-backend/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api")

	// Public auth endpoints
	api.Post("/login", controllers.Login)
	api.Post("/logout", controllers.Logout)

	// Protected endpoints (JWT auth)
	protected := api.Group("")
	protected.Use(middlewares.IsAuthenticatedHeader())

	// Idempotency guard FIRST (not tied to request TX)
	protected.Use(middlewares.Idempotency())

	// Then per-request transaction (commits/rolls back around the handler)
	protected.Use(middlewares.Tx())

	protected.Get("/profile", controllers.GetProfile)
	protected.Get("/meta", controllers.GetMeta)

	// Field inspection reports (no delete route: reports are never deleted)
	protected.Post("/inspections", controllers.CreateInspection)
	protected.Get("/inspections", controllers.ListInspections)
	protected.Get("/inspections/export", controllers.ExportInspections)
	protected.Get("/inspections/mail-draft", middlewares.AdminOnly(), controllers.InspectionMailDraft)
	protected.Get("/inspections/:id", controllers.GetInspection)
	protected.Put("/inspections/:id", controllers.UpdateInspection)
	protected.Get("/inspections/:id/revisions", controllers.ListInspectionRevisions)

	// Payout reports
	protected.Post("/payouts", controllers.CreatePayout)
	protected.Get("/payouts", controllers.ListPayouts)
	protected.Get("/payouts/export", controllers.ExportPayouts)
	protected.Get("/payouts/mail-draft", middlewares.AdminOnly(), controllers.PayoutMailDraft)
	protected.Get("/payouts/:id", controllers.GetPayout)
	protected.Put("/payouts/:id", controllers.UpdatePayout)
	protected.Get("/payouts/:id/revisions", controllers.ListPayoutRevisions)

	// Dashboard analytics
	protected.Get("/dashboard", controllers.GetDashboard)

	// User listing is intentionally unscoped (names label report rows);
	// provisioning and role changes are admin-only.
	protected.Get("/users", controllers.ListUsers)
	protected.Post("/users", middlewares.AdminOnly(), controllers.CreateUser)
	protected.Put("/users/:id", middlewares.AdminOnly(), controllers.UpdateUser)

	// Branding / header details
	protected.Get("/settings", controllers.GetSettings)
	protected.Put("/settings", middlewares.AdminOnly(), controllers.UpdateSettings)
}
