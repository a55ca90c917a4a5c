package reports

import (
	"github.com/gofiber/fiber/v2"

	"meridian-schools/app/routes/auth"
	"meridian-schools/app/services"
)

// SetupReportsRoutes registers the fee report endpoints.
func SetupReportsRoutes(app *fiber.App, svc *services.ReportService) {
	api := app.Group("/api/reports")
	api.Use(auth.AuthMiddleware)

	api.Get("/students/:id/ledger", func(c *fiber.Ctx) error {
		return GetStudentLedgerAPI(c, svc)
	})

	api.Get("/students/:id/financial-record", func(c *fiber.Ctx) error {
		return GetFinancialRecordAPI(c, svc)
	})

	api.Get("/dues", func(c *fiber.Ctx) error {
		return GetDuesAPI(c, svc)
	})

	api.Get("/dues/summary", func(c *fiber.Ctx) error {
		return GetDuesSummaryAPI(c, svc)
	})

	api.Get("/dues/by-batch", func(c *fiber.Ctx) error {
		return GetBatchDuesAPI(c, svc)
	})

	api.Get("/dues/export", func(c *fiber.Ctx) error {
		return ExportDuesCSVAPI(c, svc)
	})
}
