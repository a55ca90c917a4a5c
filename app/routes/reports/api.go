package reports

import (
	"bytes"
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"meridian-schools/app/models"
	"meridian-schools/app/services"
)

var validate = validator.New()

// duesQuery carries the query parameters shared by the dues endpoints.
// Unknown status values pass validation downstream as "no filter".
type duesQuery struct {
	SchoolID string `validate:"required,uuid"`
	Batch    string
	Status   string
	Search   string
}

func parseDuesQuery(c *fiber.Ctx) (duesQuery, error) {
	q := duesQuery{
		SchoolID: c.Query("school_id"),
		Batch:    c.Query("batch"),
		Status:   c.Query("status"),
		Search:   c.Query("search"),
	}
	if err := validate.Struct(q); err != nil {
		return q, fiber.NewError(fiber.StatusBadRequest, "school_id must be a valid uuid")
	}
	return q, nil
}

// GetStudentLedgerAPI returns the chronological statement for one student.
// Store failures degrade to an empty ledger so report screens keep working.
func GetStudentLedgerAPI(c *fiber.Ctx, svc *services.ReportService) error {
	studentID := c.Params("id")

	entries, err := svc.BuildLedger(c.UserContext(), studentID)
	if err != nil {
		slog.Error("failed to build student ledger", "student_id", studentID, "error", err)
		entries = []models.LedgerEntry{}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    entries,
	})
}

// GetFinancialRecordAPI returns the full financial record for one student.
func GetFinancialRecordAPI(c *fiber.Ctx, svc *services.ReportService) error {
	studentID := c.Params("id")

	record, err := svc.GetFinancialRecord(c.UserContext(), studentID)
	if err != nil {
		if errors.Is(err, services.ErrStudentNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		slog.Error("failed to build financial record", "student_id", studentID, "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch financial record")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    record,
	})
}

// GetDuesAPI returns per-student dues rows for a school, with optional
// batch/status/search filters.
func GetDuesAPI(c *fiber.Ctx, svc *services.ReportService) error {
	q, err := parseDuesQuery(c)
	if err != nil {
		return err
	}

	rows, err := svc.DuesSummaries(c.UserContext(), q.SchoolID)
	if err != nil {
		slog.Error("failed to compute dues summaries", "school_id", q.SchoolID, "error", err)
		rows = []models.DuesSummary{}
	}
	rows = services.FilterSummaries(rows, services.SummaryFilter{
		Batch:  q.Batch,
		Status: q.Status,
		Search: q.Search,
	})

	return c.JSON(fiber.Map{
		"success": true,
		"data":    rows,
	})
}

// GetDuesSummaryAPI returns the school-level dues rollup. A store failure
// yields a zeroed summary, never an error page.
func GetDuesSummaryAPI(c *fiber.Ctx, svc *services.ReportService) error {
	q, err := parseDuesQuery(c)
	if err != nil {
		return err
	}

	summary, err := svc.GetDuesReportSummary(c.UserContext(), q.SchoolID)
	if err != nil {
		slog.Error("failed to compute dues report summary", "school_id", q.SchoolID, "error", err)
		summary = models.DuesReportSummary{}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    summary,
	})
}

// GetBatchDuesAPI returns per-batch dues rollups.
func GetBatchDuesAPI(c *fiber.Ctx, svc *services.ReportService) error {
	q, err := parseDuesQuery(c)
	if err != nil {
		return err
	}

	reports, err := svc.GetBatchDuesReports(c.UserContext(), q.SchoolID)
	if err != nil {
		slog.Error("failed to compute batch dues reports", "school_id", q.SchoolID, "error", err)
		reports = []models.BatchDuesReport{}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    reports,
	})
}

// ExportDuesCSVAPI streams the filtered dues report as a CSV attachment.
func ExportDuesCSVAPI(c *fiber.Ctx, svc *services.ReportService) error {
	q, err := parseDuesQuery(c)
	if err != nil {
		return err
	}

	rows, err := svc.DuesSummaries(c.UserContext(), q.SchoolID)
	if err != nil {
		slog.Error("failed to export dues report", "school_id", q.SchoolID, "error", err)
		rows = []models.DuesSummary{}
	}
	rows = services.FilterSummaries(rows, services.SummaryFilter{
		Batch:  q.Batch,
		Status: q.Status,
		Search: q.Search,
	})

	var buf bytes.Buffer
	if err := services.WriteDuesCSV(&buf, rows); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to render CSV")
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="dues-report.csv"`)
	return c.Send(buf.Bytes())
}
