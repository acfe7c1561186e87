package analytics

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"time"

	"workline/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	log "github.com/sirupsen/logrus"
	"github.com/skip2/go-qrcode"
)

// ExportPDF renders the caller's current stats as a one-page report with a
// QR code linking back to the live dashboard.
func ExportPDF(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	agentID := utils.GetUserIDFromRequest(r)
	username := utils.GetUsernameFromRequest(r)

	stats, err := computeStats(ctx, agentID)
	if err != nil {
		log.Printf("analytics: export stats error for %s: %v", agentID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 12, "Recruitment Report")
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Agent: %s", username))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04")))
	pdf.Ln(12)

	rows := []struct {
		label string
		value string
	}{
		{"Candidates", fmt.Sprintf("%d", stats.TotalCandidates)},
		{"Applications", fmt.Sprintf("%d", stats.Total)},
		{"Pending", fmt.Sprintf("%d", stats.Pending)},
		{"Approved", fmt.Sprintf("%d", stats.Approved)},
		{"Rejected", fmt.Sprintf("%d", stats.Rejected)},
		{"Success rate", fmt.Sprintf("%.1f%%", stats.SuccessRate)},
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(70, 9, "Metric", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 9, "Value", "1", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	for _, row := range rows {
		pdf.CellFormat(70, 9, row.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 9, row.value, "1", 1, "R", false, 0, "")
	}

	dashboardURL := os.Getenv("APP_BASE_URL")
	if dashboardURL == "" {
		dashboardURL = "http://localhost:4000"
	}
	dashboardURL += "/api/analytics/dashboard"

	png, err := qrcode.Encode(dashboardURL, qrcode.Medium, 256)
	if err == nil {
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("dashboard-qr", opts, bytes.NewReader(png))
		pdf.Ln(10)
		pdf.ImageOptions("dashboard-qr", 20, pdf.GetY(), 40, 40, false, opts, 0, "")
		pdf.SetY(pdf.GetY() + 44)
		pdf.SetFont("Arial", "I", 9)
		pdf.Cell(0, 6, "Scan for the live dashboard")
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="report.pdf"`)
	if err := pdf.Output(w); err != nil {
		log.Printf("analytics: pdf write error for %s: %v", agentID, err)
	}
}
