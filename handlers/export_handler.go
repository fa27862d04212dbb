package handlers

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/go-pdf/fpdf"
	"github.com/gorilla/mux"

	"aadhaar_insights/analysis"
	"aadhaar_insights/models"
	"aadhaar_insights/utils"
)

// ExportIdeaCSV downloads one idea's label/value series as CSV.
func ExportIdeaCSV(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid idea id")
		return
	}
	state, district := queryFilters(r)

	envelope, err := analyzer.Idea(id, state, district)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid idea id")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="Idea_%d_Data.csv"`, id))

	cw := csv.NewWriter(w)
	cw.Write([]string{"Category", "Value"})
	for i, label := range envelope.Labels {
		cw.Write([]string{label, strconv.FormatFloat(envelope.Data[i], 'f', -1, 64)})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		log.Printf("ExportIdeaCSV: write failed: %v", err)
	}
}

// ExportCategoryCSV downloads the category report as a summary block plus the
// top-regions table.
func ExportCategoryCSV(w http.ResponseWriter, r *http.Request) {
	category, err := models.ParseCategory(mux.Vars(r)["category"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid category")
		return
	}
	state, district := queryFilters(r)
	report := analyzer.CategoryAnalysis(category, state, district)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s_Analysis.csv"`, category))

	cw := csv.NewWriter(w)
	cw.Write([]string{"Label", "Value"})
	cw.Write([]string{"METRIC", report.MetricLabel})
	cw.Write([]string{"TOTAL VOLUME", strconv.FormatFloat(report.TotalVolume, 'f', -1, 64)})
	cw.Write([]string{"TOP PERFORMER", fmt.Sprintf("%s (%d)", report.TopPerformer.Name, int(report.TopPerformer.Value))})
	cw.Write([]string{"BOTTOM PERFORMER", fmt.Sprintf("%s (%d)", report.BottomPerformer.Name, int(report.BottomPerformer.Value))})
	cw.Write([]string{"", ""})
	cw.Write([]string{"DATA TABLE (TOP REGIONS)", ""})
	for i, label := range report.ChartLabels {
		cw.Write([]string{label, strconv.FormatFloat(report.ChartData[i], 'f', -1, 64)})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		log.Printf("ExportCategoryCSV: write failed: %v", err)
	}
}

// ExportIdeaPDF renders one idea's analysis as a printable report.
func ExportIdeaPDF(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid idea id")
		return
	}
	state, district := queryFilters(r)

	envelope, err := analyzer.Idea(id, state, district)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid idea id")
		return
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "", 16)
	pdf.CellFormat(0, 10, fmt.Sprintf("Analysis Report: Idea %d", id), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 14)
	pdf.CellFormat(0, 10, envelope.Title, "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 12)
	pdf.Ln(10)
	if state != "" {
		pdf.CellFormat(0, 10, "Filter State: "+state, "", 1, "", false, 0, "")
	}
	if district != "" {
		pdf.CellFormat(0, 10, "Filter District: "+district, "", 1, "", false, 0, "")
	}

	section := func(heading, body string) {
		pdf.Ln(5)
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 10, heading, "", 1, "", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.MultiCell(0, 8, body, "", "", false)
	}
	section("Problem Statement:", envelope.Problem)
	section("Key Insight:", envelope.Insight)
	section("Recommended Solution:", envelope.Solution)

	pdf.Ln(10)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 10, "Data Summary (Top Records):", "", 1, "", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(100, 10, "Label (District/Pincode)", "1", 0, "", false, 0, "")
	pdf.CellFormat(50, 10, "Value", "1", 1, "", false, 0, "")
	for i, label := range envelope.Labels {
		pdf.CellFormat(100, 10, label, "1", 0, "", false, 0, "")
		pdf.CellFormat(50, 10, strconv.FormatFloat(envelope.Data[i], 'f', -1, 64), "1", 1, "", false, 0, "")
	}

	servePDF(w, pdf, fmt.Sprintf("Idea_%d_Analysis.pdf", id))
}

// ExportCategoryPDF renders the category report with insights and the action
// plan.
func ExportCategoryPDF(w http.ResponseWriter, r *http.Request) {
	category, err := models.ParseCategory(mux.Vars(r)["category"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid category")
		return
	}
	state, district := queryFilters(r)
	report := analyzer.CategoryAnalysis(category, state, district)

	displayFilter := func(v string) string {
		if v == "" {
			return "All"
		}
		return v
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, report.Category+" Analysis Report", "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 10, fmt.Sprintf("Filter: State=%s, District=%s",
		displayFilter(state), displayFilter(district)), "", 1, "C", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(100, 10, "Total Volume: "+utils.FormatInt(int(report.TotalVolume)), "", 1, "", false, 0, "")
	pdf.CellFormat(100, 10, fmt.Sprintf("Active Regions: %d", report.ActiveRegions), "", 1, "", false, 0, "")
	pdf.Ln(5)

	pdf.SetFillColor(240, 248, 255)
	pdf.Rect(10, pdf.GetY(), 190, 60, "F")

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 10, "Key Insights", "", 1, "", false, 0, "")

	performer := func(label string, p analysis.Performer) {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(45, 10, label, "", 0, "", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 10, fmt.Sprintf("%s (%s)", p.Name, utils.FormatInt(int(p.Value))), "", 1, "", false, 0, "")
		pdf.MultiCell(0, 6, "Reason: "+p.Reason, "", "", false)
		pdf.Ln(2)
	}
	performer("Top Performer:", report.TopPerformer)
	performer("Bottom Performer:", report.BottomPerformer)
	pdf.Ln(5)

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFillColor(40, 167, 69)
	pdf.CellFormat(0, 10, "  GOVERNMENT ACTION PLAN", "", 1, "", true, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Arial", "", 11)
	pdf.MultiCell(0, 8, report.Solution, "1", "", false)
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 10, fmt.Sprintf("Top %ss by %s", report.EntityLabel, report.MetricLabel), "", 1, "", false, 0, "")
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(140, 8, "Region Name", "1", 0, "", false, 0, "")
	pdf.CellFormat(50, 8, "Volume", "1", 1, "", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	for i, label := range report.ChartLabels {
		pdf.CellFormat(140, 8, label, "1", 0, "", false, 0, "")
		pdf.CellFormat(50, 8, utils.FormatInt(int(report.ChartData[i])), "1", 1, "", false, 0, "")
	}

	servePDF(w, pdf, fmt.Sprintf("%s_Report.pdf", category))
}

// ExportFullReport renders the comprehensive PDF: headline totals plus the
// key analyses.
func ExportFullReport(w http.ResponseWriter, r *http.Request) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "", 16)
	pdf.CellFormat(0, 10, "Aadhaar Activity Insights - Comprehensive Report", "", 1, "C", false, 0, "")

	summary := analyzer.Summary("", "")
	pdf.SetFont("Arial", "", 12)
	pdf.Ln(10)
	pdf.CellFormat(0, 10, "Total Enrolment: "+utils.FormatInt(int(summary.TotalEnrolment)), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 10, "Total Demographic Updates: "+utils.FormatInt(int(summary.TotalDemographicUpdates)), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 10, "Total Biometric Updates: "+utils.FormatInt(int(summary.TotalBiometricUpdates)), "", 1, "", false, 0, "")

	pdf.Ln(10)
	pdf.CellFormat(0, 10, "Key Insights (Top 5 Ideas):", "", 1, "", false, 0, "")

	for _, id := range []int{1, 2, 3, 4, 9} {
		envelope, err := analyzer.Idea(id, "", "")
		if err != nil {
			continue
		}
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 10, fmt.Sprintf("%d. %s", id, envelope.Title), "", 1, "", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 8, "Problem: "+envelope.Problem, "", "", false)
		pdf.MultiCell(0, 8, "Insight: "+envelope.Insight, "", "", false)
		pdf.MultiCell(0, 8, "Solution: "+envelope.Solution, "", "", false)
		pdf.Ln(5)
	}

	servePDF(w, pdf, "Aadhaar_Full_Report.pdf")
}

func servePDF(w http.ResponseWriter, pdf *fpdf.Fpdf, filename string) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	if err := pdf.Output(w); err != nil {
		log.Printf("servePDF: rendering %s failed: %v", filename, err)
	}
}
