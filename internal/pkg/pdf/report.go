package pdf

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

// BalanceLine is one row of the balance table in the report
type BalanceLine struct {
	LeaveTypeName string
	Balance       int
}

// RequestLine is one row of the request history table in the report
type RequestLine struct {
	LeaveTypeName string
	StartDate     string
	EndDate       string
	WorkingDays   int
	Status        string
}

// LeaveHistoryReport holds the structured data for one user's report.
// The leave service supplies the data; rendering is purely presentational.
type LeaveHistoryReport struct {
	Username    string
	Department  string
	GeneratedAt string
	Balances    []BalanceLine
	Requests    []RequestLine
}

// Render writes the report as a PDF document
func (r *LeaveHistoryReport) Render(w io.Writer) error {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle("Leave History", false)
	doc.AddPage()

	doc.SetFont("Arial", "B", 16)
	doc.CellFormat(0, 10, "Leave History Report", "", 1, "L", false, 0, "")

	doc.SetFont("Arial", "", 10)
	doc.CellFormat(0, 6, fmt.Sprintf("Employee: %s", r.Username), "", 1, "L", false, 0, "")
	if r.Department != "" {
		doc.CellFormat(0, 6, fmt.Sprintf("Department: %s", r.Department), "", 1, "L", false, 0, "")
	}
	doc.CellFormat(0, 6, fmt.Sprintf("Generated: %s", r.GeneratedAt), "", 1, "L", false, 0, "")
	doc.Ln(4)

	// Balance table
	doc.SetFont("Arial", "B", 12)
	doc.CellFormat(0, 8, "Current Balances", "", 1, "L", false, 0, "")
	doc.SetFont("Arial", "B", 10)
	doc.SetFillColor(230, 230, 230)
	doc.CellFormat(90, 7, "Leave Type", "1", 0, "L", true, 0, "")
	doc.CellFormat(40, 7, "Balance", "1", 1, "R", true, 0, "")
	doc.SetFont("Arial", "", 10)
	for _, b := range r.Balances {
		doc.CellFormat(90, 7, b.LeaveTypeName, "1", 0, "L", false, 0, "")
		doc.CellFormat(40, 7, fmt.Sprintf("%d", b.Balance), "1", 1, "R", false, 0, "")
	}
	doc.Ln(6)

	// Request history table
	doc.SetFont("Arial", "B", 12)
	doc.CellFormat(0, 8, "Request History", "", 1, "L", false, 0, "")
	doc.SetFont("Arial", "B", 10)
	doc.CellFormat(45, 7, "Leave Type", "1", 0, "L", true, 0, "")
	doc.CellFormat(30, 7, "From", "1", 0, "L", true, 0, "")
	doc.CellFormat(30, 7, "To", "1", 0, "L", true, 0, "")
	doc.CellFormat(30, 7, "Working Days", "1", 0, "R", true, 0, "")
	doc.CellFormat(30, 7, "Status", "1", 1, "L", true, 0, "")
	doc.SetFont("Arial", "", 10)
	for _, req := range r.Requests {
		doc.CellFormat(45, 7, req.LeaveTypeName, "1", 0, "L", false, 0, "")
		doc.CellFormat(30, 7, req.StartDate, "1", 0, "L", false, 0, "")
		doc.CellFormat(30, 7, req.EndDate, "1", 0, "L", false, 0, "")
		doc.CellFormat(30, 7, fmt.Sprintf("%d", req.WorkingDays), "1", 0, "R", false, 0, "")
		doc.CellFormat(30, 7, req.Status, "1", 1, "L", false, 0, "")
	}

	return doc.Output(w)
}
