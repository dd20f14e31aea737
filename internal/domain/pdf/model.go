package pdf

import (
	"fmt"
	"strings"
	"time"
)

// InvoiceData is the data model handed to the typst template. Every value is
// pre-formatted by the billing locale so the template stays purely positional
// and the formatting policy stays testable in Go.
type InvoiceData struct {
	IssueDate       string        `json:"issue_date"`
	PaymentTermDays int           `json:"payment_term_days"`
	Business        *BusinessInfo `json:"business"`
	Bank            *BankInfo     `json:"bank"`
	Student         *StudentInfo  `json:"student"`
	Rows            []RowData     `json:"rows"`
	TotalHours      string        `json:"total_hours"`
	TotalDue        string        `json:"total_due"`
}

// BusinessInfo is the static sender identity block printed top-left.
type BusinessInfo struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Location string `json:"location"`
}

// BankInfo is the static banking block printed top-right.
type BankInfo struct {
	Name          string `json:"name"`
	BranchCode    string `json:"branch_code"`
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
}

// StudentInfo is the invoice recipient block.
type StudentInfo struct {
	Name  string `json:"name"`
	Grade string `json:"grade"`
}

// RowData is one table row for a billable session.
type RowData struct {
	Hours     string `json:"hours"`
	Subject   string `json:"subject"`
	ModeLabel string `json:"mode_label"`
	Date      string `json:"date"`
	Rate      string `json:"rate"`
	Amount    string `json:"amount"`
}

const fileNameDateLayout = "02-01-2006"

// FileName returns the artifact name for a rendered invoice:
// spaces in the student name become underscores, followed by a date stamp,
// e.g. Jane_Doe_faktuur_29-08-2026.pdf.
func FileName(studentName string, now time.Time) string {
	name := strings.ReplaceAll(strings.TrimSpace(studentName), " ", "_")
	return fmt.Sprintf("%s_faktuur_%s.pdf", name, now.Format(fileNameDateLayout))
}
