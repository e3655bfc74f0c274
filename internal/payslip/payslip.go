// Package payslip renders the employee-facing pay slip and the payout state
// that follows an audit.
package payslip

import (
	"fmt"
	"strings"

	"github.com/geocoder89/payrollhub/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

type PayoutState string

const (
	PayoutBlocked          PayoutState = "blocked"
	PayoutReady            PayoutState = "ready"
	PayoutAwaitingApproval PayoutState = "awaiting_approval"
)

const FileName = "payslip.txt"

type Input struct {
	Employee   payroll.UserProfile
	Bundle     payroll.Bundle
	HRApproved bool
}

// DecidePayout: flagged records are blocked no matter what HR says.
func DecidePayout(rec payroll.PayrollRecord, hrApproved bool) PayoutState {
	switch {
	case rec.AuditFlag:
		return PayoutBlocked
	case rec.Status == payroll.StatusApproved && hrApproved:
		return PayoutReady
	default:
		return PayoutAwaitingApproval
	}
}

func AuditTrail(rec payroll.PayrollRecord, hrApproved bool) []string {
	trail := []string{
		"Timesheet scanned",
		"PII scrubbed",
		"Payroll calculated",
	}

	if rec.AuditFlag {
		trail = append(trail, "AI audit flagged overtime")
	} else {
		trail = append(trail, "AI audit passed")
	}

	if hrApproved {
		trail = append(trail, "HR approval granted")
	}

	return trail
}

// Render builds the plain-text pay slip. It carries the employee's real name,
// so it must only be shown to that employee and never logged.
func Render(in Input) string {
	rec := in.Bundle.PayrollRecord
	hours := decimal.NewFromFloat(in.Bundle.Timesheet.HoursClaimed).StringFixed(1)

	var b strings.Builder

	fmt.Fprintf(&b, "Employee: %s\n", in.Employee.Name)
	fmt.Fprintf(&b, "Role: %s\n", in.Employee.Role)
	fmt.Fprintf(&b, "Hours Claimed: %s\n", hours)
	fmt.Fprintf(&b, "Gross Pay: %s\n", FormatMoney(rec.GrossPay))
	fmt.Fprintf(&b, "Tax: %s\n", FormatMoney(rec.Tax))
	fmt.Fprintf(&b, "Net Pay: %s\n", FormatMoney(rec.NetPay))
	fmt.Fprintf(&b, "Status: %s\n", rec.Status)
	fmt.Fprintf(&b, "Payout: %s\n", DecidePayout(rec, in.HRApproved))

	if rec.AuditFlag {
		fmt.Fprintf(&b, "Audit: %s\n", rec.AuditReason)
	}

	b.WriteString("\nAudit Trail:\n")
	for _, step := range AuditTrail(rec, in.HRApproved) {
		fmt.Fprintf(&b, "- %s\n", step)
	}

	return b.String()
}
