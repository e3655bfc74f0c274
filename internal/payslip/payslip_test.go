package payslip

import (
	"strings"
	"testing"

	"github.com/geocoder89/payrollhub/internal/domain/payroll"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 0, want: "$0.00"},
		{in: 2000, want: "$2,000.00"},
		{in: 2250.5, want: "$2,250.50"},
		{in: 1234567.891, want: "$1,234,567.89"},
		{in: 999.999, want: "$1,000.00"},
		{in: -42.1, want: "-$42.10"},
		{in: -0.004, want: "$0.00"},
		{in: 1000000, want: "$1,000,000.00"},
	}

	for _, tt := range tests {
		if got := FormatMoney(tt.in); got != tt.want {
			t.Fatalf("FormatMoney(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	if got := FormatAmount(2000); got != "2000.00" {
		t.Fatalf("FormatAmount(2000) = %q", got)
	}
}

func TestDecidePayout(t *testing.T) {
	flagged := payroll.PayrollRecord{Status: payroll.StatusNeedsReview, AuditFlag: true}
	clean := payroll.PayrollRecord{Status: payroll.StatusApproved}
	pending := payroll.PayrollRecord{Status: payroll.StatusPending}

	tests := []struct {
		name       string
		rec        payroll.PayrollRecord
		hrApproved bool
		want       PayoutState
	}{
		{name: "flagged without hr", rec: flagged, want: PayoutBlocked},
		{name: "flagged with hr", rec: flagged, hrApproved: true, want: PayoutBlocked},
		{name: "clean with hr", rec: clean, hrApproved: true, want: PayoutReady},
		{name: "clean without hr", rec: clean, want: PayoutAwaitingApproval},
		{name: "pending with hr", rec: pending, hrApproved: true, want: PayoutAwaitingApproval},
	}

	for _, tt := range tests {
		if got := DecidePayout(tt.rec, tt.hrApproved); got != tt.want {
			t.Fatalf("%s: got %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestAuditTrail(t *testing.T) {
	got := AuditTrail(payroll.PayrollRecord{AuditFlag: true}, true)
	want := []string{
		"Timesheet scanned",
		"PII scrubbed",
		"Payroll calculated",
		"AI audit flagged overtime",
		"HR approval granted",
	}

	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("trail = %v, want %v", got, want)
	}

	clean := AuditTrail(payroll.PayrollRecord{}, false)
	if clean[len(clean)-1] != "AI audit passed" {
		t.Fatalf("unexpected clean trail %v", clean)
	}
}

func TestRender(t *testing.T) {
	ts := payroll.Timesheet{ID: "ts-1", HoursClaimed: 40}
	rec := payroll.PayrollRecord{
		ID:          "pr-1",
		TimesheetID: "ts-1",
		GrossPay:    2000,
		Tax:         200,
		NetPay:      1800,
		Status:      payroll.StatusApproved,
		AuditReason: "Clean",
	}

	out := Render(Input{
		Employee:   payroll.UserProfile{ID: "1", Name: "Jane Doe", Role: "Engineer", HourlyRate: 50},
		Bundle:     payroll.NewBundle(ts, rec),
		HRApproved: true,
	})

	for _, want := range []string{
		"Employee: Jane Doe\n",
		"Role: Engineer\n",
		"Hours Claimed: 40.0\n",
		"Gross Pay: $2,000.00\n",
		"Tax: $200.00\n",
		"Net Pay: $1,800.00\n",
		"Status: approved\n",
		"Payout: ready\n",
		"- HR approval granted\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("pay slip missing %q:\n%s", want, out)
		}
	}

	if strings.Contains(out, "Audit: ") {
		t.Fatalf("clean pay slip should not carry an audit line:\n%s", out)
	}
}
