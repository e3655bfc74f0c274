package payroll

import "github.com/google/uuid"

func NewTimesheet(scrubbedText string, hoursClaimed float64) Timesheet {
	return Timesheet{
		ID:           uuid.NewString(),
		UserID:       UnknownUserID,
		RawText:      scrubbedText,
		HoursClaimed: hoursClaimed,
		FileName:     DefaultFileName,
	}
}

func NewPendingRecord(timesheetID string, gross, tax, net float64) *PayrollRecord {
	return &PayrollRecord{
		ID:          uuid.NewString(),
		TimesheetID: timesheetID,
		GrossPay:    gross,
		Tax:         tax,
		NetPay:      net,
		Status:      StatusPending,
		AuditFlag:   false,
		AuditReason: "",
		grossPaySet: true,
	}
}
