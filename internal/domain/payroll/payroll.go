package payroll

import (
	"encoding/json"
	"errors"
)

type Status string

const (
	StatusPending     Status = "pending"
	StatusApproved    Status = "approved"
	StatusNeedsReview Status = "needs_review"
)

// UnknownUserID is stored on timesheets until an identity is attached.
const UnknownUserID = "unknown"

const DefaultFileName = "ingested.txt"

var (
	ErrInvalidRate    = errors.New("hourly rate must be a finite, non-negative number")
	ErrAlreadyAudited = errors.New("payroll record has already been audited")
	ErrNilRecord      = errors.New("payroll record is nil")
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusNeedsReview:
		return true
	default:
		return false
	}
}

// IsFinal reports whether the status was produced by an audit.
// A final status never moves back to pending.
func (s Status) IsFinal() bool {
	return s == StatusApproved || s == StatusNeedsReview
}

// Timesheet is one work-hours submission after PII redaction.
type Timesheet struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	RawText      string  `json:"raw_text"`
	HoursClaimed float64 `json:"hours_claimed"`
	FileName     string  `json:"file_name"`
}

// PayrollRecord is the pay breakdown and audit outcome for exactly one timesheet.
type PayrollRecord struct {
	ID          string  `json:"id"`
	TimesheetID string  `json:"timesheet_id"`
	GrossPay    float64 `json:"gross_pay"`
	Tax         float64 `json:"tax"`
	NetPay      float64 `json:"net_pay"`
	Status      Status  `json:"status"`
	AuditFlag   bool    `json:"audit_flag"`
	AuditReason string  `json:"audit_reason"`

	// set by NewPendingRecord, or by decoding a payload that carries gross_pay
	grossPaySet bool
}

// HasGrossPay reports whether GrossPay was computed or supplied, as opposed to zero by omission.
func (r PayrollRecord) HasGrossPay() bool {
	return r.grossPaySet
}

func (r *PayrollRecord) UnmarshalJSON(data []byte) error {
	type plain PayrollRecord

	var aux struct {
		plain
		GrossPay *float64 `json:"gross_pay"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*r = PayrollRecord(aux.plain)
	if aux.GrossPay != nil {
		r.GrossPay = *aux.GrossPay
		r.grossPaySet = true
	}

	return nil
}

type AuditResult struct {
	Flag   bool   `json:"flag"`
	Reason string `json:"reason"`
}

// Bundle is the serializable result of one pipeline run.
type Bundle struct {
	Timesheet     Timesheet     `json:"timesheet"`
	PayrollRecord PayrollRecord `json:"payroll_record"`
	Audit         AuditResult   `json:"audit"`
}

func NewBundle(ts Timesheet, rec PayrollRecord) Bundle {
	return Bundle{
		Timesheet:     ts,
		PayrollRecord: rec,
		Audit: AuditResult{
			Flag:   rec.AuditFlag,
			Reason: rec.AuditReason,
		},
	}
}
