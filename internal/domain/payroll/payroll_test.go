package payroll

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		status    Status
		wantValid bool
		wantFinal bool
	}{
		{StatusPending, true, false},
		{StatusApproved, true, true},
		{StatusNeedsReview, true, true},
		{Status("rejected"), false, false},
	}

	for _, tt := range tests {
		if got := tt.status.IsValid(); got != tt.wantValid {
			t.Fatalf("%s.IsValid() = %v", tt.status, got)
		}
		if got := tt.status.IsFinal(); got != tt.wantFinal {
			t.Fatalf("%s.IsFinal() = %v", tt.status, got)
		}
	}
}

func TestFactories(t *testing.T) {
	ts := NewTimesheet("Routine.", 40)
	if ts.ID == "" || ts.UserID != UnknownUserID || ts.FileName != DefaultFileName {
		t.Fatalf("unexpected timesheet defaults: %+v", ts)
	}

	rec := NewPendingRecord(ts.ID, 2000, 200, 1800)
	if rec.ID == "" || rec.ID == ts.ID || rec.TimesheetID != ts.ID {
		t.Fatalf("unexpected record ids: %+v", rec)
	}
	if rec.Status != StatusPending || rec.AuditFlag || rec.AuditReason != "" {
		t.Fatalf("record should start pending and unaudited: %+v", rec)
	}
}

func TestBundleJSONShape(t *testing.T) {
	rec := NewPendingRecord("ts", 2000, 200, 1800)
	rec.Status, rec.AuditFlag, rec.AuditReason = StatusNeedsReview, true, "overtime"

	raw, err := json.Marshal(NewBundle(NewTimesheet("x", 50), *rec))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	for _, key := range []string{`"timesheet"`, `"payroll_record"`, `"audit"`, `"hours_claimed"`, `"gross_pay"`, `"audit_flag"`, `"flag":true`, `"reason":"overtime"`} {
		if !strings.Contains(string(raw), key) {
			t.Fatalf("bundle json missing %s: %s", key, raw)
		}
	}
}

func TestUserProfileValidate(t *testing.T) {
	tests := []struct {
		name    string
		user    UserProfile
		wantErr bool
	}{
		{name: "valid", user: UserProfile{ID: "1", Name: "Jane Doe", Role: "Engineer", HourlyRate: 50}},
		{name: "no_role_ok", user: UserProfile{ID: "1", Name: "Jane Doe", HourlyRate: 50}},
		{name: "zero_rate", user: UserProfile{ID: "1", Name: "Jane Doe"}, wantErr: true},
		{name: "negative_rate", user: UserProfile{ID: "1", Name: "Jane Doe", HourlyRate: -5}, wantErr: true},
		{name: "missing_name", user: UserProfile{ID: "1", HourlyRate: 50}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPayrollRecord_GrossPayPresence(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantSet   bool
		wantGross float64
	}{
		{name: "gross_only", body: `{"gross_pay":2000}`, wantSet: true, wantGross: 2000},
		{name: "zero_gross_is_present", body: `{"id":"r1","gross_pay":0}`, wantSet: true},
		{name: "id_only", body: `{"id":"r1"}`},
		{name: "null_gross", body: `{"gross_pay":null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec PayrollRecord
			if err := json.Unmarshal([]byte(tt.body), &rec); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if rec.HasGrossPay() != tt.wantSet || rec.GrossPay != tt.wantGross {
				t.Fatalf("HasGrossPay=%v GrossPay=%v", rec.HasGrossPay(), rec.GrossPay)
			}
		})
	}
}

func TestPayrollRecord_DecodeKeepsOtherFields(t *testing.T) {
	var b Bundle
	body := `{"payroll_record":{"id":"r1","timesheet_id":"t1","gross_pay":2500,"tax":250,"net_pay":2250,"status":"needs_review","audit_flag":true,"audit_reason":"x"}}`
	if err := json.Unmarshal([]byte(body), &b); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	rec := b.PayrollRecord
	if rec.ID != "r1" || rec.TimesheetID != "t1" || rec.Tax != 250 || rec.NetPay != 2250 ||
		rec.Status != StatusNeedsReview || !rec.AuditFlag || rec.AuditReason != "x" || !rec.HasGrossPay() {
		t.Fatalf("unexpected record %+v", rec)
	}
}

func TestNewPendingRecord_HasGrossPay(t *testing.T) {
	if !NewPendingRecord("ts", 0, 0, 0).HasGrossPay() {
		t.Fatalf("computed records always carry gross pay, even when zero")
	}
}
