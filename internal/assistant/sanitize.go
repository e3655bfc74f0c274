// Package assistant prepares privacy-safe payroll context and asks a
// text-completion backend to explain it, degrading to a local responder.
package assistant

import (
	"github.com/geocoder89/payrollhub/internal/domain/payroll"
	"github.com/geocoder89/payrollhub/internal/privacy"
)

// ChatContext is a pipeline result, optionally joined with the employee it belongs to.
type ChatContext struct {
	Bundle payroll.Bundle
	User   *payroll.UserProfile
}

// SanitizedContext is the only shape allowed to leave the process.
type SanitizedContext struct {
	payroll.Bundle
	User *payroll.AnonymizedUser `json:"user,omitempty"`
}

// Sanitize swaps the profile for its pseudonymous projection. Timesheet text was
// scrubbed during extraction and is not re-redacted here.
func Sanitize(cc ChatContext) SanitizedContext {
	sc := SanitizedContext{Bundle: cc.Bundle}

	if cc.User != nil {
		anon := privacy.AnonymizeUser(*cc.User)
		sc.User = &anon
	}

	return sc
}

// HasGrossPay reports whether the context carries a gross pay value, independent of record ids.
func (sc SanitizedContext) HasGrossPay() bool {
	return sc.PayrollRecord.HasGrossPay()
}
