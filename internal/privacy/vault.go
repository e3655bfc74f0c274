// Package privacy redacts free text and pseudonymizes user identities before
// data crosses a trust boundary (display, assistant context, logs).
package privacy

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/geocoder89/payrollhub/internal/domain/payroll"
)

const RedactionMarker = "[REDACTED]"

const pseudonymPrefix = "User_"

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	// \p{Nd} and \p{Z} because \d and \s are ASCII-only in RE2
	phonePattern = regexp.MustCompile(`\+?\p{Nd}[\p{Nd}\s\p{Z}\-()]{7,}\p{Nd}`)
)

// ScrubPII replaces emails, then phone numbers, with RedactionMarker.
// Emails go first so digits inside an address are consumed by the email match.
func ScrubPII(text string) string {
	scrubbed := emailPattern.ReplaceAllLiteralString(text, RedactionMarker)
	return phonePattern.ReplaceAllLiteralString(scrubbed, RedactionMarker)
}

// ContainsPII reports whether text still has an email or phone-like run.
func ContainsPII(text string) bool {
	return emailPattern.MatchString(text) || phonePattern.MatchString(text)
}

// AnonymizeUser swaps the display name for a stable pseudonym.
// The 4 hex char suffix only has 65536 values; never use it as an identifier.
func AnonymizeUser(u payroll.UserProfile) payroll.AnonymizedUser {
	return payroll.AnonymizedUser{
		ID:         u.ID,
		Name:       Pseudonym(u.ID, u.Name),
		Role:       u.Role,
		HourlyRate: u.HourlyRate,
	}
}

// Pseudonym is "User_" plus the first 4 hex chars, uppercased, of sha256(id + ":" + name).
// It is deterministic so the same employee reads the same across sessions.
func Pseudonym(id, name string) string {
	sum := sha256.Sum256([]byte(id + ":" + name))
	suffix := strings.ToUpper(hex.EncodeToString(sum[:])[:4])

	return pseudonymPrefix + suffix
}
