package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/geocoder89/payrollhub/internal/payslip"
)

const SystemPrompt = "You are a helpful HR Assistant. Explain the payroll calculation to the user " +
	"clearly. Be empathetic. Use the provided context."

const clarificationReply = "I'm here to help explain your payroll details. Could you share which part " +
	"you want clarified?"

// Gateway is a text-completion backend.
type Gateway interface {
	Complete(ctx context.Context, query string, sc SanitizedContext) (string, error)
}

// LocalGateway answers from a fixed template and never fails.
type LocalGateway struct{}

func NewLocalGateway() *LocalGateway { return &LocalGateway{} }

func (g *LocalGateway) Complete(_ context.Context, query string, sc SanitizedContext) (string, error) {
	if !strings.Contains(strings.ToLower(query), "tax") {
		return clarificationReply, nil
	}

	if !sc.HasGrossPay() {
		return "Your tax was calculated at 10% of your gross pay.", nil
	}

	return fmt.Sprintf(
		"Your tax was calculated at 10%% of your gross pay of $%s.",
		payslip.FormatAmount(sc.PayrollRecord.GrossPay),
	), nil
}
