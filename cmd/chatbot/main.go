// Command chatbot runs one submission through the payroll pipeline and asks
// the assistant to explain it. Set GROQ_API_KEY to use the hosted model.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/geocoder89/payrollhub/internal/assistant"
	"github.com/geocoder89/payrollhub/internal/config"
	"github.com/geocoder89/payrollhub/internal/domain/payroll"
	"github.com/geocoder89/payrollhub/internal/observability"
	"github.com/geocoder89/payrollhub/internal/payslip"
	"github.com/geocoder89/payrollhub/internal/pipeline"
)

func main() {
	cfg := config.Load()

	text := flag.String("text", "Weekly report with overtime", "timesheet submission text")
	query := flag.String("query", "Why is my tax higher?", "question for the assistant")
	name := flag.String("name", "Jane Doe", "employee name")
	role := flag.String("role", "Engineer", "employee role")
	rate := flag.Float64("rate", 50.0, "hourly rate")
	slip := flag.Bool("payslip", false, "print the pay slip as well")
	flag.Parse()

	log := observability.NewLogger(cfg.Env, cfg.LogFormat, cfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	user := payroll.UserProfile{ID: "1", Name: *name, Role: *role, HourlyRate: *rate}
	if err := user.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "invalid employee profile:", err)
		os.Exit(2)
	}

	bundle, err := pipeline.New(log, nil).RunPipeline(ctx, *text, user.HourlyRate)
	if err != nil {
		fmt.Fprintln(os.Stderr, "pipeline failed:", err)
		os.Exit(1)
	}

	var gw assistant.Gateway
	if cfg.HasLLM() {
		gw = assistant.NewProtectedGateway(
			assistant.NewHTTPGateway(assistant.HTTPGatewayConfig{
				BaseURL: cfg.LLMBaseURL,
				APIKey:  cfg.LLMAPIKey,
				Model:   cfg.LLMModel,
			}),
			assistant.ProtectedGatewayConfig{Timeout: cfg.LLMTimeout},
		)
	}

	reply := assistant.NewChatbot(log, gw).Respond(ctx, *query, assistant.ChatContext{
		Bundle: bundle,
		User:   &user,
	})

	fmt.Printf("Status: %s\n", bundle.PayrollRecord.Status)
	fmt.Printf("Assistant: %s\n", reply)

	if *slip {
		fmt.Println()
		fmt.Print(payslip.Render(payslip.Input{Employee: user, Bundle: bundle}))
	}
}
