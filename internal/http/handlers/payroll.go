package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/geocoder89/payrollhub/internal/assistant"
	"github.com/geocoder89/payrollhub/internal/domain/payroll"
	"github.com/geocoder89/payrollhub/internal/http/middlewares"
	"github.com/geocoder89/payrollhub/internal/payslip"
	"github.com/gin-gonic/gin"
)

type PipelineRunner interface {
	RunPipeline(ctx context.Context, text string, rate float64) (payroll.Bundle, error)
}

type Responder interface {
	Respond(ctx context.Context, query string, cc assistant.ChatContext) string
}

type RunRequest struct {
	Text string  `json:"text" binding:"max=20000"`
	Rate float64 `json:"rate" binding:"required,gt=0"`
}

type ChatRequest struct {
	Query   string               `json:"query" binding:"required,max=2000"`
	Context payroll.Bundle       `json:"context"`
	User    *payroll.UserProfile `json:"user"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

// PayslipRequest falls back to the employee's hourly rate when Rate is omitted.
type PayslipRequest struct {
	Text       string              `json:"text" binding:"max=20000"`
	Rate       float64             `json:"rate" binding:"omitempty,gt=0"`
	User       payroll.UserProfile `json:"user"`
	HRApproved bool                `json:"hrApproved"`
}

type PayrollHandler struct {
	pipeline PipelineRunner
	chat     Responder
	log      *slog.Logger
}

func NewPayrollHandler(log *slog.Logger, pipeline PipelineRunner, chat Responder) *PayrollHandler {
	if log == nil {
		log = slog.Default()
	}
	return &PayrollHandler{pipeline: pipeline, chat: chat, log: log}
}

func (h *PayrollHandler) Run(ctx *gin.Context) {
	var req RunRequest

	if !BindJSON(ctx, &req) {
		return
	}

	bundle, ok := h.run(ctx, req.Text, req.Rate)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, bundle)
}

func (h *PayrollHandler) Chat(ctx *gin.Context) {
	var req ChatRequest

	if !BindJSON(ctx, &req) {
		return
	}

	reply := h.chat.Respond(ctx.Request.Context(), req.Query, assistant.ChatContext{
		Bundle: req.Context,
		User:   req.User,
	})

	ctx.JSON(http.StatusOK, ChatResponse{Reply: reply})
}

func (h *PayrollHandler) Payslip(ctx *gin.Context) {
	var req PayslipRequest

	if !BindJSON(ctx, &req) {
		return
	}

	rate := req.Rate
	if rate == 0 {
		rate = req.User.HourlyRate
	}

	bundle, ok := h.run(ctx, req.Text, rate)
	if !ok {
		return
	}

	body := payslip.Render(payslip.Input{
		Employee:   req.User,
		Bundle:     bundle,
		HRApproved: req.HRApproved,
	})

	ctx.Header("Content-Disposition", `attachment; filename="`+payslip.FileName+`"`)
	ctx.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(body))
}

func (h *PayrollHandler) run(ctx *gin.Context, text string, rate float64) (payroll.Bundle, bool) {
	bundle, err := h.pipeline.RunPipeline(ctx.Request.Context(), text, rate)
	if err != nil {
		if errors.Is(err, payroll.ErrInvalidRate) {
			RespondUnprocessable(ctx, "invalid_rate", "Hourly rate must be a finite, non-negative number")
			return payroll.Bundle{}, false
		}

		h.log.ErrorContext(ctx.Request.Context(), "payroll pipeline failed", "err", err)
		RespondInternal(ctx, "Could not process timesheet")
		return payroll.Bundle{}, false
	}

	ctx.Set(middlewares.CtxTimesheetID, bundle.Timesheet.ID)
	ctx.Set(middlewares.CtxPayrollStatus, string(bundle.PayrollRecord.Status))

	return bundle, true
}
