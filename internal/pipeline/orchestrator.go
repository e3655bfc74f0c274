// Package pipeline runs the extract -> calculate -> audit payroll stages.
//
// The orchestrator keeps no state between stages: the claimed hours travel
// with the call to Audit, so one Orchestrator can serve concurrent requests.
package pipeline

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/geocoder89/payrollhub/internal/domain/payroll"
	"github.com/geocoder89/payrollhub/internal/privacy"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	OvertimeToken = "overtime"

	OvertimeHours = 50.0
	StandardHours = 40.0

	TaxRate = 0.10

	// ReviewThresholdHours is exclusive: exactly 45 hours is approved.
	ReviewThresholdHours = 45.0

	ReasonOvertime = "Abnormal overtime detected. Requires human approval."
	ReasonClean    = "Clean"
)

const (
	StageExtract   = "extract"
	StageCalculate = "calculate"
	StageAudit     = "audit"
)

// Recorder receives stage timings and audit outcomes. Prometheus implements it in production.
type Recorder interface {
	ObserveStage(stage string, d time.Duration)
	ObserveAudit(status payroll.Status)
}

type Orchestrator struct {
	log    *slog.Logger
	rec    Recorder
	tracer trace.Tracer
}

func New(log *slog.Logger, rec Recorder) *Orchestrator {
	if log == nil {
		log = slog.Default()
	}

	return &Orchestrator{
		log:    log,
		rec:    rec,
		tracer: otel.Tracer("github.com/geocoder89/payrollhub/internal/pipeline"),
	}
}

func (o *Orchestrator) observe(stage string, start time.Time) {
	if o.rec != nil {
		o.rec.ObserveStage(stage, time.Since(start))
	}
}

// Extract classifies the submission and stores a scrubbed copy of it.
// It never fails: empty or garbage input gets the standard week.
func (o *Orchestrator) Extract(ctx context.Context, text string) payroll.Timesheet {
	ctx, span := o.tracer.Start(ctx, "payroll.extract")
	defer span.End()
	defer o.observe(StageExtract, time.Now())

	hours := StandardHours
	if strings.Contains(strings.ToLower(text), OvertimeToken) {
		hours = OvertimeHours
	}

	ts := payroll.NewTimesheet(privacy.ScrubPII(text), hours)

	span.SetAttributes(
		attribute.String("timesheet.id", ts.ID),
		attribute.Float64("timesheet.hours_claimed", hours),
	)
	o.log.DebugContext(ctx, "timesheet extracted", "timesheet_id", ts.ID, "hours_claimed", hours)

	return ts
}

// Calculate computes the pay breakdown and returns a fresh pending record.
func (o *Orchestrator) Calculate(ctx context.Context, ts payroll.Timesheet, rate float64) (*payroll.PayrollRecord, error) {
	ctx, span := o.tracer.Start(ctx, "payroll.calculate")
	defer span.End()
	defer o.observe(StageCalculate, time.Now())

	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate < 0 {
		span.SetStatus(codes.Error, payroll.ErrInvalidRate.Error())
		return nil, payroll.ErrInvalidRate
	}

	// Scrubbing is idempotent, so any difference means unscrubbed text got this far.
	if privacy.ScrubPII(ts.RawText) != ts.RawText {
		o.log.WarnContext(ctx, "unscrubbed timesheet text reached calculation", "timesheet_id", ts.ID)
	}

	gross := ts.HoursClaimed * rate
	tax := gross * TaxRate
	net := gross - tax

	rec := payroll.NewPendingRecord(ts.ID, gross, tax, net)

	span.SetAttributes(
		attribute.String("payroll.id", rec.ID),
		attribute.Float64("payroll.gross_pay", gross),
	)
	o.log.DebugContext(ctx, "payroll calculated", "payroll_id", rec.ID, "timesheet_id", ts.ID)

	return rec, nil
}

// Audit resolves a pending record to approved or needs_review in place.
// A nil record returns payroll.ErrNilRecord.
func (o *Orchestrator) Audit(ctx context.Context, rec *payroll.PayrollRecord, hoursClaimed float64) (*payroll.PayrollRecord, error) {
	ctx, span := o.tracer.Start(ctx, "payroll.audit")
	defer span.End()
	defer o.observe(StageAudit, time.Now())

	if rec == nil {
		span.SetStatus(codes.Error, payroll.ErrNilRecord.Error())
		return nil, payroll.ErrNilRecord
	}

	if rec.Status != payroll.StatusPending {
		span.SetStatus(codes.Error, payroll.ErrAlreadyAudited.Error())
		return rec, payroll.ErrAlreadyAudited
	}

	if hoursClaimed > ReviewThresholdHours {
		rec.AuditFlag = true
		rec.AuditReason = ReasonOvertime
		rec.Status = payroll.StatusNeedsReview
	} else {
		rec.AuditFlag = false
		rec.AuditReason = ReasonClean
		rec.Status = payroll.StatusApproved
	}

	if o.rec != nil {
		o.rec.ObserveAudit(rec.Status)
	}

	span.SetAttributes(
		attribute.String("payroll.id", rec.ID),
		attribute.String("payroll.status", string(rec.Status)),
	)
	o.log.InfoContext(ctx, "payroll audited", "payroll_id", rec.ID, "status", rec.Status, "audit_flag", rec.AuditFlag)

	return rec, nil
}

// RunPipeline is the only entry point that guarantees stage ordering.
func (o *Orchestrator) RunPipeline(ctx context.Context, text string, rate float64) (payroll.Bundle, error) {
	ctx, span := o.tracer.Start(ctx, "payroll.pipeline")
	defer span.End()

	ts := o.Extract(ctx, text)

	rec, err := o.Calculate(ctx, ts, rate)
	if err != nil {
		return payroll.Bundle{}, err
	}

	rec, err = o.Audit(ctx, rec, ts.HoursClaimed)
	if err != nil {
		return payroll.Bundle{}, err
	}

	return payroll.NewBundle(ts, *rec), nil
}
