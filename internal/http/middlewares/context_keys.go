package middlewares

// Keys set on *gin.Context. Handlers write the payroll ones so the request logger can pick them up.
const (
	CtxRequestID     = "request_id"
	CtxTimesheetID   = "timesheet_id"
	CtxPayrollStatus = "payroll_status"
)
