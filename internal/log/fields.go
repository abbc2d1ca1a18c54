package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldScenarioID = "scenario_id"
	FieldRecords    = "records"
	FieldGoals      = "goals"
	FieldHorizon    = "horizon_months"
)

// Standard component names
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentAnalysis = "analysis"
	ComponentStore    = "store"
	ComponentConfig   = "config"
	ComponentCLI      = "cli"
)
