package metrics

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Business metric names
const (
	MetricNameSessionsStarted          = "play_sessions_started_total"
	MetricNameSessionsEnded            = "play_sessions_ended_total"
	MetricNameSessionConflicts         = "play_session_conflicts_total"
	MetricNameCompletionRecalculations = "completion_recalculations_total"
)

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Business metric help text
const (
	HelpTextSessionsStarted          = "Total number of play sessions started"
	HelpTextSessionsEnded            = "Total number of play sessions ended"
	HelpTextSessionConflicts         = "Total number of session starts rejected by the single-active-session rule"
	HelpTextCompletionRecalculations = "Total number of completion percentage recalculations"
)

// Label names
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
)

// HTTPLatencyBuckets are the histogram buckets for request latency
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}
