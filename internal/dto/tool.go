package dto

// ToolResult is the envelope every tool-call operation responds with.
// Recoverable failures (validation, not-found, conflict) come back with
// Success=false and a human-readable message; only storage failures escape as
// transport-level errors.
type ToolResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// OK builds a successful envelope.
func OK(message string, data any) ToolResult {
	return ToolResult{Success: true, Message: message, Data: data}
}

// Fail builds a recoverable-failure envelope.
func Fail(message string) ToolResult {
	return ToolResult{Success: false, Message: message}
}

// QueryResult carries the outcome of executeRawQuery.
type QueryResult struct {
	Columns      []string `json:"columns,omitempty"`
	Rows         [][]any  `json:"rows,omitempty"`
	RowsAffected int64    `json:"rowsAffected"`
}
