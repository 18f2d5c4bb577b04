package logger

// Fields is an alias for map[string]interface{} for convenience.
type Fields map[string]interface{}

// Tracing fields propagated through the call chain via context.
const (
	// FieldRequestID is the HTTP request ID (UUID)
	FieldRequestID = "request_id"

	// FieldUserID is the acting user's ID
	FieldUserID = "user_id"

	// FieldConversationID is the chat conversation ID
	FieldConversationID = "conversation_id"

	// FieldComponent is the component/module name
	FieldComponent = "component"

	// FieldProvider is an upstream provider identifier (llm, embedding, video search)
	FieldProvider = "provider"
)

// Metric fields attached per log entry for aggregation.
const (
	// FieldDurationMs is the execution duration in milliseconds
	FieldDurationMs = "duration_ms"

	// FieldCount is a generic count field
	FieldCount = "count"

	// FieldSize is the data size in bytes
	FieldSize = "size"

	// FieldStatus is the operation status
	FieldStatus = "status"
)
