package models

// ChatRequest is the body of POST /api/chat. Message is a pointer so that an
// empty string still satisfies the required check while a missing field does not.
type ChatRequest struct {
	Message *string `json:"message" binding:"required"`
}

// ChatResponse carries the generated reply.
type ChatResponse struct {
	Response string `json:"response"`
}

// ErrorResponse reports a failed request; Detail is the error text.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// HealthResponse is the liveness reply of GET /.
type HealthResponse struct {
	Status string `json:"status"`
}
