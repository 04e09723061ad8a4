package handler

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RateLimitedResponse tells the client how long to wait before retrying.
type RateLimitedResponse struct {
	Error        string `json:"error"`
	RetryMinutes int    `json:"retry_minutes"`
}
