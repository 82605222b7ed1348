package types

// TestMessageRequest runs one turn without going through Facebook.
type TestMessageRequest struct {
	Text   string `json:"text"`
	UserID string `json:"user_id,omitempty"`
}

// AdminResetRequest clears manual mode for a user.
type AdminResetRequest struct {
	UserID string `json:"user_id"`
}

type AdminResetResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type ManualModeStatusResponse struct {
	UserID     string `json:"user_id"`
	ManualMode bool   `json:"manual_mode"`
	Status     string `json:"status"` // "manual" or "auto"
}

type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
