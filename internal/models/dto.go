package models

// LoginRequest is the combined login/signup payload. An unknown username
// creates the account; a known one must match the stored password exactly.
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1,max=100"`
	Password string `json:"password" validate:"required"`
}

// SubmitRequest carries a quiz submission. When Score is present it is
// trusted verbatim; otherwise the server grades Answers positionally against
// the fixed question set. Section defaults to "default" when empty.
type SubmitRequest struct {
	Username string   `json:"username" validate:"required,min=1,max=100"`
	Answers  []string `json:"answers"`
	Section  string   `json:"section"`
	Score    *int     `json:"score" validate:"omitempty,min=0"`
}

// SubmitResponse reports the (possibly unchanged) best score for the
// submitted section.
type SubmitResponse struct {
	Score int `json:"score"`
}

// LeaderboardEntry is one row of a per-section leaderboard, sorted by score
// descending.
type LeaderboardEntry struct {
	Username string `json:"username"`
	Score    int    `json:"score"`
}

// HealthResponse is the ungated health probe body.
type HealthResponse struct {
	OK bool   `json:"ok"`
	DB string `json:"db"`
}
