package models

import (
	"time"

	"gorm.io/datatypes"
)

// User is the persisted account record. Passwords are stored and compared
// as-is: this service has no credential hardening requirement and the login
// response intentionally returns the full stored record.
type User struct {
	Username string `json:"username" gorm:"primaryKey;size:100"`
	Password string `json:"password" gorm:"not null;size:255"`

	// Scores maps a section name to the best score accepted for it,
	// e.g. {"PYQ": 5, "Assignment": 3}.
	Scores datatypes.JSONType[map[string]int] `json:"scores" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// BestScore returns the stored best for a section, 0 when the section has
// never been submitted.
func (u *User) BestScore(section string) int {
	return u.Scores.Data()[section]
}

// SetScore records a new best for a section. Callers are responsible for the
// monotonicity check; this is a plain write.
func (u *User) SetScore(section string, score int) {
	scores := u.Scores.Data()
	if scores == nil {
		scores = make(map[string]int)
	}
	scores[section] = score
	u.Scores = datatypes.NewJSONType(scores)
}

// NewUser creates an account with an empty score map.
func NewUser(username, password string) *User {
	return &User{
		Username: username,
		Password: password,
		Scores:   datatypes.NewJSONType(map[string]int{}),
	}
}
