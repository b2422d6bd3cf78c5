package user

import (
	"strings"
	"time"

	"jobtracker/internal/common"
)

type User struct {
	ID             int64     `json:"id"`
	EmailAddress   string    `json:"email_address"`
	PasswordDigest string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type Session struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	TokenHash string    `json:"-"`
	IPAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
	CreatedAt time.Time `json:"created_at"`
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u User) Validate() error {
	var v common.Validation
	v.Required("email_address", u.EmailAddress)
	v.Email("email_address", u.EmailAddress)
	if u.PasswordDigest == "" {
		v.Add("password", common.MsgBlank)
	}
	return v.Err()
}
