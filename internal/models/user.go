package models

import "time"

// User is a web account. TelegramUsername, when set, is the join key between
// a chat identity and the account: a chat whose sender username matches it is
// treated as authenticated.
type User struct {
	ID               int64      `json:"id"`
	Username         string     `json:"username"`
	Email            string     `json:"email"`
	PasswordHash     string     `json:"-"`
	Role             string     `json:"role"`
	TelegramUsername NullString `json:"telegramUsername"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}
