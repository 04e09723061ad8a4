package domain

import (
	"strconv"
	"time"
)

// User is one chat-platform account. The ID is the platform user id.
type User struct {
	ID        int64     `json:"id" db:"id"`
	Username  *string   `json:"username" db:"username"`
	FirstName *string   `json:"first_name" db:"first_name"`
	Lang      *string   `json:"lang" db:"lang"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ContactLink returns how a match counterpart can be reached: the public
// username when present, otherwise a deep link to the account.
func (u *User) ContactLink() string {
	if u.Username != nil && *u.Username != "" {
		return "@" + *u.Username
	}
	return "tg://user?id=" + strconv.FormatInt(u.ID, 10)
}
