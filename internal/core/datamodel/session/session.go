package session

import "time"

// Session is the persisted portal session. ID holds the hex digest of the cookie value,
// never the cookie value itself.
type Session struct {
	ID          string    `gorm:"primaryKey;column:id;size:64"`
	AccessToken string    `gorm:"column:access_token;not null"`
	Subject     string    `gorm:"column:subject;not null;index"`
	Role        string    `gorm:"column:role;not null"`
	Profile     string    `gorm:"column:profile"`
	ExpiresAt   time.Time `gorm:"column:expires_at;not null;index"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	LastSeenAt  time.Time `gorm:"column:last_seen_at"`
}

func (Session) TableName() string {
	return "portal_sessions"
}
