package models

import (
	"fmt"
	"time"
)

// LanguagePair is the (base, target) combination a learner studies. Base is
// the language the learner already knows.
type LanguagePair struct {
	Base   string `json:"base" db:"base_lang"`
	Target string `json:"target" db:"target_lang"`
}

func (p LanguagePair) String() string {
	return fmt.Sprintf("%s->%s", p.Base, p.Target)
}

// SessionKey partitions all progress state
type SessionKey struct {
	UserID int64 `json:"user_id" db:"user_id"`
	LanguagePair
}

func (k SessionKey) String() string {
	return fmt.Sprintf("%d:%s", k.UserID, k.LanguagePair)
}

// Language is a supported language code with its display label
type Language struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// User is a learner known to the bot, with the language pair they last chose
type User struct {
	ID        int64     `json:"id" db:"user_id"`
	Username  string    `json:"username" db:"username"`
	FirstName string    `json:"first_name" db:"first_name"`
	LanguagePair
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
