package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile часть профиля пользователя, которую обновляет движок (знак по Солнцу и дата рождения)
type UserProfile struct {
	UserID     uuid.UUID `json:"user_id" db:"user_id"`
	ZodiacSign *Sign     `json:"zodiac_sign,omitempty" db:"zodiac_sign"`
	Birthdate  *string   `json:"birthdate,omitempty" db:"birthdate"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}
