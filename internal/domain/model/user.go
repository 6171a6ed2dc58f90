package model

import "time"

// プロフィール（ID → 氏名・連絡先・住所・ロール）
type User struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	FirstName    string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName     string    `gorm:"type:varchar(100);not null" json:"last_name"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	Phone        string    `gorm:"type:varchar(30)" json:"phone"`
	Address      string    `gorm:"type:text" json:"address"`
	Role         Role      `gorm:"type:varchar(20);not null;index" json:"account_type"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
