package models

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	Phone        string `json:"phone,omitempty"`
	Role         string `gorm:"not null;default:student" json:"role"`
	PasswordHash string `gorm:"not null" json:"-"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
