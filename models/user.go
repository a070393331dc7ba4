// igp-generator/models/user.go
package models

import "gorm.io/gorm"

// Роли пользователей. Права у нас простые: студент видит только свои данные,
// каунселор управляет каталогом курсов и требованиями, админ - всем.
const (
	RoleStudent   = "student"
	RoleCounselor = "counselor"
	RoleAdmin     = "admin"
)

// User представляет учетную запись в системе.
type User struct {
	gorm.Model
	Login     string `json:"login" gorm:"unique;not null"`
	Email     string `json:"email" gorm:"unique"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"-" gorm:"not null"` // bcrypt-хэш, наружу не отдаем
	Role      string `json:"role" gorm:"type:varchar(20);not null;default:'student'"`
	Status    string `json:"status" gorm:"type:varchar(20);default:'active'"`
	PhotoURL  string `json:"photoUrl"`
}

// UserResponse - упрощенная структура для отправки информации о пользователе на фронтенд.
type UserResponse struct {
	ID       uint   `json:"id"`
	Login    string `json:"login"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
	PhotoURL string `json:"photoUrl"`
}

func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
