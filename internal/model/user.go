package model

import "time"

type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Role           Role      `json:"role"`
	ProfilePicture *string   `json:"profile_picture"` // указатель - может быть nil
	CreatedAt      time.Time `json:"created_at"`
}

// FullName возвращает имя для отображения
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IsTeacher checks if the user registered as a teacher
func (u *User) IsTeacher() bool {
	return u.Role == RoleTeacher
}

// IsAdmin checks if the user is an administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
