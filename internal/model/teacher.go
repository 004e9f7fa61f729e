package model

// TeacherProfile represents the teacher side of a user account
type TeacherProfile struct {
	ID         int64    `json:"id"`
	UserID     int64    `json:"user_id"`
	Bio        *string  `json:"bio"`
	HourlyRate *float64 `json:"hourly_rate"`

	// Дополнительные поля для удобства (не из БД)
	User *User `json:"user,omitempty"`
}

// TeacherListing строка публичного каталога учителей
type TeacherListing struct {
	UserID         int64        `json:"user_id"`
	FirstName      string       `json:"first_name"`
	LastName       string       `json:"last_name"`
	ProfilePicture *string      `json:"profile_picture"`
	HourlyRate     *float64     `json:"hourly_rate"`
	Instruments    []Instrument `json:"instruments"`
	Rating         float64      `json:"rating"`
}

// TeacherInfo карточка учителя для страницы профиля
type TeacherInfo struct {
	FirstName      string       `json:"first_name"`
	LastName       string       `json:"last_name"`
	Bio            *string      `json:"bio"`
	HourlyRate     *float64     `json:"hourly_rate"`
	Instruments    []Instrument `json:"instruments"`
	ProfilePicture *string      `json:"profile_picture"`
	TotalLessons   int64        `json:"total_lessons"`
	Rating         float64      `json:"rating"`
}
