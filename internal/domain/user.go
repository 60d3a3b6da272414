package domain

import "time"

// User is a registered account. The college and year of study come from the
// profile and feed the event fee-waiver policy.
type User struct {
	ID          uint      `json:"id"`
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	Password    string    `json:"-"`
	Name        string    `json:"name"`
	College     string    `json:"college"`
	YearOfStudy string    `json:"year_of_study"`
	PhoneNumber string    `json:"phone_number"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
