package patient

import "time"

// Patient is a person that visits are booked for.
type Patient struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	DateOfBirth *string   `json:"date_of_birth"`
	Email       *string   `json:"email"`
	Phone       *string   `json:"phone"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateParams is the accepted input for creating a patient.
type CreateParams struct {
	Name        string `json:"name"`
	DateOfBirth string `json:"date_of_birth"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}
