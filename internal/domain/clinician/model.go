package clinician

import "time"

// Clinician is a care provider that visits are booked against.
type Clinician struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Specialty *string   `json:"specialty"`
	Email     *string   `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateParams is the accepted input for creating a clinician.
type CreateParams struct {
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Email     string `json:"email"`
}
