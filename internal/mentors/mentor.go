package mentors

import "time"

// Mentor and their specialties. Specialties live in a child table and
// are always read and written together with the parent row.
type Mentor struct {
	ID             int       `json:"id"`
	Nome           string    `json:"nome"`
	Cargo          string    `json:"cargo"`
	Empresa        string    `json:"empresa"`
	Contato        string    `json:"contato"`
	Foto           *string   `json:"foto"`
	UpdatedAt      time.Time `json:"updated_at"`
	Especialidades []string  `json:"especialidades"`
}
