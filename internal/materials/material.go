package materials

// Material is a support resource (playbook, template, recording)
// shared with founders.
type Material struct {
	ID   int    `json:"id"`
	Nome string `json:"nome"`
	Ano  int    `json:"ano"`
	Link string `json:"link"`
}
