package benefits

// Benefit is one partner benefit card, owned by its category.
type Benefit struct {
	ID         int     `json:"id"`
	Category   string  `json:"category"`
	Parceiro   string  `json:"parceiro"`
	Descricao  string  `json:"descricao"`
	Beneficio  string  `json:"beneficio"`
	ComoAtivar string  `json:"como_ativar"`
	Logo       *string `json:"logo"`
}
