package funds

import "time"

// Fund is an investment fund partnered with the program. The Portuguese
// field names follow the product's public API contract.
type Fund struct {
	ID               int       `json:"id"`
	Parceiro         string    `json:"parceiro"`
	TipoInvestimento string    `json:"tipo_investimento"`
	TamanhoCheque    string    `json:"tamanho_cheque"`
	Tese             string    `json:"tese"`
	Contato          string    `json:"contato"`
	Logo             *string   `json:"logo"`
	UpdatedAt        time.Time `json:"updated_at"`
}
