package entities

// User nunca carrega a senha; ela só existe no DTO de cadastro.
type User struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	LevelUser    int    `json:"levelUser"`
	Filial       string `json:"filial"`
	CostCenter   string `json:"costCenter"`
	StatusDelete bool   `json:"statusDelete"`
}

func (u User) GetID() string      { return u.ID }
func (u User) GetName() string    { return u.Name }
func (u User) IsDeleted() bool    { return u.StatusDelete }
func (u User) FilialName() string { return u.Filial }
