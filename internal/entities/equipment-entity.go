package entities

// Equipment referencia filial e categoria pelo NOME, não pelo id; renomear
// uma filial deixa os equipamentos órfãos.
type Equipment struct {
	ID                string `json:"id,omitempty"`
	Name              string `json:"name"`
	TagEquipment      string `json:"tagEquipment"`
	CategoryEquipment string `json:"categoryEquipment"`
	Filial            string `json:"filial"`
	StatusDelete      bool   `json:"statusDelete"`
}

func (e Equipment) GetID() string      { return e.ID }
func (e Equipment) GetName() string    { return e.Name }
func (e Equipment) IsDeleted() bool    { return e.StatusDelete }
func (e Equipment) FilialName() string { return e.Filial }
