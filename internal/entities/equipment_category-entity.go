package entities

type EquipmentCategory struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name"`
	Filial       string `json:"filial"`
	StatusDelete bool   `json:"statusDelete"`
}

func (c EquipmentCategory) GetID() string      { return c.ID }
func (c EquipmentCategory) GetName() string    { return c.Name }
func (c EquipmentCategory) IsDeleted() bool    { return c.StatusDelete }
func (c EquipmentCategory) FilialName() string { return c.Filial }
