package entities

type Filial struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name"`
	StatusDelete bool   `json:"statusDelete"`
}

func (f Filial) GetID() string      { return f.ID }
func (f Filial) GetName() string    { return f.Name }
func (f Filial) IsDeleted() bool    { return f.StatusDelete }
func (f Filial) FilialName() string { return f.Name }
