package entities

// Reference é o que os cadastros auxiliares têm em comum.
type Reference interface {
	GetID() string
	GetName() string
	IsDeleted() bool
	FilialName() string
}

var (
	_ Reference = Filial{}
	_ Reference = Equipment{}
	_ Reference = EquipmentCategory{}
	_ Reference = User{}
)
