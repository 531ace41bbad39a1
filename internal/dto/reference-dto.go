package dto

type CreateFilialDTO struct {
	Name string `json:"name" validate:"required,not_blank"`
}

type UpdateFilialDTO struct {
	Name *string `json:"name,omitempty" validate:"omitempty,not_blank"`
}

type CreateEquipmentDTO struct {
	Name              string `json:"name" validate:"required,not_blank"`
	TagEquipment      string `json:"tagEquipment" validate:"required,not_blank"`
	Filial            string `json:"filial" validate:"required,not_blank"`
	CategoryEquipment string `json:"categoryEquipment" validate:"required,not_blank"`
}

type UpdateEquipmentDTO struct {
	Name              *string `json:"name,omitempty" validate:"omitempty,not_blank"`
	TagEquipment      *string `json:"tagEquipment,omitempty" validate:"omitempty,not_blank"`
	Filial            *string `json:"filial,omitempty" validate:"omitempty,not_blank"`
	CategoryEquipment *string `json:"categoryEquipment,omitempty" validate:"omitempty,not_blank"`
}

type CreateEquipmentCategoryDTO struct {
	Name   string `json:"name" validate:"required,not_blank"`
	Filial string `json:"filial" validate:"required,not_blank"`
}

type UpdateEquipmentCategoryDTO struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,not_blank"`
	Filial *string `json:"filial,omitempty" validate:"omitempty,not_blank"`
}

type CreateUserDTO struct {
	Name       string `json:"name" validate:"required,not_blank"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	LevelUser  int    `json:"levelUser" validate:"required,oneof=1 2"`
	Filial     string `json:"filial" validate:"required,not_blank"`
	CostCenter string `json:"costCenter" validate:"required,not_blank"`
}

type UpdateUserDTO struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,not_blank"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	Password   *string `json:"password,omitempty" validate:"omitempty,min=6"`
	LevelUser  *int    `json:"levelUser,omitempty" validate:"omitempty,oneof=1 2"`
	Filial     *string `json:"filial,omitempty" validate:"omitempty,not_blank"`
	CostCenter *string `json:"costCenter,omitempty" validate:"omitempty,not_blank"`
}

// StatusDeleteDTO é o corpo da desativação lógica.
type StatusDeleteDTO struct {
	StatusDelete bool `json:"statusDelete"`
}
