package dto

// LoginDTO usa "senha", como o backend espera.
type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"senha" validate:"required,min=6"`
}

type LoginResponseDTO struct {
	Token string `json:"token"`
	Nivel int    `json:"nivel"`
}
