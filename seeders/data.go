package seeders

import "solicitation-system/internal/entities"

// Credenciais dos usuários de desenvolvimento.
const (
	AdminEmail        = "admin@frota.local"
	AdminPassword     = "admin123"
	RequesterEmail    = "joao@frota.local"
	RequesterPassword = "joao1234"
)

var filiaisData = []entities.Filial{
	{Name: "Campinas"},
	{Name: "Sorocaba"},
}

var categoriesData = []entities.EquipmentCategory{
	{Name: "Caminhão", Filial: "Campinas"},
	{Name: "Empilhadeira", Filial: "Campinas"},
	{Name: "Caminhão", Filial: "Sorocaba"},
	{Name: "Trator", Filial: "Sorocaba", StatusDelete: true},
}

var equipmentsData = []entities.Equipment{
	{Name: "Volvo FH 540", TagEquipment: "CAM-001", CategoryEquipment: "Caminhão", Filial: "Campinas"},
	{Name: "Scania R450", TagEquipment: "CAM-002", CategoryEquipment: "Caminhão", Filial: "Campinas"},
	{Name: "Hyster H50", TagEquipment: "EMP-001", CategoryEquipment: "Empilhadeira", Filial: "Campinas"},
	{Name: "Mercedes Actros", TagEquipment: "CAM-101", CategoryEquipment: "Caminhão", Filial: "Sorocaba"},
	{Name: "Iveco Tector", TagEquipment: "CAM-003", CategoryEquipment: "Caminhão", Filial: "Campinas", StatusDelete: true},
}

type userSeed struct {
	user     entities.User
	password string
}

var usersData = []userSeed{
	{
		user:     entities.User{Name: "Ana Administradora", Email: AdminEmail, LevelUser: 2, Filial: "Campinas", CostCenter: "CC-100"},
		password: AdminPassword,
	},
	{
		user:     entities.User{Name: "João Solicitante", Email: RequesterEmail, LevelUser: 1, Filial: "Campinas", CostCenter: "CC-210"},
		password: RequesterPassword,
	},
}
