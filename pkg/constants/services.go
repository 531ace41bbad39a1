package constants

import "solicitation-system/pkg/utils"

// Categorias de serviço oferecidas no formulário de abertura.
const (
	ServiceTireRepair  = "Borracheiro"
	ServiceMechanical  = "Mecanico"
	ServiceElectrical  = "Eletrico"
	ServiceLubrication = "Lubrificação"
	ServiceWelding     = "Solda"
)

var ServiceCategories = []string{
	ServiceTireRepair,
	ServiceMechanical,
	ServiceElectrical,
	ServiceLubrication,
	ServiceWelding,
}

func ParseServiceCategory(s string) (string, bool) {
	return utils.Canonical(s, ServiceCategories)
}
