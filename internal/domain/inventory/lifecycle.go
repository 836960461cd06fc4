// Package inventory contiene la lógica de dominio pura del subsistema de
// inventario: la máquina de estados de equipos serializados y la aritmética de
// conciliación del libro de movimientos.
package inventory

import "github.com/dvergaras/fieldops-api/internal/domain/entity"

// Máquina de estados de EquipmentInstance:
//
//	in_stock --asignar--> assigned --instalar--> installed
//	assigned --devolver--> in_stock
//	{in_stock, assigned} --dañar/retirar--> damaged | retired (terminales)
var transitions = map[string]map[string]bool{
	entity.InstanceStatusInStock: {
		entity.InstanceStatusAssigned: true,
		entity.InstanceStatusDamaged:  true,
		entity.InstanceStatusRetired:  true,
	},
	entity.InstanceStatusAssigned: {
		entity.InstanceStatusInstalled: true,
		entity.InstanceStatusInStock:   true,
		entity.InstanceStatusDamaged:   true,
		entity.InstanceStatusRetired:   true,
	},
	entity.InstanceStatusInstalled: {},
	entity.InstanceStatusDamaged:   {},
	entity.InstanceStatusRetired:   {},
}

// CanTransition indica si el paso from → to está permitido por el ciclo de vida.
func CanTransition(from, to string) bool {
	return transitions[from][to]
}

// ValidStatus indica si s es un estado conocido de equipo.
func ValidStatus(s string) bool {
	_, ok := transitions[s]
	return ok
}
