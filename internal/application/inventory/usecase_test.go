package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvergaras/fieldops-api/internal/application/dto"
	"github.com/dvergaras/fieldops-api/internal/application/inventory"
	"github.com/dvergaras/fieldops-api/internal/domain"
	"github.com/dvergaras/fieldops-api/internal/domain/entity"
	domaininv "github.com/dvergaras/fieldops-api/internal/domain/inventory"
	"github.com/dvergaras/fieldops-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

var (
	admin  = inventory.Actor{UserID: "u-admin", Role: entity.RoleAdmin}
	bodega = inventory.Actor{UserID: "u-bodega", Role: entity.RoleAlmacenista}
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// seedStore arma el escenario base: una cuadrilla, una orden en curso, cable a
// granel, fibra con una bobina activa en almacén y dos ONTs en stock.
func seedStore() *memStore {
	s := newMemStore()

	s.crews["crew-1"] = &entity.Crew{ID: "crew-1", Name: "Cuadrilla Norte", Leader: "R. Medina", Active: true}
	s.orders["order-1"] = &entity.WorkOrder{ID: "order-1", Code: "OT-1001", Status: entity.OrderStatusInProgress}

	s.items["item-cable"] = &entity.InventoryItem{
		ID: "item-cable", Code: "CAB-DROP-001", Type: entity.ItemTypeMaterial,
		Description: "Cable drop 2 hilos", Unit: "metros",
		CurrentStock: d(1000), MinStock: d(200), CreatedAt: seedTime,
	}
	s.items["item-fiber"] = &entity.InventoryItem{
		ID: "item-fiber", Code: "FIB-ADSS-24", Type: entity.ItemTypeMaterial,
		Description: "Fibra ADSS 24 hilos", Unit: "metros",
		CurrentStock: d(500), MinStock: d(100), CreatedAt: seedTime,
	}
	s.batches["bob-1"] = &entity.Batch{
		ID: "batch-1", Code: "BOB-1", ItemID: "item-fiber",
		InitialQty: d(500), CurrentQty: d(500), Unit: "metros",
		Status: entity.BatchStatusActive, Location: entity.BatchLocationWarehouse,
		AcquiredAt: seedTime, CreatedAt: seedTime,
	}
	s.items["item-ont"] = &entity.InventoryItem{
		ID: "item-ont", Code: "ONT-HW-8145", Type: entity.ItemTypeEquipment,
		Description: "ONT HG8145V5", Unit: "unidades",
		CurrentStock: d(2), MinStock: d(1), CreatedAt: seedTime,
	}
	s.equipment["ont-1"] = &entity.EquipmentInstance{
		ID: "eq-1", ItemID: "item-ont", UniqueID: "ONT-1",
		Status: entity.InstanceStatusInStock, CreatedAt: seedTime,
	}
	s.equipment["ont-2"] = &entity.EquipmentInstance{
		ID: "eq-2", ItemID: "item-ont", UniqueID: "ONT-2",
		Status: entity.InstanceStatusInStock, CreatedAt: seedTime,
	}
	return s
}

func newUC(s *memStore) *inventory.RegisterMovementUseCase {
	return inventory.NewRegisterMovementUseCase(&memTx{s}, &memCrews{s}, &memOrders{s})
}

func register(t *testing.T, s *memStore, actor inventory.Actor, input inventory.MovementInput) error {
	t.Helper()
	return newUC(s).RegisterMovement(context.Background(), actor, input)
}

// ──────────────────────────────────────────────────────────────────────────────
// Entradas
// ──────────────────────────────────────────────────────────────────────────────

func TestEntradaSimpleSumaAlmacen(t *testing.T) {
	s := seedStore()

	err := register(t, s, bodega, inventory.MovementInput{
		Type:  entity.MovementTypeEntry,
		Lines: []inventory.Line{inventory.PlainLine{ItemID: "item-cable", Quantity: d(100)}},
	})
	require.NoError(t, err)

	assert.True(t, s.items["item-cable"].CurrentStock.Equal(d(1100)),
		"la entrada debe sumar al stock de almacén")
	require.Len(t, s.movements, 1, "debe haber exactamente una fila del libro")
	m := s.movements[0]
	assert.Equal(t, entity.MovementTypeEntry, m.Type)
	assert.True(t, m.Quantity.Equal(d(100)), "ENTRY lleva delta positivo")
	assert.Nil(t, m.CrewID)
	assert.Equal(t, "u-bodega", m.CreatedBy)
}

func TestEntradaRechazaEquiposSerializados(t *testing.T) {
	s := seedStore()

	err := register(t, s, bodega, inventory.MovementInput{
		Type:  entity.MovementTypeEntry,
		Lines: []inventory.Line{inventory.PlainLine{ItemID: "item-ont", Quantity: d(5)}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput,
		"el stock de equipos se deriva del conteo de instancias, no de entradas")
	assert.True(t, s.items["item-ont"].CurrentStock.Equal(d(2)))
	assert.Empty(t, s.movements)
}

// ──────────────────────────────────────────────────────────────────────────────
// Asignación y devolución a granel
// ──────────────────────────────────────────────────────────────────────────────

func TestAsignacionYDevolucionConservanElLibro(t *testing.T) {
	s := seedStore()

	err := register(t, s, bodega, inventory.MovementInput{
		Type:   entity.MovementTypeAssignment,
		CrewID: "crew-1",
		Lines:  []inventory.Line{inventory.PlainLine{ItemID: "item-cable", Quantity: d(200)}},
	})
	require.NoError(t, err)
	assert.True(t, s.items["item-cable"].CurrentStock.Equal(d(800)))
	assert.True(t, s.crewStock["crew-1|item-cable"].Quantity.Equal(d(200)))

	err = register(t, s, bodega, inventory.MovementInput{
		Type:   entity.MovementTypeReturn,
		CrewID: "crew-1",
		Reason: "sobrante de jornada",
		Lines:  []inventory.Line{inventory.PlainLine{ItemID: "item-cable", Quantity: d(50)}},
	})
	require.NoError(t, err)
	assert.True(t, s.items["item-cable"].CurrentStock.Equal(d(850)))
	assert.True(t, s.crewStock["crew-1|item-cable"].Quantity.Equal(d(150)))

	// Reproducir el libro debe cuadrar con los snapshots desnormalizados
	ledger, err := (&memMovements{s}).ListByItem("item-cable")
	require.NoError(t, err)
	bal := domaininv.Replay(ledger)
	assert.True(t, bal.Warehouse.Equal(d(-150)),
		"la suma de deltas de almacén debe igualar el cambio neto de stock")
	assert.True(t, bal.Crew("crew-1").Equal(d(150)),
		"la suma de deltas de cuadrilla debe igualar el total de la cuadrilla")
}

func TestAsignacionSinStockSuficiente(t *testing.T) {
	s := seedStore()

	err := register(t, s, bodega, inventory.MovementInput{
		Type:   entity.MovementTypeAssignment,
		CrewID: "crew-1",
		Lines:  []inventory.Line{inventory.PlainLine{ItemID: "item-cable", Quantity: d(5000)}},
	})

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "CAB-DROP-001", insufficient.ItemCode)
	assert.True(t, insufficient.Available.Equal(d(1000)))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, s.items["item-cable"].CurrentStock.Equal(d(1000)), "el stock no debe cambiar")
	assert.Empty(t, s.crewStock)
	assert.Empty(t, s.movements, "un movimiento rechazado no deja filas en el libro")
}

// ──────────────────────────────────────────────────────────────────────────────
// Bobinas
// ──────────────────────────────────────────────────────────────────────────────

func TestBobinaSeAsignaEntera(t *testing.T) {
	s := seedStore()

	// Una bobina no se parte entre cuadrillas: la cantidad debe ser todo lo que queda
	err := register(t, s, bodega, inventory.MovementInput{
		Type:   entity.MovementTypeAssignment,
		CrewID: "crew-1",
		Lines:  []inventory.Line{inventory.BatchLine{ItemID: "item-fiber", BatchCode: "BOB-1", Quantity: d(200)}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	// Tampoco se asigna a granel un ítem con bobinas activas
	err = register(t, s, bodega, inventory.MovementInput{
		Type:   entity.MovementTypeAssignment,
		CrewID: "crew-1",
		Lines:  []inventory.Line{inventory.PlainLine{ItemID: "item-fiber", Quantity: d(100)}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	// Con la cantidad completa sí pasa
	err = register(t, s, bodega, inventory.MovementInput{
		Type:   entity.MovementTypeAssignment,
		CrewID: "crew-1",
		Lines:  []inventory.Line{inventory.BatchLine{ItemID: "item-fiber", BatchCode: "BOB-1", Quantity: d(500)}},
	})
	require.NoError(t, err)

	batch := s.batches["bob-1"]
	assert.Equal(t, entity.BatchLocationCrew, batch.Location)
	require.NotNil(t, batch.CrewID)
	assert.Equal(t, "crew-1", *batch.CrewID)
	assert.True(t, s.items["item-fiber"].CurrentStock.Equal(d(0)))
	assert.True(t, s.crewStock["crew-1|item-fiber"].Quantity.Equal(d(500)))

	require.Len(t, s.movements, 1)
	require.NotNil(t, s.movements[0].BatchCode)
	assert.Equal(t, "BOB-1", *s.movements[0].BatchCode)
}

func TestConsumoParcialDeBobinaEnCuadrilla(t *testing.T) {
	s := seedStore()
	require.NoError(t, register(t, s, bodega, inventory.MovementInput{
		Type:   entity.MovementTypeAssignment,
		CrewID: "crew-1",
		Lines:  []inventory.Line{inventory.BatchLine{ItemID: "item-fiber", BatchCode: "BOB-1", Quantity: d(500)}},
	}))

	// En cuadrilla la bobina sí se consume por metros
	err := register(t, s, bodega, inventory.MovementInput{
		Type:    entity.MovementTypeUsageOrder,
		CrewID:  "crew-1",
		OrderID: "order-1",
		Lines:   []inventory.Line{inventory.BatchLine{ItemID: "item-fiber", BatchCode: "BOB-1", Quantity: d(480)}},
	})
	require.NoError(t, err)
	assert.True(t, s.batches["bob-1"].CurrentQty.Equal(d(20)))
	assert.Equal(t, entity.BatchStatusActive, s.batches["bob-1"].Status)
	assert.True(t, s.crewStock["crew-1|item-fiber"].Quantity.Equal(d(20)))

	// Consumir más de lo que queda se rechaza
	err = register(t, s, bodega, inventory.MovementInput{
		Type:    entity.MovementTypeUsageOrder,
		CrewID:  "crew-1",
		OrderID: "order-1",
		Lines:   []inventory.Line{inventory.BatchLine{ItemID: "item-fiber", BatchCode: "BOB-1", Quantity: d(21)}},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, s.batches["bob-1"].CurrentQty.Equal(d(20)), "el rechazo no debe mutar la bobina")

	// Agotar la bobina la deja depleted
	require.NoError(t, register(t, s, bodega, inventory.MovementInput{
		Type:    entity.MovementTypeUsageOrder,
		CrewID:  "crew-1",
		OrderID: "order-1",
		Lines:   []inventory.Line{inventory.BatchLine{ItemID: "item-fiber", BatchCode: "BOB-1", Quantity: d(20)}},
	}))
	assert.Equal(t, entity.BatchStatusDepleted, s.batches["bob-1"].Status)

	// La bobina agotada se devuelve vacía: cambia de ubicación con delta cero
	require.NoError(t, register(t, s, bodega, inventory.MovementInput{
		Type:   entity.MovementTypeReturn,
		CrewID: "crew-1",
		Reason: "bobina agotada",
		Lines:  []inventory.Line{inventory.BatchLine{ItemID: "item-fiber", BatchCode: "BOB-1", Quantity: d(0)}},
	}))
	assert.Equal(t, entity.BatchLocationWarehouse, s.batches["bob-1"].Location)
	assert.Nil(t, s.batches["bob-1"].CrewID)
	assert.True(t, s.crewStock["crew-1|item-fiber"].Quantity.Equal(d(0)))

	last := s.movements[len(s.movements)-1]
	assert.Equal(t, entity.MovementTypeReturn, last.Type)
	assert.True(t, last.Quantity.IsZero(), "la devolución de bobina agotada registra delta cero")
}

// ──────────────────────────────────────────────────────────────────────────────
// Equipos serializados
// ──────────────────────────────────────────────────────────────────────────────

func TestEquipoAsignarEInstalar(t *testing.T) {
	s := seedStore()

	err := register(t, s, bodega, inventory.MovementInput{
		Type:   entity.MovementTypeAssignment,
		CrewID: "crew-1",
		Lines:  []inventory.Line{inventory.EquipmentLine{ItemID: "item-ont", InstanceIDs: []string{"ONT-1"}}},
	})
	require.NoError(t, err)

	inst := s.equipment["ont-1"]
	assert.Equal(t, entity.InstanceStatusAssigned, inst.Status)
	require.NotNil(t, inst.AssignedTo)
	assert.Equal(t, "crew-1", inst.AssignedTo.CrewID)
	assert.True(t, s.items["item-ont"].CurrentStock.Equal(d(1)))
	assert.True(t, s.crewStock["crew-1|item-ont"].Quantity.Equal(d(1)))

	err = register(t, s, bodega, inventory.MovementInput{
		Type:    entity.MovementTypeUsageOrder,
		CrewID:  "crew-1",
		OrderID: "order-1",
		Lines:   []inventory.Line{inventory.EquipmentLine{ItemID: "item-ont", InstanceIDs: []string{"ONT-1"}}},
	})
	require.NoError(t, err)

	inst = s.equipment["ont-1"]
	assert.Equal(t, entity.InstanceStatusInstalled, inst.Status)
	assert.Nil(t, inst.AssignedTo)
	require.NotNil(t, inst.InstalledAt)
	assert.Equal(t, "order-1", inst.InstalledAt.OrderID)
	assert.True(t, s.crewStock["crew-1|item-ont"].Quantity.Equal(d(0)))

	// installed es terminal: ni devolverlo ni reasignarlo
	err = register(t, s, bodega, inventory.MovementInput{
		Type:   entity.MovementTypeReturn,
		CrewID: "crew-1",
		Reason: "error de captura",
		Lines:  []inventory.Line{inventory.EquipmentLine{ItemID: "item-ont", InstanceIDs: []string{"ONT-1"}}},
	})
	var transition *domain.InvalidTransitionError
	require.ErrorAs(t, err, &transition)
	assert.Equal(t, "ONT-1", transition.UniqueID)
	assert.Equal(t, entity.InstanceStatusInstalled, transition.From)
}

func TestEquipoDevueltoVuelveAStock(t *testing.T) {
	s := seedStore()
	require.NoError(t, register(t, s, bodega, inventory.MovementInput{
		Type:   entity.MovementTypeAssignment,
		CrewID: "crew-1",
		Lines:  []inventory.Line{inventory.EquipmentLine{ItemID: "item-ont", InstanceIDs: []string{"ONT-1", "ONT-2"}}},
	}))
	require.NoError(t, register(t, s, bodega, inventory.MovementInput{
		Type:   entity.MovementTypeReturn,
		CrewID: "crew-1",
		Reason: "no se usó",
		Lines:  []inventory.Line{inventory.EquipmentLine{ItemID: "item-ont", InstanceIDs: []string{"ONT-2"}}},
	}))

	assert.Equal(t, entity.InstanceStatusInStock, s.equipment["ont-2"].Status)
	assert.Nil(t, s.equipment["ont-2"].AssignedTo)
	assert.Equal(t, entity.InstanceStatusAssigned, s.equipment["ont-1"].Status)
	assert.True(t, s.items["item-ont"].CurrentStock.Equal(d(1)))
	assert.True(t, s.crewStock["crew-1|item-ont"].Quantity.Equal(d(1)))

	// Cada instancia genera su propia fila del libro con delta ±1
	require.Len(t, s.movements, 3)
	for _, m := range s.movements {
		require.NotNil(t, m.InstanceID)
		assert.True(t, m.Quantity.Abs().Equal(d(1)))
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Atomicidad multi-línea
// ──────────────────────────────────────────────────────────────────────────────

func TestMultilineaTodoONada(t *testing.T) {
	s := seedStore()

	// La primera línea es válida; la segunda excede el stock. Nada debe persistir.
	err := register(t, s, bodega, inventory.MovementInput{
		Type:   entity.MovementTypeAssignment,
		CrewID: "crew-1",
		Lines: []inventory.Line{
			inventory.PlainLine{ItemID: "item-cable", Quantity: d(100)},
			inventory.PlainLine{ItemID: "item-cable", Quantity: d(10000)},
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, s.items["item-cable"].CurrentStock.Equal(d(1000)),
		"la línea válida debe revertirse junto con la fallida")
	assert.Empty(t, s.crewStock)
	assert.Empty(t, s.movements)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajustes
// ──────────────────────────────────────────────────────────────────────────────

func TestAjusteSoloAdmin(t *testing.T) {
	s := seedStore()

	err := register(t, s, bodega, inventory.MovementInput{
		Type:   entity.MovementTypeAdjustment,
		Reason: "conteo físico",
		Lines:  []inventory.Line{inventory.PlainLine{ItemID: "item-cable", Quantity: d(-10)}},
	})
	require.ErrorIs(t, err, domain.ErrForbidden, "el almacenista no puede ajustar")

	err = register(t, s, admin, inventory.MovementInput{
		Type:   entity.MovementTypeAdjustment,
		Reason: "conteo físico",
		Lines:  []inventory.Line{inventory.PlainLine{ItemID: "item-cable", Quantity: d(-10)}},
	})
	require.NoError(t, err)
	assert.True(t, s.items["item-cable"].CurrentStock.Equal(d(990)))
}

func TestAjusteSobreCuadrilla(t *testing.T) {
	s := seedStore()
	require.NoError(t, register(t, s, bodega, inventory.MovementInput{
		Type:   entity.MovementTypeAssignment,
		CrewID: "crew-1",
		Lines:  []inventory.Line{inventory.PlainLine{ItemID: "item-cable", Quantity: d(100)}},
	}))

	// Con CrewID el ajuste cae sobre el total de la cuadrilla, no sobre almacén
	err := register(t, s, admin, inventory.MovementInput{
		Type:   entity.MovementTypeAdjustment,
		CrewID: "crew-1",
		Reason: "merma reportada",
		Lines:  []inventory.Line{inventory.PlainLine{ItemID: "item-cable", Quantity: d(-30)}},
	})
	require.NoError(t, err)
	assert.True(t, s.crewStock["crew-1|item-cable"].Quantity.Equal(d(70)))
	assert.True(t, s.items["item-cable"].CurrentStock.Equal(d(900)), "el almacén no se toca")

	// Un ajuste que dejaría el total negativo se rechaza
	err = register(t, s, admin, inventory.MovementInput{
		Type:   entity.MovementTypeAdjustment,
		CrewID: "crew-1",
		Reason: "merma reportada",
		Lines:  []inventory.Line{inventory.PlainLine{ItemID: "item-cable", Quantity: d(-71)}},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, s.crewStock["crew-1|item-cable"].Quantity.Equal(d(70)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Validaciones de forma y existencia
// ──────────────────────────────────────────────────────────────────────────────

func TestValidacionesDeForma(t *testing.T) {
	line := inventory.PlainLine{ItemID: "item-cable", Quantity: d(10)}

	cases := []struct {
		name  string
		input inventory.MovementInput
		want  error
	}{
		{
			name:  "entrada con cuadrilla",
			input: inventory.MovementInput{Type: entity.MovementTypeEntry, CrewID: "crew-1", Lines: []inventory.Line{line}},
			want:  domain.ErrInvalidInput,
		},
		{
			name:  "asignación sin cuadrilla",
			input: inventory.MovementInput{Type: entity.MovementTypeAssignment, Lines: []inventory.Line{line}},
			want:  domain.ErrInvalidInput,
		},
		{
			name:  "devolución sin motivo",
			input: inventory.MovementInput{Type: entity.MovementTypeReturn, CrewID: "crew-1", Lines: []inventory.Line{line}},
			want:  domain.ErrInvalidInput,
		},
		{
			name:  "consumo sin orden",
			input: inventory.MovementInput{Type: entity.MovementTypeUsageOrder, CrewID: "crew-1", Lines: []inventory.Line{line}},
			want:  domain.ErrInvalidInput,
		},
		{
			name: "línea de bobina en entrada",
			input: inventory.MovementInput{Type: entity.MovementTypeEntry,
				Lines: []inventory.Line{inventory.BatchLine{ItemID: "item-fiber", BatchCode: "BOB-1", Quantity: d(10)}}},
			want: domain.ErrInvalidInput,
		},
		{
			name:  "cantidad cero en asignación",
			input: inventory.MovementInput{Type: entity.MovementTypeAssignment, CrewID: "crew-1", Lines: []inventory.Line{inventory.PlainLine{ItemID: "item-cable", Quantity: d(0)}}},
			want:  domain.ErrInvalidInput,
		},
		{
			name:  "cuadrilla inexistente",
			input: inventory.MovementInput{Type: entity.MovementTypeAssignment, CrewID: "crew-nope", Lines: []inventory.Line{line}},
			want:  domain.ErrNotFound,
		},
		{
			name:  "orden inexistente",
			input: inventory.MovementInput{Type: entity.MovementTypeUsageOrder, CrewID: "crew-1", OrderID: "order-nope", Lines: []inventory.Line{line}},
			want:  domain.ErrNotFound,
		},
		{
			name:  "sin líneas",
			input: inventory.MovementInput{Type: entity.MovementTypeEntry},
			want:  domain.ErrInvalidInput,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := seedStore()
			err := register(t, s, bodega, tc.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "esperaba %v, llegó %v", tc.want, err)
			assert.Empty(t, s.movements, "un rechazo no toca el libro")
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Adaptador del request HTTP
// ──────────────────────────────────────────────────────────────────────────────

func TestRegistroDesdeRequest(t *testing.T) {
	s := seedStore()

	err := newUC(s).RegisterMovementFromRequest(context.Background(), bodega, dto.RegisterMovementRequest{
		Action: dto.ActionAssign,
		Data: dto.MovementDataRequest{
			CrewID: "crew-1",
			Items: []dto.MovementLineRequest{
				{ItemID: "item-cable", Quantity: d(300)},
				{ItemID: "item-ont", InstanceIDs: []string{"ONT-1"}},
			},
		},
	})
	require.NoError(t, err)
	assert.True(t, s.items["item-cable"].CurrentStock.Equal(d(700)))
	assert.Equal(t, entity.InstanceStatusAssigned, s.equipment["ont-1"].Status)
	assert.Len(t, s.movements, 2)

	err = newUC(s).RegisterMovementFromRequest(context.Background(), bodega, dto.RegisterMovementRequest{
		Action: "TELEPORT",
		Data:   dto.MovementDataRequest{Items: []dto.MovementLineRequest{{ItemID: "item-cable", Quantity: d(1)}}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput, "una acción desconocida se rechaza")
}

// Verifica que el filtro del historial respeta los campos básicos con el fake.
func TestFiltroDeHistorialPorCuadrilla(t *testing.T) {
	s := seedStore()
	require.NoError(t, register(t, s, bodega, inventory.MovementInput{
		Type:  entity.MovementTypeEntry,
		Lines: []inventory.Line{inventory.PlainLine{ItemID: "item-cable", Quantity: d(10)}},
	}))
	require.NoError(t, register(t, s, bodega, inventory.MovementInput{
		Type:   entity.MovementTypeAssignment,
		CrewID: "crew-1",
		Lines:  []inventory.Line{inventory.PlainLine{ItemID: "item-cable", Quantity: d(5)}},
	}))

	byCrew, err := (&memMovements{s}).List(repository.MovementFilter{CrewID: "crew-1"})
	require.NoError(t, err)
	require.Len(t, byCrew, 1)
	assert.Equal(t, entity.MovementTypeAssignment, byCrew[0].Type)
}
