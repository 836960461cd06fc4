package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvergaras/fieldops-api/internal/application/dto"
	"github.com/dvergaras/fieldops-api/internal/application/inventory"
	"github.com/dvergaras/fieldops-api/internal/domain"
	"github.com/dvergaras/fieldops-api/internal/domain/entity"
)

func newBatchUC(s *memStore) *inventory.BatchUseCase {
	return inventory.NewBatchUseCase(&memTx{s}, &memBatches{s})
}

func TestAltaDeBobinaEsEntradaDeStock(t *testing.T) {
	s := seedStore()

	batch, err := newBatchUC(s).CreateBatch(context.Background(), bodega, dto.CreateBatchRequest{
		BatchCode:  "BOB-2",
		ItemID:     "item-fiber",
		InitialQty: d(1000),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.BatchLocationWarehouse, batch.Location)
	assert.Equal(t, "metros", batch.Unit, "la unidad se hereda del ítem")

	assert.True(t, s.items["item-fiber"].CurrentStock.Equal(d(1500)),
		"la cantidad inicial de la bobina cuenta como entrada del ítem")
	require.Len(t, s.movements, 1)
	assert.Equal(t, entity.MovementTypeEntry, s.movements[0].Type)
	require.NotNil(t, s.movements[0].BatchCode)
	assert.Equal(t, "BOB-2", *s.movements[0].BatchCode)
}

func TestAltaDeBobinaRechazaEquipos(t *testing.T) {
	s := seedStore()
	_, err := newBatchUC(s).CreateBatch(context.Background(), bodega, dto.CreateBatchRequest{
		BatchCode: "BOB-X", ItemID: "item-ont", InitialQty: d(10),
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, s.movements)
}

func TestRecargaReactivaBobinaAgotada(t *testing.T) {
	s := seedStore()
	s.batches["bob-1"].CurrentQty = d(0)
	s.batches["bob-1"].Status = entity.BatchStatusDepleted
	s.items["item-fiber"].CurrentStock = d(0)

	batch, err := newBatchUC(s).AddQuantity(context.Background(), bodega, "BOB-1", dto.AddBatchQuantityRequest{
		QuantityToAdd: d(300),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.BatchStatusActive, batch.Status)
	assert.True(t, batch.CurrentQty.Equal(d(300)))
	assert.True(t, s.items["item-fiber"].CurrentStock.Equal(d(300)))
}

func TestRecargaSoloEnAlmacen(t *testing.T) {
	s := seedStore()
	crewID := "crew-1"
	s.batches["bob-1"].Location = entity.BatchLocationCrew
	s.batches["bob-1"].CrewID = &crewID

	_, err := newBatchUC(s).AddQuantity(context.Background(), bodega, "BOB-1", dto.AddBatchQuantityRequest{
		QuantityToAdd: d(100),
	})
	require.ErrorIs(t, err, domain.ErrBatchInUse)
}

func TestAjusteDeBobinaSoloAdmin(t *testing.T) {
	s := seedStore()

	_, err := newBatchUC(s).AdjustBatch(context.Background(), bodega, "BOB-1", dto.AdjustBatchRequest{
		CurrentQty: d(450), Reason: "conteo",
	})
	require.ErrorIs(t, err, domain.ErrForbidden)

	batch, err := newBatchUC(s).AdjustBatch(context.Background(), admin, "BOB-1", dto.AdjustBatchRequest{
		CurrentQty: d(450), Reason: "conteo",
	})
	require.NoError(t, err)
	assert.True(t, batch.CurrentQty.Equal(d(450)))
	assert.True(t, s.items["item-fiber"].CurrentStock.Equal(d(450)),
		"el ajuste de bobina en almacén mueve el stock del ítem")
	require.Len(t, s.movements, 1)
	assert.Equal(t, entity.MovementTypeAdjustment, s.movements[0].Type)
	assert.True(t, s.movements[0].Quantity.Equal(d(-50)))
}

func TestAjusteReasignaBobinaAOtroItem(t *testing.T) {
	s := seedStore()

	batch, err := newBatchUC(s).AdjustBatch(context.Background(), admin, "BOB-1", dto.AdjustBatchRequest{
		ItemID: "item-cable", CurrentQty: d(500), Reason: "bobina mal catalogada",
	})
	require.NoError(t, err)
	assert.Equal(t, "item-cable", batch.ItemID)

	// La cantidad sale del ítem viejo y entra al nuevo, con una fila por cada lado
	assert.True(t, s.items["item-fiber"].CurrentStock.Equal(d(0)))
	assert.True(t, s.items["item-cable"].CurrentStock.Equal(d(1500)))
	require.Len(t, s.movements, 2)
	assert.True(t, s.movements[0].Quantity.Equal(d(-500)))
	assert.True(t, s.movements[1].Quantity.Equal(d(500)))
}

func TestBorradoDeBobina(t *testing.T) {
	s := seedStore()
	crewID := "crew-1"

	// En poder de una cuadrilla con cantidad no se borra
	s.batches["bob-1"].Location = entity.BatchLocationCrew
	s.batches["bob-1"].CrewID = &crewID
	err := newBatchUC(s).DeleteBatch(context.Background(), admin, "BOB-1")
	require.ErrorIs(t, err, domain.ErrBatchInUse)

	// En almacén se borra descontando lo que queda con una fila ADJUSTMENT
	s.batches["bob-1"].Location = entity.BatchLocationWarehouse
	s.batches["bob-1"].CrewID = nil
	require.NoError(t, newBatchUC(s).DeleteBatch(context.Background(), admin, "BOB-1"))
	assert.Nil(t, s.batches["bob-1"])
	assert.True(t, s.items["item-fiber"].CurrentStock.Equal(d(0)))
	require.Len(t, s.movements, 1)
	assert.Equal(t, entity.MovementTypeAdjustment, s.movements[0].Type)
	assert.True(t, s.movements[0].Quantity.Equal(d(-500)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

func newCatalogUC(s *memStore) *inventory.CatalogUseCase {
	return inventory.NewCatalogUseCase(&memTx{s}, &memItems{s})
}

func TestCrearItemConStockInicial(t *testing.T) {
	s := seedStore()

	item, err := newCatalogUC(s).CreateItem(context.Background(), bodega, dto.CreateItemRequest{
		Code: "CON-SC-APC", Type: entity.ItemTypeMaterial, Unit: "unidades",
		MinStock: d(50), InitialStock: d(120),
	})
	require.NoError(t, err)
	assert.True(t, item.CurrentStock.Equal(d(120)))
	require.Len(t, s.movements, 1)
	assert.Equal(t, entity.MovementTypeEntry, s.movements[0].Type)

	// Un ítem equipment no acepta stock inicial
	_, err = newCatalogUC(s).CreateItem(context.Background(), bodega, dto.CreateItemRequest{
		Code: "RTR-01", Type: entity.ItemTypeEquipment, Unit: "unidades", InitialStock: d(3),
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBorrarItemConDependencias(t *testing.T) {
	s := seedStore()
	uc := newCatalogUC(s)

	// Con bobinas y sin force: error que lista los códigos
	err := uc.DeleteItem(context.Background(), "item-fiber", false)
	var dep *domain.DependentBatchesError
	require.ErrorAs(t, err, &dep)
	assert.Equal(t, []string{"BOB-1"}, dep.BatchCodes)
	require.ErrorIs(t, err, domain.ErrHasDependencies)

	// Con force la cascada borra las bobinas de almacén
	require.NoError(t, uc.DeleteItem(context.Background(), "item-fiber", true))
	assert.Nil(t, s.items["item-fiber"])
	assert.Nil(t, s.batches["bob-1"])

	// Equipos registrados bloquean siempre
	err = uc.DeleteItem(context.Background(), "item-ont", true)
	require.ErrorIs(t, err, domain.ErrHasDependencies)

	// Stock en poder de una cuadrilla bloquea siempre
	s.crewStock["crew-1|item-cable"] = &entity.CrewStock{CrewID: "crew-1", ItemID: "item-cable", Quantity: d(10)}
	err = uc.DeleteItem(context.Background(), "item-cable", true)
	require.ErrorIs(t, err, domain.ErrHasDependencies)
}
