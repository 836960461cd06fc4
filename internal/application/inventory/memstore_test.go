package inventory_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dvergaras/fieldops-api/internal/application/inventory"
	"github.com/dvergaras/fieldops-api/internal/domain/entity"
	"github.com/dvergaras/fieldops-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Store en memoria para los tests del orquestador. Implementa los puertos de
// repositorio sobre mapas, y el TxRunner falso restaura un snapshot completo
// si el callback falla: mismo contrato de atomicidad que la transacción real.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	items     map[string]*entity.InventoryItem     // por ID
	batches   map[string]*entity.Batch             // por lower(code)
	equipment map[string]*entity.EquipmentInstance // por lower(uniqueID)
	movements []*entity.Movement
	crewStock map[string]*entity.CrewStock // crewID|itemID
	crews     map[string]*entity.Crew
	orders    map[string]*entity.WorkOrder
}

func newMemStore() *memStore {
	return &memStore{
		items:     map[string]*entity.InventoryItem{},
		batches:   map[string]*entity.Batch{},
		equipment: map[string]*entity.EquipmentInstance{},
		crewStock: map[string]*entity.CrewStock{},
		crews:     map[string]*entity.Crew{},
		orders:    map[string]*entity.WorkOrder{},
	}
}

func copyItem(i *entity.InventoryItem) *entity.InventoryItem {
	c := *i
	return &c
}

func copyBatch(b *entity.Batch) *entity.Batch {
	c := *b
	if b.CrewID != nil {
		crewID := *b.CrewID
		c.CrewID = &crewID
	}
	return &c
}

func copyInstance(e *entity.EquipmentInstance) *entity.EquipmentInstance {
	c := *e
	if e.Serial != nil {
		s := *e.Serial
		c.Serial = &s
	}
	if e.MAC != nil {
		m := *e.MAC
		c.MAC = &m
	}
	if e.AssignedTo != nil {
		a := *e.AssignedTo
		c.AssignedTo = &a
	}
	if e.InstalledAt != nil {
		ins := *e.InstalledAt
		c.InstalledAt = &ins
	}
	return &c
}

func copyCrewStock(cs *entity.CrewStock) *entity.CrewStock {
	c := *cs
	return &c
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for k, v := range s.items {
		c.items[k] = copyItem(v)
	}
	for k, v := range s.batches {
		c.batches[k] = copyBatch(v)
	}
	for k, v := range s.equipment {
		c.equipment[k] = copyInstance(v)
	}
	for k, v := range s.crewStock {
		c.crewStock[k] = copyCrewStock(v)
	}
	for k, v := range s.crews {
		crew := *v
		c.crews[k] = &crew
	}
	for k, v := range s.orders {
		order := *v
		c.orders[k] = &order
	}
	c.movements = append(c.movements, s.movements...)
	return c
}

// memTx implementa inventory.TxRunner con semántica snapshot/restore.
type memTx struct {
	s *memStore
}

func (t *memTx) Run(_ context.Context, fn func(
	items repository.ItemRepository,
	batches repository.BatchRepository,
	equipment repository.EquipmentRepository,
	movements repository.MovementRepository,
	crewStock repository.CrewStockRepository,
) error) error {
	snap := t.s.clone()
	err := fn(
		&memItems{t.s}, &memBatches{t.s}, &memEquipment{t.s},
		&memMovements{t.s}, &memCrewStock{t.s},
	)
	if err != nil {
		*t.s = *snap // rollback
	}
	return err
}

var _ inventory.TxRunner = (*memTx)(nil)

// ── ItemRepository ────────────────────────────────────────────────────────────

type memItems struct{ s *memStore }

func (r *memItems) Create(item *entity.InventoryItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	r.s.items[item.ID] = copyItem(item)
	return nil
}

func (r *memItems) GetByID(id string) (*entity.InventoryItem, error) {
	if i, ok := r.s.items[id]; ok {
		return copyItem(i), nil
	}
	return nil, nil
}

func (r *memItems) GetByCode(code string) (*entity.InventoryItem, error) {
	for _, i := range r.s.items {
		if strings.EqualFold(i.Code, code) {
			return copyItem(i), nil
		}
	}
	return nil, nil
}

func (r *memItems) GetForUpdate(id string) (*entity.InventoryItem, error) {
	return r.GetByID(id)
}

func (r *memItems) List(limit, offset int) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for _, i := range r.s.items {
		out = append(out, copyItem(i))
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Code < out[b].Code })
	return out, nil
}

func (r *memItems) ListLowStock() ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for _, i := range r.s.items {
		if i.LowStock() {
			out = append(out, copyItem(i))
		}
	}
	return out, nil
}

func (r *memItems) Update(item *entity.InventoryItem) error {
	if cur, ok := r.s.items[item.ID]; ok {
		stock := cur.CurrentStock
		r.s.items[item.ID] = copyItem(item)
		r.s.items[item.ID].CurrentStock = stock
	}
	return nil
}

func (r *memItems) SetStock(id string, qty decimal.Decimal) error {
	if i, ok := r.s.items[id]; ok {
		i.CurrentStock = qty
	}
	return nil
}

func (r *memItems) Delete(id string) error {
	delete(r.s.items, id)
	return nil
}

// ── BatchRepository ───────────────────────────────────────────────────────────

type memBatches struct{ s *memStore }

func (r *memBatches) Create(b *entity.Batch) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	r.s.batches[strings.ToLower(b.Code)] = copyBatch(b)
	return nil
}

func (r *memBatches) GetByCode(code string) (*entity.Batch, error) {
	if b, ok := r.s.batches[strings.ToLower(code)]; ok {
		return copyBatch(b), nil
	}
	return nil, nil
}

func (r *memBatches) GetByCodeForUpdate(code string) (*entity.Batch, error) {
	return r.GetByCode(code)
}

func (r *memBatches) ListByItem(itemID string) ([]*entity.Batch, error) {
	var out []*entity.Batch
	for _, b := range r.s.batches {
		if b.ItemID == itemID {
			out = append(out, copyBatch(b))
		}
	}
	return out, nil
}

func (r *memBatches) ListByCrew(crewID string) ([]*entity.Batch, error) {
	var out []*entity.Batch
	for _, b := range r.s.batches {
		if b.CrewID != nil && *b.CrewID == crewID {
			out = append(out, copyBatch(b))
		}
	}
	return out, nil
}

func (r *memBatches) Update(b *entity.Batch) error {
	r.s.batches[strings.ToLower(b.Code)] = copyBatch(b)
	return nil
}

func (r *memBatches) Delete(code string) error {
	delete(r.s.batches, strings.ToLower(code))
	return nil
}

func (r *memBatches) DeleteByItem(itemID string) error {
	for k, b := range r.s.batches {
		if b.ItemID == itemID {
			delete(r.s.batches, k)
		}
	}
	return nil
}

// ── EquipmentRepository ───────────────────────────────────────────────────────

type memEquipment struct{ s *memStore }

func (r *memEquipment) CreateBatch(instances []*entity.EquipmentInstance) error {
	for _, inst := range instances {
		if inst.ID == "" {
			inst.ID = uuid.New().String()
		}
		r.s.equipment[strings.ToLower(inst.UniqueID)] = copyInstance(inst)
	}
	return nil
}

func (r *memEquipment) GetByUniqueID(uniqueID string) (*entity.EquipmentInstance, error) {
	if e, ok := r.s.equipment[strings.ToLower(uniqueID)]; ok {
		return copyInstance(e), nil
	}
	return nil, nil
}

func (r *memEquipment) GetByUniqueIDForUpdate(uniqueID string) (*entity.EquipmentInstance, error) {
	return r.GetByUniqueID(uniqueID)
}

func (r *memEquipment) Find(query string) (*entity.EquipmentInstance, error) {
	if e, err := r.GetByUniqueID(query); e != nil || err != nil {
		return e, err
	}
	for _, e := range r.s.equipment {
		if e.Serial != nil && strings.EqualFold(*e.Serial, query) {
			return copyInstance(e), nil
		}
		if e.MAC != nil && strings.EqualFold(*e.MAC, query) {
			return copyInstance(e), nil
		}
	}
	return nil, nil
}

func (r *memEquipment) List(itemID, status string) ([]*entity.EquipmentInstance, error) {
	var out []*entity.EquipmentInstance
	for _, e := range r.s.equipment {
		if itemID != "" && e.ItemID != itemID {
			continue
		}
		if status != "" && e.Status != status {
			continue
		}
		out = append(out, copyInstance(e))
	}
	return out, nil
}

func (r *memEquipment) CountByItem(itemID string) (int, error) {
	n := 0
	for _, e := range r.s.equipment {
		if e.ItemID == itemID {
			n++
		}
	}
	return n, nil
}

func (r *memEquipment) CountByItemAndStatus(itemID, status string) (int, error) {
	n := 0
	for _, e := range r.s.equipment {
		if e.ItemID == itemID && e.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *memEquipment) Update(inst *entity.EquipmentInstance) error {
	r.s.equipment[strings.ToLower(inst.UniqueID)] = copyInstance(inst)
	return nil
}

func (r *memEquipment) Delete(uniqueID string) error {
	delete(r.s.equipment, strings.ToLower(uniqueID))
	return nil
}

// ── MovementRepository ────────────────────────────────────────────────────────

type memMovements struct{ s *memStore }

func (r *memMovements) Append(m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	c := *m
	r.s.movements = append(r.s.movements, &c)
	return nil
}

func (r *memMovements) List(filter repository.MovementFilter) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.s.movements {
		if filter.ItemID != "" && m.ItemID != filter.ItemID {
			continue
		}
		if filter.CrewID != "" && (m.CrewID == nil || *m.CrewID != filter.CrewID) {
			continue
		}
		if filter.OrderID != "" && (m.OrderID == nil || *m.OrderID != filter.OrderID) {
			continue
		}
		c := *m
		out = append(out, &c)
	}
	return out, nil
}

func (r *memMovements) ListByItem(itemID string) ([]*entity.Movement, error) {
	return r.List(repository.MovementFilter{ItemID: itemID})
}

// ── CrewStockRepository ───────────────────────────────────────────────────────

type memCrewStock struct{ s *memStore }

func csKey(crewID, itemID string) string { return crewID + "|" + itemID }

func (r *memCrewStock) Get(crewID, itemID string) (*entity.CrewStock, error) {
	if cs, ok := r.s.crewStock[csKey(crewID, itemID)]; ok {
		return copyCrewStock(cs), nil
	}
	return nil, nil
}

func (r *memCrewStock) GetForUpdate(crewID, itemID string) (*entity.CrewStock, error) {
	if cs, ok := r.s.crewStock[csKey(crewID, itemID)]; ok {
		return copyCrewStock(cs), nil
	}
	return &entity.CrewStock{CrewID: crewID, ItemID: itemID, Quantity: decimal.Zero}, nil
}

func (r *memCrewStock) Upsert(cs *entity.CrewStock) error {
	r.s.crewStock[csKey(cs.CrewID, cs.ItemID)] = copyCrewStock(cs)
	return nil
}

func (r *memCrewStock) ListByCrew(crewID string) ([]*entity.CrewStock, error) {
	var out []*entity.CrewStock
	for _, cs := range r.s.crewStock {
		if cs.CrewID == crewID {
			out = append(out, copyCrewStock(cs))
		}
	}
	return out, nil
}

func (r *memCrewStock) ListByItem(itemID string) ([]*entity.CrewStock, error) {
	var out []*entity.CrewStock
	for _, cs := range r.s.crewStock {
		if cs.ItemID == itemID {
			out = append(out, copyCrewStock(cs))
		}
	}
	return out, nil
}

// ── CrewRepository y WorkOrderRepository ──────────────────────────────────────

type memCrews struct{ s *memStore }

func (r *memCrews) Create(c *entity.Crew) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	crew := *c
	r.s.crews[c.ID] = &crew
	return nil
}

func (r *memCrews) GetByID(id string) (*entity.Crew, error) {
	if c, ok := r.s.crews[id]; ok {
		crew := *c
		return &crew, nil
	}
	return nil, nil
}

func (r *memCrews) List(limit, offset int) ([]*entity.Crew, error) {
	var out []*entity.Crew
	for _, c := range r.s.crews {
		crew := *c
		out = append(out, &crew)
	}
	return out, nil
}

func (r *memCrews) Update(c *entity.Crew) error {
	crew := *c
	r.s.crews[c.ID] = &crew
	return nil
}

func (r *memCrews) Delete(id string) error {
	delete(r.s.crews, id)
	return nil
}

type memOrders struct{ s *memStore }

func (r *memOrders) Create(o *entity.WorkOrder) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	order := *o
	r.s.orders[o.ID] = &order
	return nil
}

func (r *memOrders) GetByID(id string) (*entity.WorkOrder, error) {
	if o, ok := r.s.orders[id]; ok {
		order := *o
		return &order, nil
	}
	return nil, nil
}

func (r *memOrders) GetByCode(code string) (*entity.WorkOrder, error) {
	for _, o := range r.s.orders {
		if strings.EqualFold(o.Code, code) {
			order := *o
			return &order, nil
		}
	}
	return nil, nil
}

func (r *memOrders) List(status string, limit, offset int) ([]*entity.WorkOrder, error) {
	var out []*entity.WorkOrder
	for _, o := range r.s.orders {
		if status != "" && o.Status != status {
			continue
		}
		order := *o
		out = append(out, &order)
	}
	return out, nil
}

func (r *memOrders) Update(o *entity.WorkOrder) error {
	order := *o
	r.s.orders[o.ID] = &order
	return nil
}

// Verificación de que los fakes cumplen los puertos.
var (
	_ repository.ItemRepository      = (*memItems)(nil)
	_ repository.BatchRepository     = (*memBatches)(nil)
	_ repository.EquipmentRepository = (*memEquipment)(nil)
	_ repository.MovementRepository  = (*memMovements)(nil)
	_ repository.CrewStockRepository = (*memCrewStock)(nil)
	_ repository.CrewRepository      = (*memCrews)(nil)
	_ repository.WorkOrderRepository = (*memOrders)(nil)
)

// seedTime fecha fija para entidades sembradas.
var seedTime = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
