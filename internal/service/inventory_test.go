package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/IDS-Mandujano/electronica-back/internal/messaging"
	"github.com/IDS-Mandujano/electronica-back/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInventoryFixture(t *testing.T) (InventoryService, *memStore, *recordingPublisher) {
	t.Helper()
	store := newMemStore()
	pub := &recordingPublisher{}
	svc := NewInventoryService(Config{
		Store:     store,
		Publisher: pub,
		Logger:    quietLogger(),
		Clock:     fixedClock(t0),
	})
	return svc, store, pub
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestUseMaterialScenario(t *testing.T) {
	svc, store, pub := newInventoryFixture(t)
	ctx := context.Background()
	store.parts["P"] = models.Part{ID: "P", Name: "Transistor", Category: "Electrónica", Stock: 10, MinimumStock: 2}

	part, err := svc.UseMaterial(ctx, UseMaterialRequest{PartID: "P", TicketID: "T1", Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, 6, part.Stock)
	assert.Empty(t, pub.events)

	part, err = svc.UseMaterial(ctx, UseMaterialRequest{PartID: "P", TicketID: "T1", Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, 2, part.Stock)
	usage, ok := store.usage("T1", "P")
	require.True(t, ok)
	assert.Equal(t, 8, usage.QuantityUsed)
	// stock reached the minimum
	assert.Equal(t, []string{messaging.EventPartLowStock}, pub.types())

	_, err = svc.UseMaterial(ctx, UseMaterialRequest{PartID: "P", TicketID: "T1", Quantity: 5})
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 2, store.part("P").Stock)
	usage, _ = store.usage("T1", "P")
	assert.Equal(t, 8, usage.QuantityUsed)
}

func TestUseMaterialAccumulates(t *testing.T) {
	svc, store, _ := newInventoryFixture(t)
	ctx := context.Background()
	store.parts["P"] = models.Part{ID: "P", Name: "Resistencia", Category: "Electrónica", Stock: 20}

	_, err := svc.UseMaterial(ctx, UseMaterialRequest{PartID: "P", TicketID: "T", Quantity: 3})
	require.NoError(t, err)
	_, err = svc.UseMaterial(ctx, UseMaterialRequest{PartID: "P", TicketID: "T", Quantity: 2})
	require.NoError(t, err)

	rows, err := svc.ListTicketMaterials(ctx, "T")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 5, rows[0].QuantityUsed)
	assert.Equal(t, "Resistencia", rows[0].PartName)
	assert.Equal(t, 15, store.part("P").Stock)
}

func TestUseMaterialValidation(t *testing.T) {
	svc, store, _ := newInventoryFixture(t)
	store.parts["P"] = models.Part{ID: "P", Name: "Cable", Category: "Cableado", Stock: 5}

	cases := []UseMaterialRequest{
		{PartID: "P", TicketID: "T", Quantity: 0},
		{PartID: "P", TicketID: "T", Quantity: -3},
		{PartID: "", TicketID: "T", Quantity: 1},
		{PartID: "P", TicketID: " ", Quantity: 1},
	}
	for _, req := range cases {
		_, err := svc.UseMaterial(context.Background(), req)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "request %+v", req)
		assert.Equal(t, "Datos inválidos", verr.Message)
	}
	assert.Equal(t, 5, store.part("P").Stock)
}

func TestUseMaterialUnknownPart(t *testing.T) {
	svc, store, _ := newInventoryFixture(t)

	_, err := svc.UseMaterial(context.Background(), UseMaterialRequest{PartID: "nope", TicketID: "T", Quantity: 1})
	assert.ErrorIs(t, err, ErrInsufficientStock)
	_, ok := store.usage("T", "nope")
	assert.False(t, ok)
}

func TestUseMaterialRollsBackLedgerOnDeductFailure(t *testing.T) {
	svc, store, _ := newInventoryFixture(t)
	store.parts["P"] = models.Part{ID: "P", Name: "Pasta térmica", Category: "Consumibles", Stock: 5}
	store.deductErr = errors.New("connection reset")

	_, err := svc.UseMaterial(context.Background(), UseMaterialRequest{PartID: "P", TicketID: "T", Quantity: 1})
	require.Error(t, err)

	_, ok := store.usage("T", "P")
	assert.False(t, ok)
	assert.Equal(t, 5, store.part("P").Stock)
}

func TestUseMaterialConcurrentNeverOversells(t *testing.T) {
	svc, store, _ := newInventoryFixture(t)
	store.parts["P"] = models.Part{ID: "P", Name: "Tornillo", Category: "Ferretería", Stock: 5}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.UseMaterial(context.Background(), UseMaterialRequest{PartID: "P", TicketID: "T", Quantity: 1})
			if err == nil {
				mu.Lock()
				success++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, success)
	assert.Equal(t, 0, store.part("P").Stock)
	usage, _ := store.usage("T", "P")
	assert.Equal(t, 5, usage.QuantityUsed)
}

func TestCreatePart(t *testing.T) {
	svc, _, _ := newInventoryFixture(t)

	part, err := svc.CreatePart(context.Background(), PartInput{
		Name:     strPtr(" Pantalla LCD "),
		Category: strPtr("Pantallas"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, part.ID)
	assert.Equal(t, "Pantalla LCD", part.Name)
	assert.Equal(t, 0, part.Stock)
	assert.Equal(t, 0, part.MinimumStock)
	assert.True(t, part.UnitCost.IsZero())
}

func TestCreatePartValidation(t *testing.T) {
	svc, _, _ := newInventoryFixture(t)
	ctx := context.Background()

	_, err := svc.CreatePart(ctx, PartInput{Category: strPtr("Pantallas")})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = svc.CreatePart(ctx, PartInput{Name: strPtr("Pantalla"), Category: strPtr(" ")})
	assert.ErrorAs(t, err, &verr)

	_, err = svc.CreatePart(ctx, PartInput{Name: strPtr("Pantalla"), Category: strPtr("Pantallas"), Stock: intPtr(-1)})
	assert.ErrorAs(t, err, &verr)
}

func TestUpdatePartIsPartial(t *testing.T) {
	svc, store, _ := newInventoryFixture(t)
	ctx := context.Background()
	store.parts["P"] = models.Part{
		ID: "P", Name: "Batería", Category: "Energía", Stock: 3, MinimumStock: 1,
		Unit: "pieza", UnitCost: decimal.NewFromInt(120),
	}

	cost := decimal.RequireFromString("135.50")
	part, err := svc.UpdatePart(ctx, "P", PartInput{Stock: intPtr(9), UnitCost: &cost})
	require.NoError(t, err)
	assert.Equal(t, 9, part.Stock)
	assert.True(t, part.UnitCost.Equal(cost))
	assert.Equal(t, "Batería", part.Name)
	assert.Equal(t, "pieza", part.Unit)
	assert.Equal(t, 1, part.MinimumStock)

	_, err = svc.UpdatePart(ctx, "missing", PartInput{Stock: intPtr(1)})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeletePart(t *testing.T) {
	svc, store, _ := newInventoryFixture(t)
	store.parts["P"] = models.Part{ID: "P", Name: "Bocina", Category: "Audio"}

	require.NoError(t, svc.DeletePart(context.Background(), "P"))
	_, err := svc.GetPart(context.Background(), "P")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.DeletePart(context.Background(), "P"), ErrNotFound)
}

func TestCreateSaleCard(t *testing.T) {
	svc, _, _ := newInventoryFixture(t)
	ctx := context.Background()

	price := decimal.NewFromInt(1800)
	card, err := svc.CreateSaleCard(ctx, CreateSaleCardRequest{BrandID: 3, Model: "UN55TU7000", SalePrice: &price})
	require.NoError(t, err)
	assert.Equal(t, models.SaleCardAvailable, card.Status)
	assert.Nil(t, card.SoldAt)

	cards, err := svc.ListSaleCards(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, card.ID, cards[0].ID)

	_, err = svc.CreateSaleCard(ctx, CreateSaleCardRequest{Model: "X"})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}
