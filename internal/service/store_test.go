package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/IDS-Mandujano/electronica-back/internal/messaging"
	"github.com/IDS-Mandujano/electronica-back/internal/models"
	"github.com/IDS-Mandujano/electronica-back/internal/repository"

	"github.com/shopspring/decimal"
)

// memStore is an in-memory repository.Store. Transactions are serialized
// and roll back to a snapshot on error.
type memStore struct {
	txMu sync.Mutex
	mu   sync.Mutex

	tickets map[string]models.Ticket
	parts   map[string]models.Part
	usages  map[[2]string]models.MaterialUsage
	cards   []models.SaleCard
	folio   int64

	// deductErr, when set, is returned by DeductStock
	deductErr error
}

func newMemStore() *memStore {
	return &memStore{
		tickets: map[string]models.Ticket{},
		parts:   map[string]models.Part{},
		usages:  map[[2]string]models.MaterialUsage{},
	}
}

func (s *memStore) Tickets() repository.TicketRepository               { return memTickets{s} }
func (s *memStore) Parts() repository.PartRepository                   { return memParts{s} }
func (s *memStore) MaterialUsages() repository.MaterialUsageRepository { return memLedger{s} }
func (s *memStore) SaleCards() repository.SaleCardRepository           { return memCards{s} }
func (s *memStore) Stats() repository.StatsRepository                  { return memStats{s} }

func (s *memStore) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx repository.Store) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	tickets := copyMap(s.tickets)
	parts := copyMap(s.parts)
	usages := copyMap(s.usages)
	s.mu.Unlock()

	if err := fn(ctx, s); err != nil {
		s.mu.Lock()
		s.tickets, s.parts, s.usages = tickets, parts, usages
		s.mu.Unlock()
		return err
	}
	return nil
}

func copyMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (s *memStore) part(id string) models.Part {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.parts[id]
}

func (s *memStore) usage(ticketID, partID string) (models.MaterialUsage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.usages[[2]string{ticketID, partID}]
	return u, ok
}

type memTickets struct{ s *memStore }

func (r memTickets) Create(ctx context.Context, t *models.Ticket) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.folio++
	t.Folio = r.s.folio
	r.s.tickets[t.ID] = *t
	return nil
}

func (r memTickets) List(ctx context.Context) ([]models.TicketDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.TicketDetail{}
	for _, t := range r.s.tickets {
		out = append(out, models.TicketDetail{Ticket: t})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReceivedAt.After(out[j].ReceivedAt) })
	return out, nil
}

func (r memTickets) FindByID(ctx context.Context, id string) (*models.TicketDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tickets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &models.TicketDetail{Ticket: t}, nil
}

func (r memTickets) UpdateDiagnosis(ctx context.Context, id string, u repository.DiagnosisUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tickets[id]
	if !ok {
		return repository.ErrNotFound
	}
	t.Diagnosis = u.Diagnosis
	t.Status = u.Status
	t.EstimatedDelivery = u.EstimatedDelivery
	r.s.tickets[id] = t
	return nil
}

func (r memTickets) Finalize(ctx context.Context, id string, f repository.Finalization) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tickets[id]
	if !ok {
		return repository.ErrNotFound
	}
	completed := f.CompletedAt
	t.Status = models.TicketStatusDelivered
	t.CompletedAt = &completed
	t.DeliveredAt = f.DeliveredAt
	t.RepairCost = decimal.NewNullDecimal(f.RepairCost)
	if f.Diagnosis != nil {
		d := *f.Diagnosis
		t.Diagnosis = &d
	}
	r.s.tickets[id] = t
	return nil
}

func (r memTickets) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tickets[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.tickets, id)
	return nil
}

type memParts struct{ s *memStore }

func (r memParts) List(ctx context.Context) ([]models.Part, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Part{}
	for _, p := range r.s.parts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r memParts) FindByID(ctx context.Context, id string) (*models.Part, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.parts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r memParts) Create(ctx context.Context, p *models.Part) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.parts[p.ID] = *p
	return nil
}

func (r memParts) Update(ctx context.Context, p *models.Part) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.parts[p.ID]; !ok {
		return repository.ErrNotFound
	}
	r.s.parts[p.ID] = *p
	return nil
}

func (r memParts) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.parts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.parts, id)
	return nil
}

type memLedger struct{ s *memStore }

func (r memLedger) CheckStock(ctx context.Context, partID string, qty int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.parts[partID]
	return ok && p.Stock >= qty, nil
}

func (r memLedger) RecordUsage(ctx context.Context, ticketID, partID string, qty int, usedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := [2]string{ticketID, partID}
	u, ok := r.s.usages[key]
	if !ok {
		u = models.MaterialUsage{ID: ticketID + "/" + partID, TicketID: ticketID, PartID: partID, UsedAt: usedAt}
	}
	u.QuantityUsed += qty
	r.s.usages[key] = u
	return nil
}

func (r memLedger) DeductStock(ctx context.Context, partID string, qty int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.deductErr != nil {
		return r.s.deductErr
	}
	p, ok := r.s.parts[partID]
	if !ok {
		return repository.ErrNotFound
	}
	if p.Stock < qty {
		return repository.ErrInsufficientStock
	}
	p.Stock -= qty
	r.s.parts[partID] = p
	return nil
}

func (r memLedger) ListByTicket(ctx context.Context, ticketID string) ([]models.MaterialUsageDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.MaterialUsageDetail{}
	for key, u := range r.s.usages {
		if key[0] != ticketID {
			continue
		}
		p := r.s.parts[u.PartID]
		out = append(out, models.MaterialUsageDetail{
			ID: u.ID, TicketID: u.TicketID, PartID: u.PartID,
			PartName: p.Name, Category: p.Category,
			QuantityUsed: u.QuantityUsed, UsedAt: u.UsedAt,
		})
	}
	return out, nil
}

type memCards struct{ s *memStore }

func (r memCards) List(ctx context.Context) ([]models.SaleCard, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]models.SaleCard{}, r.s.cards...), nil
}

func (r memCards) Create(ctx context.Context, c *models.SaleCard) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.cards = append(r.s.cards, *c)
	return nil
}

type memStats struct{ s *memStore }

func (r memStats) delivered(from, to time.Time) []models.Ticket {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Ticket
	for _, t := range r.s.tickets {
		if t.Status != models.TicketStatusDelivered || t.CompletedAt == nil {
			continue
		}
		if !t.CompletedAt.Before(from) && t.CompletedAt.Before(to) {
			out = append(out, t)
		}
	}
	return out
}

func (r memStats) Revenue(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, t := range r.delivered(from, to) {
		total = total.Add(t.RepairCost.Decimal)
	}
	return total, nil
}

func (r memStats) CountDelivered(ctx context.Context, from, to time.Time) (int64, error) {
	return int64(len(r.delivered(from, to))), nil
}

// recordingPublisher keeps every event it is given
type recordingPublisher struct {
	mu     sync.Mutex
	events []messaging.Event
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, e messaging.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

// fixedClock returns a clock that advances one second per call
func fixedClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	now := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := now
		now = now.Add(time.Second)
		return t
	}
}
