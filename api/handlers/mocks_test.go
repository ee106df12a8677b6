package handlers

import (
	"context"

	"github.com/IDS-Mandujano/electronica-back/internal/models"
	"github.com/IDS-Mandujano/electronica-back/internal/service"

	"github.com/stretchr/testify/mock"
)

type mockTicketService struct {
	mock.Mock
}

func (m *mockTicketService) Create(ctx context.Context, req service.CreateTicketRequest) (*models.Ticket, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ticket), args.Error(1)
}

func (m *mockTicketService) List(ctx context.Context) ([]models.TicketDetail, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TicketDetail), args.Error(1)
}

func (m *mockTicketService) ListFinalized(ctx context.Context) ([]models.TicketDetail, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TicketDetail), args.Error(1)
}

func (m *mockTicketService) Get(ctx context.Context, id string) (*models.TicketDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TicketDetail), args.Error(1)
}

func (m *mockTicketService) UpdateDiagnosis(ctx context.Context, id string, req service.UpdateDiagnosisRequest) (*models.TicketDetail, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TicketDetail), args.Error(1)
}

func (m *mockTicketService) FinalizeDelivery(ctx context.Context, id string, req service.FinalizeRequest) (*models.TicketDetail, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TicketDetail), args.Error(1)
}

func (m *mockTicketService) UpdateDelivery(ctx context.Context, id string, patch service.DeliveryPatch) (*models.TicketDetail, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TicketDetail), args.Error(1)
}

func (m *mockTicketService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockInventoryService struct {
	mock.Mock
}

func (m *mockInventoryService) ListParts(ctx context.Context) ([]models.Part, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Part), args.Error(1)
}

func (m *mockInventoryService) GetPart(ctx context.Context, id string) (*models.Part, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Part), args.Error(1)
}

func (m *mockInventoryService) CreatePart(ctx context.Context, in service.PartInput) (*models.Part, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Part), args.Error(1)
}

func (m *mockInventoryService) UpdatePart(ctx context.Context, id string, in service.PartInput) (*models.Part, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Part), args.Error(1)
}

func (m *mockInventoryService) DeletePart(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockInventoryService) UseMaterial(ctx context.Context, req service.UseMaterialRequest) (*models.Part, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Part), args.Error(1)
}

func (m *mockInventoryService) ListTicketMaterials(ctx context.Context, ticketID string) ([]models.MaterialUsageDetail, error) {
	args := m.Called(ctx, ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MaterialUsageDetail), args.Error(1)
}

func (m *mockInventoryService) ListSaleCards(ctx context.Context) ([]models.SaleCard, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SaleCard), args.Error(1)
}

func (m *mockInventoryService) CreateSaleCard(ctx context.Context, req service.CreateSaleCardRequest) (*models.SaleCard, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SaleCard), args.Error(1)
}

type mockStatsService struct {
	mock.Mock
}

func (m *mockStatsService) Summary(ctx context.Context) (*models.RevenueSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RevenueSummary), args.Error(1)
}

func (m *mockStatsService) Chart(ctx context.Context, kind string) (*models.RevenueChart, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RevenueChart), args.Error(1)
}
