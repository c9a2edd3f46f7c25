package signature

import (
	"context"

	"signature-builder/internal/autosave"
	"signature-builder/internal/domain"
	"signature-builder/internal/utils"

	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, doc *domain.SignatureDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockRepository) FindByID(ctx context.Context, id, userID uint64) (*domain.SignatureDocument, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SignatureDocument), args.Error(1)
}

func (m *MockRepository) FindByOwnerAndName(ctx context.Context, userID uint64, name string) (*domain.SignatureDocument, error) {
	args := m.Called(ctx, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SignatureDocument), args.Error(1)
}

func (m *MockRepository) ListByUserID(ctx context.Context, userID uint64, page, pageSize int) ([]SignatureSummary, utils.PageMeta, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]SignatureSummary), args.Get(1).(utils.PageMeta), args.Error(2)
}

func (m *MockRepository) UpdateData(ctx context.Context, id, userID uint64, data []byte) (int64, error) {
	args := m.Called(ctx, id, userID, data)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) UpdateDetails(ctx context.Context, doc *domain.SignatureDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id, userID uint64) (int64, error) {
	args := m.Called(ctx, id, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockService struct {
	mock.Mock
}

func (m *MockService) ListSignatures(ctx context.Context, userID uint64, page, pageSize int) (*PaginatedSignatures, error) {
	args := m.Called(ctx, userID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PaginatedSignatures), args.Error(1)
}

func (m *MockService) GetSignature(ctx context.Context, id, userID uint64) (*domain.SignatureDocument, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SignatureDocument), args.Error(1)
}

func (m *MockService) UpdateSignature(ctx context.Context, id, userID uint64, input UpdateInput) (*domain.SignatureDocument, error) {
	args := m.Called(ctx, id, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SignatureDocument), args.Error(1)
}

func (m *MockService) DeleteSignature(ctx context.Context, id, userID uint64) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockService) RemoteSink(userID uint64) autosave.RemoteSink {
	args := m.Called(userID)
	return args.Get(0).(autosave.RemoteSink)
}
