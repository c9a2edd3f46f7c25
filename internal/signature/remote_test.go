package signature

import (
	"context"
	"errors"
	"testing"

	"signature-builder/internal/domain"
	"signature-builder/redis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

var payload = []byte(`{"rows":[],"globalStyles":{}}`)

func TestRemoteSink_InsertsWhenMissingThenUpdatesByID(t *testing.T) {
	repo := new(MockRepository)
	sink := NewRemoteSink(repo, redis.NewCache(nil), 7)
	ctx := context.Background()

	repo.On("FindByOwnerAndName", ctx, uint64(7), AutosaveName).Return(nil, gorm.ErrRecordNotFound).Once()
	repo.On("Create", ctx, mock.MatchedBy(func(doc *domain.SignatureDocument) bool {
		return doc.UserID == 7 && doc.Name == AutosaveName && string(doc.Data) == string(payload)
	})).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.SignatureDocument).ID = 42
	}).Once()

	assert.NoError(t, sink.Save(ctx, payload))

	repo.On("UpdateData", ctx, uint64(42), uint64(7), payload).Return(int64(1), nil).Once()
	assert.NoError(t, sink.Save(ctx, payload))

	repo.AssertExpectations(t)
	repo.AssertNumberOfCalls(t, "FindByOwnerAndName", 1)
}

func TestRemoteSink_UpdatesExistingRecordByName(t *testing.T) {
	repo := new(MockRepository)
	sink := NewRemoteSink(repo, redis.NewCache(nil), 7)
	ctx := context.Background()

	repo.On("FindByOwnerAndName", ctx, uint64(7), AutosaveName).
		Return(&domain.SignatureDocument{ID: 5, UserID: 7, Name: AutosaveName}, nil).Once()
	repo.On("UpdateData", ctx, uint64(5), uint64(7), payload).Return(int64(1), nil).Twice()

	assert.NoError(t, sink.Save(ctx, payload))
	assert.NoError(t, sink.Save(ctx, payload))

	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRemoteSink_RecordDeletedUnderneath(t *testing.T) {
	repo := new(MockRepository)
	sink := NewRemoteSink(repo, redis.NewCache(nil), 7)
	sink.id = 5
	ctx := context.Background()

	repo.On("UpdateData", ctx, uint64(5), uint64(7), payload).Return(int64(0), nil).Once()
	repo.On("FindByOwnerAndName", ctx, uint64(7), AutosaveName).Return(nil, gorm.ErrRecordNotFound).Once()
	repo.On("Create", ctx, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.SignatureDocument).ID = 9
	}).Once()

	assert.NoError(t, sink.Save(ctx, payload))
	assert.Equal(t, uint64(9), sink.id)
	repo.AssertExpectations(t)
}

func TestRemoteSink_ErrorsAreReturned(t *testing.T) {
	repo := new(MockRepository)
	sink := NewRemoteSink(repo, redis.NewCache(nil), 7)
	ctx := context.Background()
	boom := errors.New("connection refused")

	repo.On("FindByOwnerAndName", ctx, uint64(7), AutosaveName).Return(nil, boom).Once()

	assert.ErrorIs(t, sink.Save(ctx, payload), boom)
	assert.Equal(t, uint64(0), sink.id)
}
