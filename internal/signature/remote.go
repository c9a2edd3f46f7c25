package signature

import (
	"context"
	"errors"
	"sync"

	"signature-builder/internal/domain"
	"signature-builder/redis"

	"gorm.io/gorm"
)

// AutosaveName is the record every editor session of a user writes to.
const AutosaveName = "Autosave"

const autosaveDescription = "Saved automatically from the editor"

// RemoteSink upserts one user's autosave record. The record id is cached
// after the first successful write so later writes skip the lookup.
type RemoteSink struct {
	repository SignatureRepository
	cache      *redis.Cache
	userID     uint64

	mu sync.Mutex
	id uint64
}

func NewRemoteSink(repository SignatureRepository, cache *redis.Cache, userID uint64) *RemoteSink {
	return &RemoteSink{repository: repository, cache: cache, userID: userID}
}

// Save writes payload as the record's data: update by cached id, else
// update the record found by owner and name, else insert.
func (s *RemoteSink) Save(ctx context.Context, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.id != 0 {
		n, err := s.repository.UpdateData(ctx, s.id, s.userID, payload)
		if err != nil {
			return err
		}
		if n > 0 {
			s.invalidate(ctx)
			return nil
		}
		// deleted since the last write
		s.id = 0
	}

	doc, err := s.repository.FindByOwnerAndName(ctx, s.userID, AutosaveName)
	switch {
	case err == nil:
		if _, err := s.repository.UpdateData(ctx, doc.ID, s.userID, payload); err != nil {
			return err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		doc = &domain.SignatureDocument{
			UserID:      s.userID,
			Name:        AutosaveName,
			Description: autosaveDescription,
			Data:        payload,
		}
		if err := s.repository.Create(ctx, doc); err != nil {
			return err
		}
	default:
		return err
	}

	s.id = doc.ID
	s.invalidate(ctx)
	return nil
}

func (s *RemoteSink) invalidate(ctx context.Context) {
	s.cache.IncrementVersion(ctx, listVersionKey(s.userID))
}
