package auditlog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bandvibe/band-booking-backend/internal/apperr"
	"github.com/bandvibe/band-booking-backend/middleware"
)

type fakeRepo struct {
	created  []*AuditLog
	byID     map[uint]*AuditLog
	getErr   error
	lastByID uint
}

func (f *fakeRepo) Create(ctx context.Context, log *AuditLog) error {
	log.ID = uint(len(f.created) + 1)
	f.created = append(f.created, log)
	return nil
}

func (f *fakeRepo) GetByFilter(ctx context.Context, filter AuditLogFilter) ([]AuditLog, int64, error) {
	return nil, 0, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uint) (*AuditLog, error) {
	f.lastByID = id
	if f.getErr != nil {
		return nil, f.getErr
	}
	if log, ok := f.byID[id]; ok {
		return log, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func TestLogActionSerializesDetails(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)
	actor := middleware.Actor{Kind: middleware.ActorBand, ID: 7}
	eventID := uint(5)

	err := svc.LogAction(context.Background(), actor, &eventID, "private_event.to_be_done",
		map[string]interface{}{"band_decision": "see you there"}, "1.2.3.4", "success")
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	entry := repo.created[0]
	assert.Equal(t, "band", entry.ActorKind)
	assert.Equal(t, uint(7), *entry.ActorID)
	assert.Equal(t, uint(5), *entry.EventID)
	assert.Contains(t, entry.Details, "see you there")
}

func TestGetAuditLogByIDMissingRow(t *testing.T) {
	svc := NewService(&fakeRepo{byID: map[uint]*AuditLog{}})
	_, err := svc.GetAuditLogByID(context.Background(), 42)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestGetAuditLogByIDStorageFailure(t *testing.T) {
	svc := NewService(&fakeRepo{getErr: errors.New("connection reset")})
	_, err := svc.GetAuditLogByID(context.Background(), 42)
	assert.False(t, apperr.IsKind(err, apperr.KindNotFound))
	assert.True(t, apperr.IsKind(err, apperr.KindStorage))
}
