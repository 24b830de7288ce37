package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/successpath-portal/internal/models"
	"github.com/noah-isme/successpath-portal/internal/session"
)

// SessionEntryRepository persists session entries in SQL.
type SessionEntryRepository interface {
	session.Store
	Sweep(ctx context.Context, cutoff time.Time) (int64, error)
}

type sessionEntryRepository struct {
	db *gorm.DB
}

// NewSessionEntryRepository constructs the SQL backed session store.
func NewSessionEntryRepository(db *gorm.DB) SessionEntryRepository {
	return &sessionEntryRepository{db: db}
}

func (r *sessionEntryRepository) Load(ctx context.Context, sessionID string) (session.Entries, error) {
	var record models.SessionRecord
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return session.Entries{}, nil
	}
	if err != nil {
		return session.Entries{}, err
	}

	return session.Entries{Token: record.Token, User: []byte(record.Identity)}, nil
}

func (r *sessionEntryRepository) Save(ctx context.Context, sessionID string, entries session.Entries) error {
	record := models.SessionRecord{
		SessionID: sessionID,
		Token:     entries.Token,
		Identity:  datatypes.JSON(entries.User),
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"token", "identity", "updated_at"}),
	}).Create(&record).Error
}

func (r *sessionEntryRepository) Clear(ctx context.Context, sessionID string) error {
	return r.db.WithContext(ctx).Where("session_id = ?", sessionID).Delete(&models.SessionRecord{}).Error
}

// Sweep deletes entries not written since cutoff.
func (r *sessionEntryRepository) Sweep(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("updated_at < ?", cutoff).Delete(&models.SessionRecord{})
	return result.RowsAffected, result.Error
}
