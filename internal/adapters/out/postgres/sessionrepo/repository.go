// Package sessionrepo stores conversation sessions as JSON documents in the
// user_sessions table.
package sessionrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ordering/internal/core/domain/model/session"
	"ordering/internal/core/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionDTO struct {
	UserID      int64     `gorm:"primaryKey;autoIncrement:false"`
	SessionData string    `gorm:"type:jsonb;not null"`
	UpdatedAt   time.Time `gorm:"not null;index"`
}

func (SessionDTO) TableName() string {
	return "user_sessions"
}

type GormSessionRepository struct {
	db           *gorm.DB
	historyLimit int
	now          func() time.Time
}

func NewGormSessionRepository(db *gorm.DB, historyLimit int) *GormSessionRepository {
	return &GormSessionRepository{db: db, historyLimit: historyLimit, now: time.Now}
}

func (r *GormSessionRepository) Load(ctx context.Context, userID int64) (session.Session, error) {
	var dto SessionDTO
	if err := r.db.WithContext(ctx).Take(&dto, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return session.Session{}, ports.ErrSessionNotFound
		}
		return session.Session{}, err
	}

	var doc session.Document
	if err := json.Unmarshal([]byte(dto.SessionData), &doc); err != nil {
		return session.Session{}, fmt.Errorf("decode session of user %d: %w", userID, err)
	}

	return session.FromDocument(doc, r.historyLimit)
}

// Save upserts the session and stamps updated_at.
func (r *GormSessionRepository) Save(ctx context.Context, userID int64, s session.Session) error {
	data, err := json.Marshal(s.Document())
	if err != nil {
		return fmt.Errorf("encode session of user %d: %w", userID, err)
	}

	dto := SessionDTO{
		UserID:      userID,
		SessionData: string(data),
		UpdatedAt:   r.now().UTC(),
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"session_data", "updated_at"}),
		}).
		Create(&dto).Error
}

func (r *GormSessionRepository) DeleteIdleSince(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("updated_at < ?", cutoff.UTC()).
		Delete(&SessionDTO{})
	return result.RowsAffected, result.Error
}
