package store

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	apperrors "github.com/skillsenselab/meetscribe/errors"
)

// Users provides account persistence.
type Users struct {
	db *DB
}

// NewUsers creates a user repository.
func NewUsers(db *DB) *Users { return &Users{db: db} }

// Create inserts a new user. Email uniqueness violations surface as a
// validation error.
func (r *Users) Create(ctx context.Context, u *User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Validation("email is already registered")
		}
		return apperrors.Internal("creating user", err)
	}
	return nil
}

// ByEmail fetches a user by email.
func (r *Users) ByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("user")
	}
	if err != nil {
		return nil, apperrors.Internal("fetching user", err)
	}
	return &u, nil
}

// ByID fetches a user by primary key.
func (r *Users) ByID(ctx context.Context, id uint) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, id).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("user")
	}
	if err != nil {
		return nil, apperrors.Internal("fetching user", err)
	}
	return &u, nil
}

// Recordings provides recording persistence.
type Recordings struct {
	db *DB
}

// NewRecordings creates a recording repository.
func NewRecordings(db *DB) *Recordings { return &Recordings{db: db} }

// Create inserts a new recording.
func (r *Recordings) Create(ctx context.Context, rec *Recording) error {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return apperrors.Internal("creating recording", err)
	}
	return nil
}

// ByID fetches a recording with its speakers and documents. Ownership is
// enforced through userID.
func (r *Recordings) ByID(ctx context.Context, id string, userID uint) (*Recording, error) {
	var rec Recording
	err := r.db.WithContext(ctx).
		Preload("Speakers").
		Preload("Documents").
		Where("id = ? AND user_id = ?", id, userID).
		First(&rec).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("recording")
	}
	if err != nil {
		return nil, apperrors.Internal("fetching recording", err)
	}
	return &rec, nil
}

// ListByUser returns a user's recordings, newest first, without text bodies.
func (r *Recordings) ListByUser(ctx context.Context, userID uint) ([]Recording, error) {
	var recs []Recording
	err := r.db.WithContext(ctx).
		Select("id", "user_id", "filename", "status", "duration", "num_speakers", "created_at", "updated_at").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&recs).Error
	if err != nil {
		return nil, apperrors.Internal("listing recordings", err)
	}
	return recs, nil
}

// SetStatus updates a recording's status, and its error message when failed.
func (r *Recordings) SetStatus(ctx context.Context, id, status, errMsg string) error {
	updates := map[string]any{"status": status, "error": errMsg}
	if err := r.db.WithContext(ctx).Model(&Recording{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return apperrors.Internal("updating recording status", err)
	}
	return nil
}

// SaveResult stores a completed run's output on the recording, replacing any
// previous speakers and documents.
func (r *Recordings) SaveResult(ctx context.Context, rec *Recording) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recording_id = ?", rec.ID).Delete(&SpeakerSummary{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recording_id = ?", rec.ID).Delete(&Document{}).Error; err != nil {
			return err
		}
		return tx.Save(rec).Error
	})
	if err != nil {
		return apperrors.Internal("saving recording result", err)
	}
	return nil
}
