package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"resumescreener/internal/models"
)

var ErrResumeNotFound = errors.New("resume not found")

type ResumeRepository interface {
	Create(record *models.ResumeRecord) error
	FindByID(id uuid.UUID) (*models.ResumeRecord, error)
	FindByUserID(userID string) ([]models.ResumeRecord, error)
	DeleteByID(id uuid.UUID) error
	DeleteByUserID(userID string) error
}

type resumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) ResumeRepository {
	return &resumeRepository{db: db}
}

// Create implements ResumeRepository.
func (r *resumeRepository) Create(record *models.ResumeRecord) error {
	if err := r.db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to create resume record: %w", err)
	}
	return nil
}

// FindByID implements ResumeRepository.
func (r *resumeRepository) FindByID(id uuid.UUID) (*models.ResumeRecord, error) {
	var record models.ResumeRecord
	if err := r.db.Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResumeNotFound
		}
		return nil, fmt.Errorf("failed to find resume record: %w", err)
	}
	return &record, nil
}

// FindByUserID implements ResumeRepository.
func (r *resumeRepository) FindByUserID(userID string) ([]models.ResumeRecord, error) {
	var records []models.ResumeRecord
	err := r.db.
		Where("user_id = ?", userID).
		Order("uploaded_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list resume records: %w", err)
	}
	return records, nil
}

// DeleteByID implements ResumeRepository.
func (r *resumeRepository) DeleteByID(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&models.ResumeRecord{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete resume record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrResumeNotFound
	}
	return nil
}

// DeleteByUserID implements ResumeRepository.
func (r *resumeRepository) DeleteByUserID(userID string) error {
	if err := r.db.Where("user_id = ?", userID).Delete(&models.ResumeRecord{}).Error; err != nil {
		return fmt.Errorf("failed to delete resume records: %w", err)
	}
	return nil
}
