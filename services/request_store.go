package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"leave-management-api/models"
)

// RequestFilter narrows a Query call. Zero values mean "no filter".
// SubmittedFrom/SubmittedTo bound date_requested inclusively on both ends.
type RequestFilter struct {
	Statuses        []string
	ExcludeStatuses []string
	Section         string
	StudentUsername string
	SubmittedFrom   *time.Time
	SubmittedTo     *time.Time
}

// RequestStore persists leave requests. CompareAndSetStatus is the only
// mutation after creation: it applies updates only while the stored status
// still equals expectedStatus, so racing transitions cannot both win.
type RequestStore interface {
	Create(req *models.LeaveRequest) error
	GetByID(id uint) (*models.LeaveRequest, error)
	CompareAndSetStatus(id uint, expectedStatus string, updates map[string]interface{}) (bool, error)
	Query(filter RequestFilter) ([]models.LeaveRequest, error)
}

type gormRequestStore struct {
	db *gorm.DB
}

// NewRequestStore returns the GORM-backed RequestStore.
func NewRequestStore(db *gorm.DB) RequestStore {
	return &gormRequestStore{db: db}
}

func (s *gormRequestStore) Create(req *models.LeaveRequest) error {
	if err := s.db.Create(req).Error; err != nil {
		return fmt.Errorf("failed to create leave request: %w", err)
	}
	return nil
}

func (s *gormRequestStore) GetByID(id uint) (*models.LeaveRequest, error) {
	var req models.LeaveRequest
	if err := s.db.First(&req, "request_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load leave request %d: %w", id, err)
	}
	return &req, nil
}

func (s *gormRequestStore) CompareAndSetStatus(id uint, expectedStatus string, updates map[string]interface{}) (bool, error) {
	res := s.db.Model(&models.LeaveRequest{}).
		Where("request_id = ? AND status = ?", id, expectedStatus).
		Updates(updates)
	if res.Error != nil {
		return false, fmt.Errorf("failed to update leave request %d: %w", id, res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (s *gormRequestStore) Query(filter RequestFilter) ([]models.LeaveRequest, error) {
	tx := s.db.Model(&models.LeaveRequest{})

	if len(filter.Statuses) > 0 {
		tx = tx.Where("status IN ?", filter.Statuses)
	}
	if len(filter.ExcludeStatuses) > 0 {
		tx = tx.Where("status NOT IN ?", filter.ExcludeStatuses)
	}
	if filter.Section != "" {
		tx = tx.Where("student_section = ?", filter.Section)
	}
	if filter.StudentUsername != "" {
		tx = tx.Where("student_username = ?", filter.StudentUsername)
	}
	if filter.SubmittedFrom != nil {
		tx = tx.Where("date_requested >= ?", *filter.SubmittedFrom)
	}
	if filter.SubmittedTo != nil {
		tx = tx.Where("date_requested <= ?", *filter.SubmittedTo)
	}

	var rows []models.LeaveRequest
	if err := tx.Order("date_requested DESC, request_id DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query leave requests: %w", err)
	}
	return rows, nil
}
