// internal/services/contact_service.go
package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/zipstore/zip-storefront/internal/models"
	"github.com/zipstore/zip-storefront/internal/utils"
)

var ErrContactNotFound = errors.New("contact inquiry not found")

// ContactService stores inquiries from the contact form and backs the admin
// inbox. New inquiries trigger a best-effort email alert.
type ContactService struct {
	db       *gorm.DB
	notifier *NotificationService
	log      logrus.FieldLogger
}

func NewContactService(db *gorm.DB, notifier *NotificationService, log logrus.FieldLogger) *ContactService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ContactService{db: db, notifier: notifier, log: log}
}

// ContactForm is the public contact submission.
type ContactForm struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty,vn_phone"`
	Message string `json:"message" validate:"required,min=10,max=2000"`
}

// Create stores the inquiry and sends the alert email in the background.
func (s *ContactService) Create(form *ContactForm) (*models.ContactInquiry, error) {
	inquiry := models.ContactInquiry{
		Name:    form.Name,
		Email:   form.Email,
		Phone:   form.Phone,
		Message: form.Message,
		Status:  models.ContactStatusNew,
	}
	if err := s.db.Create(&inquiry).Error; err != nil {
		return nil, err
	}

	if s.notifier != nil {
		go func(i models.ContactInquiry) {
			if err := s.notifier.SendContactAlert(&i); err != nil {
				s.log.WithError(err).WithField("inquiry_id", i.ID).Warn("Failed to send contact alert")
			}
		}(inquiry)
	}

	return &inquiry, nil
}

// List returns a page of inquiries for the admin inbox, optionally filtered
// by status and searched by name or email.
func (s *ContactService) List(params utils.PaginationParams) ([]models.ContactInquiry, int64, error) {
	query := s.db.Model(&models.ContactInquiry{})

	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Search != "" {
		search := "%" + params.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", search, search)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = utils.ApplySort(query, params, []string{"created_at", "status", "name"})
	query = utils.ApplyPagination(query, params)

	var inquiries []models.ContactInquiry
	if err := query.Find(&inquiries).Error; err != nil {
		return nil, 0, err
	}
	return inquiries, total, nil
}

// Get returns a single inquiry.
func (s *ContactService) Get(id uuid.UUID) (*models.ContactInquiry, error) {
	var inquiry models.ContactInquiry
	if err := s.db.First(&inquiry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return &inquiry, nil
}

// UpdateStatus moves an inquiry between new, read and replied.
func (s *ContactService) UpdateStatus(id uuid.UUID, status models.ContactStatus) (*models.ContactInquiry, error) {
	inquiry, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	inquiry.Status = status
	if err := s.db.Model(inquiry).Update("status", status).Error; err != nil {
		return nil, err
	}
	return inquiry, nil
}

// Delete soft-deletes an inquiry.
func (s *ContactService) Delete(id uuid.UUID) error {
	result := s.db.Delete(&models.ContactInquiry{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrContactNotFound
	}
	return nil
}

// CountByStatus returns inquiry counts per status for the dashboard.
func (s *ContactService) CountByStatus() (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := s.db.Model(&models.ContactInquiry{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}
