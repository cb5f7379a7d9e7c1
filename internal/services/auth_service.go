// internal/services/auth_service.go
package services

import (
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/zipstore/zip-storefront/internal/models"
	"github.com/zipstore/zip-storefront/internal/utils"
)

// AuthService verifies hosted-provider session tokens and remembers where a
// session wanted to go before it was sent to login.
type AuthService struct {
	db  *gorm.DB
	log logrus.FieldLogger
}

func NewAuthService(db *gorm.DB, log logrus.FieldLogger) *AuthService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &AuthService{db: db, log: log}
}

// UserProfile is the shape returned to the storefront for the signed-in
// customer.
type UserProfile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// CurrentUser validates a bearer token and returns the customer profile
// embedded in it.
func (s *AuthService) CurrentUser(token string) (*UserProfile, error) {
	claims, err := utils.ValidateSessionToken(strings.TrimSpace(token))
	if err != nil {
		return nil, err
	}
	return &UserProfile{
		ID:    claims.UserID,
		Email: claims.Email,
		Name:  claims.Name,
	}, nil
}

// SetRedirectTarget stores the path the session should return to after
// signing in. One target per session; a new one overwrites the old.
func (s *AuthService) SetRedirectTarget(sessionID, target string) error {
	if target == "" || !strings.HasPrefix(target, "/") {
		return errors.New("redirect target must be a relative path")
	}

	record := models.LoginRedirect{SessionID: sessionID, Target: target}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"target", "updated_at"}),
	}).Create(&record).Error
}

// RedirectTarget returns the stored post-login target, or "" when none is
// set.
func (s *AuthService) RedirectTarget(sessionID string) (string, error) {
	var record models.LoginRedirect
	err := s.db.Where("session_id = ?", sessionID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return record.Target, nil
}

// ClearRedirectTarget removes the stored target once it has been consumed.
func (s *AuthService) ClearRedirectTarget(sessionID string) error {
	return s.db.Where("session_id = ?", sessionID).Delete(&models.LoginRedirect{}).Error
}
