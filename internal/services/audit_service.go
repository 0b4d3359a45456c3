package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/barberia-app/barberia-api/internal/models"
	"github.com/barberia-app/barberia-api/pkg/logger"
)

// AuditService records who did what to the financial records
type AuditService struct {
	db *gorm.DB
}

// NewAuditService creates a new audit service
func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

// Log writes an audit entry. Failures are logged and swallowed: auditing
// never blocks the operation it describes.
func (s *AuditService) Log(ctx context.Context, userID uint, action, entity string, entityID uint, details, ip, userAgent string) {
	entry := &models.AuditLog{
		UserID:    userID,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Details:   details,
		IPAddress: ip,
		UserAgent: userAgent,
	}

	if s.db == nil {
		return
	}

	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		logger.Error("Failed to write audit log", "action", action, "entity", entity, "error", err)
	}
}
