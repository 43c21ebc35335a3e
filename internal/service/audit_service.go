package service

import (
	"telemed-scheduler/internal/domain/entity"
	"telemed-scheduler/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AuditService interface {
	Record(db *gorm.DB, userID *uint, action string, entityName string, entityID uint, detail interface{}) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

// Record writes one audit trail row on the given handle. Callers that
// hold a transaction pass it in so the entry commits with the change.
func (s *auditService) Record(db *gorm.DB, userID *uint, action string, entityName string, entityID uint, detail interface{}) error {
	auditLog := &entity.AuditLog{
		UserID: userID,
		Action: action,
		Metadata: entity.JSON{
			"entity":    entityName,
			"entity_id": entityID,
			"detail":    detail,
		},
	}

	if err := s.auditRepo.Create(db, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}
