package service

import (
	"context"

	"hospital-management-backend/internal/domain/entity"
	"hospital-management-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AuditService records who did what. Failures are logged and swallowed so an
// audit problem never fails the operation being audited.
type AuditService interface {
	Record(ctx context.Context, userID *uuid.UUID, action string, metadata entity.JSON)
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

func (s *auditService) Record(ctx context.Context, userID *uuid.UUID, action string, metadata entity.JSON) {
	auditLog := &entity.AuditLog{
		UserID:   userID,
		Action:   action,
		Metadata: metadata,
	}

	if err := s.auditRepo.Create(ctx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log for %s: %+v", action, err)
	}
}
