package repository

import (
	"context"

	"hospital-management-backend/internal/domain/entity"
)

type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	FindAll(ctx context.Context) ([]entity.AuditLog, error)
	// FindByID returns (nil, nil) when no entry matches.
	FindByID(ctx context.Context, id int64) (*entity.AuditLog, error)
}
