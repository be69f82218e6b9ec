package repository

import (
	"context"

	"github.com/jhoicas/LabOps-api/internal/domain/entity"
)

// ProtocolRepository define el puerto de persistencia para Protocol.
// GetByID embebe pasos y pruebas asociadas (join protocol_test_methods).
type ProtocolRepository interface {
	Create(ctx context.Context, p *entity.Protocol) error
	GetByID(ctx context.Context, id string) (*entity.Protocol, error)
	Update(ctx context.Context, p *entity.Protocol) error
	List(ctx context.Context, f ListFilter) ([]*entity.Protocol, int, error)
	Delete(ctx context.Context, id string) error
	// SetTestMethods reemplaza las pruebas asociadas al protocolo.
	SetTestMethods(ctx context.Context, protocolID string, testMethodIDs []string) error
}

// ProtocolStepRepository define el puerto de persistencia para ProtocolStep.
type ProtocolStepRepository interface {
	Create(ctx context.Context, s *entity.ProtocolStep) error
	GetByID(ctx context.Context, id string) (*entity.ProtocolStep, error)
	Update(ctx context.Context, s *entity.ProtocolStep) error
	Delete(ctx context.Context, id string) error
	// ListByProtocol devuelve los pasos ordenados por step_number.
	ListByProtocol(ctx context.Context, protocolID string) ([]*entity.ProtocolStep, error)
}
