package repository

import (
	"context"

	"github.com/jhoicas/LabOps-api/internal/domain/entity"
)

// TestMethodRepository define el puerto de persistencia para TestMethod (DIP).
type TestMethodRepository interface {
	Create(ctx context.Context, m *entity.TestMethod) error
	GetByID(ctx context.Context, id string) (*entity.TestMethod, error)
	GetByCode(ctx context.Context, code string) (*entity.TestMethod, error)
	Update(ctx context.Context, m *entity.TestMethod) error
	// Upsert inserta o actualiza por código; deja en m.ID el ID persistido.
	Upsert(ctx context.Context, m *entity.TestMethod) error
	List(ctx context.Context, f ListFilter) ([]*entity.TestMethod, int, error)
	Delete(ctx context.Context, id string) error
}

// TestPanelRepository define el puerto de persistencia para TestPanel y sus miembros.
type TestPanelRepository interface {
	Create(ctx context.Context, p *entity.TestPanel) error
	GetByID(ctx context.Context, id string) (*entity.TestPanel, error)
	GetByCode(ctx context.Context, code string) (*entity.TestPanel, error)
	Update(ctx context.Context, p *entity.TestPanel) error
	// Upsert inserta o actualiza por código; deja en p.ID el ID persistido.
	Upsert(ctx context.Context, p *entity.TestPanel) error
	// SetMembers reemplaza los miembros del panel.
	SetMembers(ctx context.Context, panelID string, testMethodIDs []string) error
	List(ctx context.Context, f ListFilter) ([]*entity.TestPanel, int, error)
	Delete(ctx context.Context, id string) error
}
