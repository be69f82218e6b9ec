package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/LabOps-api/internal/domain"
	"github.com/jhoicas/LabOps-api/internal/domain/entity"
	"github.com/jhoicas/LabOps-api/internal/domain/repository"
)

// Repositorios en memoria (sin concurrencia) para los casos de uso.

type fakeOrgRepo struct{ items map[string]*entity.Organization }

func (r *fakeOrgRepo) Create(_ context.Context, o *entity.Organization) error {
	for _, x := range r.items {
		if x.Code == o.Code {
			return domain.ErrDuplicate
		}
	}
	r.items[o.ID] = o
	return nil
}
func (r *fakeOrgRepo) GetByID(_ context.Context, id string) (*entity.Organization, error) {
	return r.items[id], nil
}
func (r *fakeOrgRepo) GetByCode(_ context.Context, code string) (*entity.Organization, error) {
	for _, x := range r.items {
		if x.Code == code {
			return x, nil
		}
	}
	return nil, nil
}
func (r *fakeOrgRepo) Update(_ context.Context, o *entity.Organization) error {
	r.items[o.ID] = o
	return nil
}
func (r *fakeOrgRepo) List(_ context.Context, f repository.ListFilter) ([]*entity.Organization, int, error) {
	var out []*entity.Organization
	for _, x := range r.items {
		out = append(out, x)
	}
	return out, len(out), nil
}
func (r *fakeOrgRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

type fakeMethodRepo struct{ items map[string]*entity.TestMethod }

func (r *fakeMethodRepo) Create(_ context.Context, m *entity.TestMethod) error {
	r.items[m.ID] = m
	return nil
}
func (r *fakeMethodRepo) GetByID(_ context.Context, id string) (*entity.TestMethod, error) {
	return r.items[id], nil
}
func (r *fakeMethodRepo) GetByCode(_ context.Context, code string) (*entity.TestMethod, error) {
	for _, x := range r.items {
		if x.Code == code {
			return x, nil
		}
	}
	return nil, nil
}
func (r *fakeMethodRepo) Update(_ context.Context, m *entity.TestMethod) error {
	r.items[m.ID] = m
	return nil
}
func (r *fakeMethodRepo) Upsert(ctx context.Context, m *entity.TestMethod) error {
	return r.Create(ctx, m)
}
func (r *fakeMethodRepo) List(context.Context, repository.ListFilter) ([]*entity.TestMethod, int, error) {
	return nil, 0, nil
}
func (r *fakeMethodRepo) Delete(context.Context, string) error { return nil }

type fakeProtocolRepo struct {
	items map[string]*entity.Protocol
	steps *fakeStepRepo
	links map[string][]string
}

func (r *fakeProtocolRepo) Create(_ context.Context, p *entity.Protocol) error {
	r.items[p.ID] = p
	return nil
}
func (r *fakeProtocolRepo) GetByID(ctx context.Context, id string) (*entity.Protocol, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	steps, _ := r.steps.ListByProtocol(ctx, id)
	cp.Steps = derefSteps(steps)
	return &cp, nil
}
func (r *fakeProtocolRepo) Update(_ context.Context, p *entity.Protocol) error {
	r.items[p.ID] = p
	return nil
}
func (r *fakeProtocolRepo) List(context.Context, repository.ListFilter) ([]*entity.Protocol, int, error) {
	return nil, 0, nil
}
func (r *fakeProtocolRepo) Delete(context.Context, string) error { return nil }
func (r *fakeProtocolRepo) SetTestMethods(_ context.Context, id string, ids []string) error {
	r.links[id] = ids
	return nil
}

// fakeStepRepo: los pasos en inUse tienen ejecuciones y la FK impide borrarlos.
type fakeStepRepo struct {
	items map[string]*entity.ProtocolStep
	inUse map[string]bool
}

func (r *fakeStepRepo) Create(_ context.Context, s *entity.ProtocolStep) error {
	r.items[s.ID] = s
	return nil
}
func (r *fakeStepRepo) GetByID(_ context.Context, id string) (*entity.ProtocolStep, error) {
	return r.items[id], nil
}
func (r *fakeStepRepo) Update(_ context.Context, s *entity.ProtocolStep) error {
	r.items[s.ID] = s
	return nil
}
func (r *fakeStepRepo) Delete(_ context.Context, id string) error {
	if r.inUse[id] {
		return domain.ErrConflict
	}
	delete(r.items, id)
	return nil
}
func (r *fakeStepRepo) ListByProtocol(_ context.Context, protocolID string) ([]*entity.ProtocolStep, error) {
	var out []*entity.ProtocolStep
	for _, s := range r.items {
		if s.ProtocolID == protocolID {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StepNumber < out[j].StepNumber })
	return out, nil
}

type fakeBatchRepo struct{ items map[string]*entity.Batch }

func (r *fakeBatchRepo) Create(_ context.Context, b *entity.Batch) error {
	for _, x := range r.items {
		if x.BatchNumber == b.BatchNumber {
			return domain.ErrDuplicate
		}
	}
	r.items[b.ID] = b
	return nil
}
func (r *fakeBatchRepo) GetByID(_ context.Context, id string) (*entity.Batch, error) {
	return r.items[id], nil
}
func (r *fakeBatchRepo) GetByNumber(_ context.Context, n string) (*entity.Batch, error) {
	for _, x := range r.items {
		if x.BatchNumber == n {
			return x, nil
		}
	}
	return nil, nil
}
func (r *fakeBatchRepo) GetForUpdate(ctx context.Context, id string) (*entity.Batch, error) {
	return r.GetByID(ctx, id)
}
func (r *fakeBatchRepo) Update(_ context.Context, b *entity.Batch) error {
	r.items[b.ID] = b
	return nil
}
func (r *fakeBatchRepo) UpdateStatus(_ context.Context, id, status string, now time.Time) error {
	r.items[id].Status = status
	return nil
}
func (r *fakeBatchRepo) List(context.Context, repository.ListFilter) ([]*entity.Batch, int, error) {
	return nil, 0, nil
}
func (r *fakeBatchRepo) LongestNumber(_ context.Context, protocolID string) (string, error) {
	longest := ""
	for _, x := range r.items {
		if x.ProtocolID == protocolID && len(x.BatchNumber) > len(longest) {
			longest = x.BatchNumber
		}
	}
	return longest, nil
}
func (r *fakeBatchRepo) Delete(context.Context, string) error { return nil }

type fakeExecRepo struct{ items []*entity.WorkflowExecution }

func (r *fakeExecRepo) EnsureForUpdate(context.Context, string, string, time.Time) (*entity.WorkflowExecution, error) {
	return nil, nil
}
func (r *fakeExecRepo) GetForUpdate(context.Context, string, string) (*entity.WorkflowExecution, error) {
	return nil, nil
}
func (r *fakeExecRepo) Update(context.Context, *entity.WorkflowExecution) error { return nil }
func (r *fakeExecRepo) ListByBatch(_ context.Context, batchID string) ([]*entity.WorkflowExecution, error) {
	var out []*entity.WorkflowExecution
	for _, e := range r.items {
		if e.BatchID == batchID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeOrderRepo struct {
	assigned map[string][]string
}

func (r *fakeOrderRepo) Create(context.Context, *entity.Order) error { return nil }
func (r *fakeOrderRepo) GetByID(context.Context, string) (*entity.Order, error) {
	return nil, nil
}
func (r *fakeOrderRepo) Update(context.Context, *entity.Order) error { return nil }
func (r *fakeOrderRepo) List(context.Context, repository.ListFilter) ([]*entity.Order, int, error) {
	return nil, 0, nil
}
func (r *fakeOrderRepo) Delete(context.Context, string) error { return nil }
func (r *fakeOrderRepo) Exists(context.Context, string, string, string) (bool, error) {
	return false, nil
}
func (r *fakeOrderRepo) AssignBatch(_ context.Context, batchID string, ids []string, _ time.Time) (int, error) {
	r.assigned[batchID] = append(r.assigned[batchID], ids...)
	return len(ids), nil
}
