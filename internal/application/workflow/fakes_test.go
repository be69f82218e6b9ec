package workflow

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/LabOps-api/internal/application/dto"
	"github.com/jhoicas/LabOps-api/internal/domain/entity"
	"github.com/jhoicas/LabOps-api/internal/domain/repository"
)

// memStore simula las tablas batches, protocol_steps y workflow_executions.
// memTx serializa las transacciones con un mutex (equivalente al lock de fila) y hace rollback restaurando una copia.
type memStore struct {
	mu      sync.Mutex
	batches map[string]entity.Batch
	steps   map[string]entity.ProtocolStep
	execs   map[string]entity.WorkflowExecution // clave batchID|stepID
}

func newMemStore() *memStore {
	return &memStore{
		batches: map[string]entity.Batch{},
		steps:   map[string]entity.ProtocolStep{},
		execs:   map[string]entity.WorkflowExecution{},
	}
}

func execKey(batchID, stepID string) string { return batchID + "|" + stepID }

type memTx struct{ s *memStore }

func (t memTx) RunWorkflow(ctx context.Context, fn func(repository.WorkflowExecutionRepository, repository.BatchRepository) error) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	batches := make(map[string]entity.Batch, len(t.s.batches))
	for k, v := range t.s.batches {
		batches[k] = v
	}
	execs := make(map[string]entity.WorkflowExecution, len(t.s.execs))
	for k, v := range t.s.execs {
		execs[k] = v
	}
	if err := fn(memExecRepo{t.s}, memBatchRepo{t.s}); err != nil {
		t.s.batches, t.s.execs = batches, execs
		return err
	}
	return nil
}

// memExecRepo solo se usa dentro de memTx (el mutex ya está tomado).
type memExecRepo struct{ s *memStore }

func (r memExecRepo) EnsureForUpdate(_ context.Context, batchID, stepID string, now time.Time) (*entity.WorkflowExecution, error) {
	k := execKey(batchID, stepID)
	if _, ok := r.s.execs[k]; !ok {
		r.s.execs[k] = entity.WorkflowExecution{
			ID: uuid.New().String(), BatchID: batchID, ProtocolStepID: stepID,
			Status: entity.ExecutionPending, CreatedAt: now, UpdatedAt: now,
		}
	}
	e := r.s.execs[k]
	return &e, nil
}

func (r memExecRepo) GetForUpdate(_ context.Context, batchID, stepID string) (*entity.WorkflowExecution, error) {
	e, ok := r.s.execs[execKey(batchID, stepID)]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r memExecRepo) Update(_ context.Context, e *entity.WorkflowExecution) error {
	r.s.execs[execKey(e.BatchID, e.ProtocolStepID)] = *e
	return nil
}

func (r memExecRepo) ListByBatch(_ context.Context, batchID string) ([]*entity.WorkflowExecution, error) {
	var out []*entity.WorkflowExecution
	for _, e := range r.s.execs {
		if e.BatchID == batchID {
			e := e
			out = append(out, &e)
		}
	}
	return out, nil
}

// memBatchRepo: dentro de la tx no toma el mutex; fuera de ella (GetByNumber) sí.
type memBatchRepo struct{ s *memStore }

func (r memBatchRepo) Create(context.Context, *entity.Batch) error { return nil }
func (r memBatchRepo) GetByID(_ context.Context, id string) (*entity.Batch, error) {
	return r.GetForUpdate(context.Background(), id)
}

func (r memBatchRepo) GetByNumber(_ context.Context, n string) (*entity.Batch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.batches {
		if b.BatchNumber == n {
			b := b
			return &b, nil
		}
	}
	return nil, nil
}

func (r memBatchRepo) GetForUpdate(_ context.Context, id string) (*entity.Batch, error) {
	b, ok := r.s.batches[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r memBatchRepo) Update(context.Context, *entity.Batch) error { return nil }

func (r memBatchRepo) UpdateStatus(_ context.Context, id, status string, now time.Time) error {
	b := r.s.batches[id]
	b.Status = status
	b.UpdatedAt = now
	r.s.batches[id] = b
	return nil
}

func (r memBatchRepo) List(context.Context, repository.ListFilter) ([]*entity.Batch, int, error) {
	return nil, 0, nil
}
func (r memBatchRepo) LongestNumber(context.Context, string) (string, error) { return "", nil }
func (r memBatchRepo) Delete(context.Context, string) error { return nil }

type memStepRepo struct{ s *memStore }

func (r memStepRepo) Create(context.Context, *entity.ProtocolStep) error { return nil }
func (r memStepRepo) GetByID(_ context.Context, id string) (*entity.ProtocolStep, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st, ok := r.s.steps[id]
	if !ok {
		return nil, nil
	}
	return &st, nil
}
func (r memStepRepo) Update(context.Context, *entity.ProtocolStep) error { return nil }
func (r memStepRepo) Delete(context.Context, string) error               { return nil }
func (r memStepRepo) ListByProtocol(_ context.Context, protocolID string) ([]*entity.ProtocolStep, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.ProtocolStep
	for _, st := range r.s.steps {
		if st.ProtocolID == protocolID {
			st := st
			out = append(out, &st)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StepNumber < out[j].StepNumber })
	return out, nil
}

type fakeBoard struct{ calls int }

func (f *fakeBoard) Board(_ context.Context, batchID string, _ dto.PageRequest) (*dto.BoardResponse, error) {
	f.calls++
	return &dto.BoardResponse{Batch: dto.BatchResponse{ID: batchID}}, nil
}

type countingRecorder struct {
	mu          sync.Mutex
	transitions map[string]int
	scans       map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{transitions: map[string]int{}, scans: map[string]int{}}
}

func (c *countingRecorder) ObserveTransition(action, result string, _ time.Duration) {
	c.mu.Lock()
	c.transitions[action+":"+result]++
	c.mu.Unlock()
}

func (c *countingRecorder) ObserveScan(action, result string) {
	c.mu.Lock()
	c.scans[action+":"+result]++
	c.mu.Unlock()
}

// fixture: protocolo p1 con dos pasos (Extracción, PCR Setup) y lote b1 número 1042.
func fixture() *memStore {
	s := newMemStore()
	s.batches["b1"] = entity.Batch{ID: "b1", BatchNumber: "1042", ProtocolID: "p1", Status: entity.BatchStatusOpen}
	s.batches["b2"] = entity.Batch{ID: "b2", BatchNumber: "2001", ProtocolID: "p2", Status: entity.BatchStatusOpen}
	s.steps["s1"] = entity.ProtocolStep{ID: "s1", ProtocolID: "p1", StepNumber: 1, Name: "Extracción"}
	s.steps["s2"] = entity.ProtocolStep{ID: "s2", ProtocolID: "p1", StepNumber: 2, Name: "PCR Setup"}
	return s
}
