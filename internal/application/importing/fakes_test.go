package importing

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/LabOps-api/internal/domain/entity"
	"github.com/jhoicas/LabOps-api/internal/domain/repository"
)

type memDB struct {
	orgs    []*entity.Organization
	locs    []*entity.Location
	methods map[string]*entity.TestMethod // por código
	panels  map[string]*entity.TestPanel  // por código
	orders  []*entity.Order
	failTx  bool

	memberWrites int // llamadas a SetMembers
}

func newMemDB() *memDB {
	return &memDB{
		orgs: []*entity.Organization{{ID: "org-1", Code: "ACME"}, {ID: "org-2", Code: "SALUD"}},
		locs: []*entity.Location{{ID: "loc-1", OrganizationID: "org-1", Code: "NORTE"}},
		methods: map[string]*entity.TestMethod{
			"CBC": {ID: "m-cbc", Code: "CBC"},
		},
		panels: map[string]*entity.TestPanel{},
	}
}

var errTx = errors.New("tx falló")

type memTx struct{ db *memDB }

func (t memTx) RunImport(_ context.Context, fn func(repository.OrderRepository, repository.TestMethodRepository, repository.TestPanelRepository) error) error {
	if t.db.failTx {
		return errTx
	}
	return fn(memOrders{t.db}, memMethods{t.db}, memPanels{t.db})
}

type memOrgs struct{ db *memDB }

func (r memOrgs) Create(context.Context, *entity.Organization) error { return nil }
func (r memOrgs) GetByID(context.Context, string) (*entity.Organization, error) {
	return nil, nil
}
func (r memOrgs) GetByCode(_ context.Context, code string) (*entity.Organization, error) {
	for _, o := range r.db.orgs {
		if o.Code == code {
			return o, nil
		}
	}
	return nil, nil
}
func (r memOrgs) Update(context.Context, *entity.Organization) error { return nil }
func (r memOrgs) List(context.Context, repository.ListFilter) ([]*entity.Organization, int, error) {
	return nil, 0, nil
}
func (r memOrgs) Delete(context.Context, string) error { return nil }

type memLocs struct{ db *memDB }

func (r memLocs) Create(context.Context, *entity.Location) error { return nil }
func (r memLocs) GetByID(context.Context, string) (*entity.Location, error) {
	return nil, nil
}
func (r memLocs) GetByCode(_ context.Context, orgID, code string) (*entity.Location, error) {
	for _, l := range r.db.locs {
		if l.OrganizationID == orgID && l.Code == code {
			return l, nil
		}
	}
	return nil, nil
}
func (r memLocs) Update(context.Context, *entity.Location) error { return nil }
func (r memLocs) List(context.Context, repository.ListFilter) ([]*entity.Location, int, error) {
	return nil, 0, nil
}
func (r memLocs) Delete(context.Context, string) error { return nil }

type memMethods struct{ db *memDB }

func (r memMethods) Create(context.Context, *entity.TestMethod) error { return nil }
func (r memMethods) GetByID(context.Context, string) (*entity.TestMethod, error) {
	return nil, nil
}
func (r memMethods) GetByCode(_ context.Context, code string) (*entity.TestMethod, error) {
	return r.db.methods[code], nil
}
func (r memMethods) Update(context.Context, *entity.TestMethod) error { return nil }
func (r memMethods) Upsert(_ context.Context, m *entity.TestMethod) error {
	if prev, ok := r.db.methods[m.Code]; ok {
		m.ID = prev.ID
	}
	r.db.methods[m.Code] = m
	return nil
}
func (r memMethods) List(context.Context, repository.ListFilter) ([]*entity.TestMethod, int, error) {
	return nil, 0, nil
}
func (r memMethods) Delete(context.Context, string) error { return nil }

type memPanels struct{ db *memDB }

func (r memPanels) Create(context.Context, *entity.TestPanel) error { return nil }
func (r memPanels) GetByID(context.Context, string) (*entity.TestPanel, error) {
	return nil, nil
}
func (r memPanels) GetByCode(_ context.Context, code string) (*entity.TestPanel, error) {
	return r.db.panels[code], nil
}
func (r memPanels) Update(context.Context, *entity.TestPanel) error { return nil }
func (r memPanels) Upsert(_ context.Context, p *entity.TestPanel) error {
	if prev, ok := r.db.panels[p.Code]; ok {
		p.ID = prev.ID
	}
	r.db.panels[p.Code] = p
	return nil
}
func (r memPanels) SetMembers(_ context.Context, panelID string, ids []string) error {
	r.db.memberWrites++
	for _, p := range r.db.panels {
		if p.ID == panelID {
			p.TestMethodIDs = ids
		}
	}
	return nil
}
func (r memPanels) List(context.Context, repository.ListFilter) ([]*entity.TestPanel, int, error) {
	return nil, 0, nil
}
func (r memPanels) Delete(context.Context, string) error { return nil }

type memOrders struct{ db *memDB }

func (r memOrders) Create(_ context.Context, o *entity.Order) error {
	r.db.orders = append(r.db.orders, o)
	return nil
}
func (r memOrders) GetByID(context.Context, string) (*entity.Order, error) { return nil, nil }
func (r memOrders) Update(context.Context, *entity.Order) error          { return nil }
func (r memOrders) List(context.Context, repository.ListFilter) ([]*entity.Order, int, error) {
	return nil, 0, nil
}
func (r memOrders) Delete(context.Context, string) error { return nil }
func (r memOrders) Exists(_ context.Context, orgID, sampleID, methodID string) (bool, error) {
	for _, o := range r.db.orders {
		if o.OrganizationID == orgID && o.SampleID == sampleID && o.TestMethodID == methodID {
			return true, nil
		}
	}
	return false, nil
}
func (r memOrders) AssignBatch(context.Context, string, []string, time.Time) (int, error) {
	return 0, nil
}

type memArchive struct {
	keys []string
	data map[string][]byte
}

func (a *memArchive) Archive(_ context.Context, key, _ string, data []byte) (string, error) {
	a.keys = append(a.keys, key)
	a.data[key] = data
	return "mem://" + key, nil
}

type countRecorder struct{ imported, skipped map[string]int }

func (c *countRecorder) ObserveImport(kind string, imported, skipped int) {
	c.imported[kind] += imported
	c.skipped[kind] += skipped
}
