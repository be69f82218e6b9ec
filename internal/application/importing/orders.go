package importing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/LabOps-api/internal/application/dto"
	"github.com/jhoicas/LabOps-api/internal/domain/entity"
	"github.com/jhoicas/LabOps-api/internal/domain/repository"
)

// Columnas del CSV de órdenes.
const (
	colOrgCode = iota
	colLocationCode
	colSampleID
	colSampleType
	colTestMethodCode
	colCollectedAt
	colNotes
	orderColumns
)

// KindOrders y KindCatalog identifican el tipo de importación (métricas y ruta de archivo).
const (
	KindOrders  = "orders"
	KindCatalog = "catalog"
)

// ImportOrders importa órdenes desde CSV:
// organization_code, location_code, sample_id, sample_type, test_method_code, collected_at, notes.
func (im *Importer) ImportOrders(ctx context.Context, data []byte) (*dto.ImportResult, error) {
	archivedAt, err := im.archive(ctx, KindOrders, "csv", "text/csv", data)
	if err != nil {
		return nil, err
	}

	w := newWarnings()
	rows, err := readRows(data, ',', func(line int, msg string) { w.add(line, "formato inválido: %s", msg) })
	if err != nil {
		return nil, err
	}

	lk := newLookups(im)
	seen := map[string]bool{}
	var orders []*entity.Order
	now := im.now()
	for _, r := range rows {
		o, err := im.parseOrder(ctx, lk, w, r, now)
		if err != nil {
			return nil, err
		}
		if o == nil {
			continue
		}
		key := o.OrganizationID + "|" + o.SampleID + "|" + o.TestMethodID
		if seen[key] {
			w.add(r.line, "orden duplicada en el archivo (%s)", o.SampleID)
			continue
		}
		seen[key] = true
		orders = append(orders, o)
	}

	err = im.txRunner.RunImport(ctx, func(orderRepo repository.OrderRepository, _ repository.TestMethodRepository, _ repository.TestPanelRepository) error {
		for _, o := range orders {
			if err := orderRepo.Create(ctx, o); err != nil {
				return fmt.Errorf("crear orden %s: %w", o.SampleID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return im.finish(KindOrders, archivedAt, len(orders), w), nil
}

// parseOrder valida una fila; devuelve nil (con advertencia registrada) si se omite.
func (im *Importer) parseOrder(ctx context.Context, lk *lookups, w *warnings, r row, now time.Time) (*entity.Order, error) {
	f := r.fields
	if len(f) != orderColumns {
		w.add(r.line, "se esperaban %d columnas, hay %d", orderColumns, len(f))
		return nil, nil
	}
	if f[colSampleID] == "" {
		w.add(r.line, "sample_id vacío")
		return nil, nil
	}
	org, err := lk.organization(ctx, f[colOrgCode])
	if err != nil {
		return nil, err
	}
	if org == nil {
		w.add(r.line, "organización desconocida %q", f[colOrgCode])
		return nil, nil
	}
	var locationID *string
	if code := f[colLocationCode]; code != "" {
		loc, err := lk.location(ctx, org.ID, code)
		if err != nil {
			return nil, err
		}
		if loc == nil {
			w.add(r.line, "sede desconocida %q para %s", code, org.Code)
			return nil, nil
		}
		locationID = &loc.ID
	}
	method, err := lk.method(ctx, f[colTestMethodCode])
	if err != nil {
		return nil, err
	}
	if method == nil {
		w.add(r.line, "prueba desconocida %q", f[colTestMethodCode])
		return nil, nil
	}
	var collectedAt *time.Time
	if s := f[colCollectedAt]; s != "" {
		ts, ok := parseDate(s)
		if !ok {
			w.add(r.line, "fecha inválida %q", s)
			return nil, nil
		}
		collectedAt = &ts
	}
	exists, err := im.orderRepo.Exists(ctx, org.ID, f[colSampleID], method.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		w.add(r.line, "la orden %s/%s ya existe", f[colSampleID], method.Code)
		return nil, nil
	}
	return &entity.Order{
		ID:             uuid.New().String(),
		OrganizationID: org.ID,
		LocationID:     locationID,
		SampleID:       f[colSampleID],
		SampleType:     f[colSampleType],
		TestMethodID:   method.ID,
		Status:         entity.OrderStatusReceived,
		Priority:       entity.PriorityRoutine,
		CollectedAt:    collectedAt,
		ReceivedAt:     now,
		Notes:          f[colNotes],
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

func parseDate(s string) (time.Time, bool) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// lookups cachea las búsquedas por código durante una importación.
type lookups struct {
	im      *Importer
	orgs    map[string]*entity.Organization
	locs    map[string]*entity.Location
	methods map[string]*entity.TestMethod
}

func newLookups(im *Importer) *lookups {
	return &lookups{
		im:      im,
		orgs:    map[string]*entity.Organization{},
		locs:    map[string]*entity.Location{},
		methods: map[string]*entity.TestMethod{},
	}
}

func (lk *lookups) organization(ctx context.Context, code string) (*entity.Organization, error) {
	code = strings.ToUpper(code)
	if o, ok := lk.orgs[code]; ok {
		return o, nil
	}
	o, err := lk.im.orgRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	lk.orgs[code] = o
	return o, nil
}

func (lk *lookups) location(ctx context.Context, orgID, code string) (*entity.Location, error) {
	code = strings.ToUpper(code)
	key := orgID + "|" + code
	if l, ok := lk.locs[key]; ok {
		return l, nil
	}
	l, err := lk.im.locRepo.GetByCode(ctx, orgID, code)
	if err != nil {
		return nil, err
	}
	lk.locs[key] = l
	return l, nil
}

func (lk *lookups) method(ctx context.Context, code string) (*entity.TestMethod, error) {
	code = strings.ToUpper(code)
	if m, ok := lk.methods[code]; ok {
		return m, nil
	}
	m, err := lk.im.methodRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	lk.methods[code] = m
	return m, nil
}
