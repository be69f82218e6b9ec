package importing

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/LabOps-api/internal/application/dto"
	"github.com/jhoicas/LabOps-api/internal/domain/entity"
	"github.com/jhoicas/LabOps-api/internal/domain/repository"
)

// Columnas del TSV de catálogo.
const (
	colRecordType = iota
	colCode
	colName
	colDescription
	colSpecimenType
	colTurnaroundDays
	colPrice
	colMembers
	catalogColumns
)

// Tipos de registro del TSV.
const (
	RecordMethod = "METHOD"
	RecordPanel  = "PANEL"
)

type panelRow struct {
	line    int
	panel   *entity.TestPanel
	members []string // códigos
}

// ImportCatalog importa pruebas y paneles desde TSV:
// record_type, code, name, description, specimen_type, turnaround_days, price, members.
// Las filas METHOD se aplican antes que las PANEL para que un panel pueda referenciar pruebas del mismo archivo.
func (im *Importer) ImportCatalog(ctx context.Context, data []byte) (*dto.ImportResult, error) {
	archivedAt, err := im.archive(ctx, KindCatalog, "tsv", "text/tab-separated-values", data)
	if err != nil {
		return nil, err
	}
	w := newWarnings()
	rows, err := readRows(data, '\t', func(line int, msg string) { w.add(line, "formato inválido: %s", msg) })
	if err != nil {
		return nil, err
	}

	now := im.now()
	var methods []*entity.TestMethod
	var panels []panelRow
	seen := map[string]bool{}
	for _, r := range rows {
		f := r.fields
		if len(f) != catalogColumns {
			w.add(r.line, "se esperaban %d columnas, hay %d", catalogColumns, len(f))
			continue
		}
		kind := strings.ToUpper(f[colRecordType])
		code := strings.ToUpper(f[colCode])
		if kind != RecordMethod && kind != RecordPanel {
			w.add(r.line, "tipo de registro desconocido %q", f[colRecordType])
			continue
		}
		if code == "" || f[colName] == "" {
			w.add(r.line, "code y name son obligatorios")
			continue
		}
		if seen[kind+"|"+code] {
			w.add(r.line, "%s %s repetido en el archivo", kind, code)
			continue
		}

		if kind == RecordMethod {
			m, msg := parseMethod(f, code, now)
			if msg != "" {
				w.add(r.line, "%s", msg)
				continue
			}
			seen[kind+"|"+code] = true
			methods = append(methods, m)
			continue
		}
		members := splitMembers(f[colMembers])
		if len(members) == 0 {
			w.add(r.line, "el panel %s no tiene miembros", code)
			continue
		}
		seen[kind+"|"+code] = true
		panels = append(panels, panelRow{
			line: r.line,
			panel: &entity.TestPanel{
				ID:          uuid.New().String(),
				Code:        code,
				Name:        f[colName],
				Description: f[colDescription],
				IsActive:    true,
				CreatedAt:   now,
				UpdatedAt:   now,
			},
			members: members,
		})
	}

	imported := 0
	err = im.txRunner.RunImport(ctx, func(_ repository.OrderRepository, methodRepo repository.TestMethodRepository, panelRepo repository.TestPanelRepository) error {
		imported = 0
		ids := make(map[string]string, len(methods))
		for _, m := range methods {
			if err := methodRepo.Upsert(ctx, m); err != nil {
				return fmt.Errorf("upsert prueba %s: %w", m.Code, err)
			}
			ids[m.Code] = m.ID
			imported++
		}
		for _, p := range panels {
			memberIDs, missing, err := resolveMembers(ctx, methodRepo, ids, p.members)
			if err != nil {
				return err
			}
			if missing != "" {
				w.add(p.line, "prueba desconocida %q en el panel %s", missing, p.panel.Code)
				continue
			}
			// Upsert reemplaza los miembros en la misma operación.
			p.panel.TestMethodIDs = memberIDs
			if err := panelRepo.Upsert(ctx, p.panel); err != nil {
				return fmt.Errorf("upsert panel %s: %w", p.panel.Code, err)
			}
			imported++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return im.finish(KindCatalog, archivedAt, imported, w), nil
}

// parseMethod arma la prueba de una fila METHOD; msg no vacío indica fila inválida.
func parseMethod(f []string, code string, now time.Time) (*entity.TestMethod, string) {
	days := 0
	if s := f[colTurnaroundDays]; s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return nil, fmt.Sprintf("turnaround_days inválido %q", s)
		}
		days = n
	}
	price := decimal.Zero
	if s := f[colPrice]; s != "" {
		p, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
		if err != nil || p.IsNegative() {
			return nil, fmt.Sprintf("price inválido %q", s)
		}
		price = p
	}
	return &entity.TestMethod{
		ID:             uuid.New().String(),
		Code:           code,
		Name:           f[colName],
		Description:    f[colDescription],
		SpecimenType:   f[colSpecimenType],
		TurnaroundDays: days,
		Price:          price,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, ""
}

func splitMembers(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.ToUpper(strings.TrimSpace(part)); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// resolveMembers traduce códigos a IDs: primero los del archivo, luego los ya guardados.
// missing es el primer código que no existe.
func resolveMembers(ctx context.Context, repo repository.TestMethodRepository, fromFile map[string]string, codes []string) ([]string, string, error) {
	ids := make([]string, 0, len(codes))
	seen := map[string]bool{}
	for _, code := range codes {
		id, ok := fromFile[code]
		if !ok {
			m, err := repo.GetByCode(ctx, code)
			if err != nil {
				return nil, "", err
			}
			if m == nil {
				return nil, code, nil
			}
			id = m.ID
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, "", nil
}
