package importing

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/LabOps-api/internal/application/dto"
	"github.com/jhoicas/LabOps-api/internal/domain/repository"
)

// Importer casos de uso de importación masiva.
// Los repositorios sin tx se usan solo para búsquedas previas; la escritura va por TxRunner.
type Importer struct {
	txRunner   TxRunner
	orgRepo    repository.OrganizationRepository
	locRepo    repository.LocationRepository
	methodRepo repository.TestMethodRepository
	orderRepo  repository.OrderRepository
	archiver   Archiver
	recorder   Recorder
	log        zerolog.Logger
	now        func() time.Time
}

// Deps dependencias del importador. Archiver y Recorder son opcionales.
type Deps struct {
	TxRunner   TxRunner
	OrgRepo    repository.OrganizationRepository
	LocRepo    repository.LocationRepository
	MethodRepo repository.TestMethodRepository
	OrderRepo  repository.OrderRepository
	Archiver   Archiver
	Recorder   Recorder
	Log        zerolog.Logger
}

// NewImporter construye el importador.
func NewImporter(d Deps) *Importer {
	rec := d.Recorder
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Importer{
		txRunner:   d.TxRunner,
		orgRepo:    d.OrgRepo,
		locRepo:    d.LocRepo,
		methodRepo: d.MethodRepo,
		orderRepo:  d.OrderRepo,
		archiver:   d.Archiver,
		recorder:   rec,
		log:        d.Log,
		now:        time.Now,
	}
}

// archive guarda el original en imports/<kind>/<YYYYMMDD>/<uuid>.<ext>. Sin archiver no hace nada.
func (im *Importer) archive(ctx context.Context, kind, ext, contentType string, data []byte) (string, error) {
	if im.archiver == nil {
		return "", nil
	}
	key := fmt.Sprintf("imports/%s/%s/%s.%s", kind, im.now().UTC().Format("20060102"), uuid.New().String(), ext)
	loc, err := im.archiver.Archive(ctx, key, contentType, data)
	if err != nil {
		return "", fmt.Errorf("archivar importación: %w", err)
	}
	return loc, nil
}

func (im *Importer) finish(kind, archivedAt string, imported int, w *warnings) *dto.ImportResult {
	sort.SliceStable(w.list, func(i, j int) bool { return w.list[i].Line < w.list[j].Line })
	res := &dto.ImportResult{
		Imported:  imported,
		Skipped:   len(w.skipped),
		Warnings:  w.list,
		ArchiveAt: archivedAt,
	}
	im.recorder.ObserveImport(kind, res.Imported, res.Skipped)
	im.log.Info().
		Str("kind", kind).
		Int("imported", res.Imported).
		Int("skipped", res.Skipped).
		Str("archive", archivedAt).
		Msg("importación terminada")
	return res
}
