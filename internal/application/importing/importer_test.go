package importing

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/LabOps-api/internal/application/dto"
	"github.com/jhoicas/LabOps-api/internal/domain/entity"
)

func newImporter(db *memDB, archive Archiver, rec Recorder) *Importer {
	im := NewImporter(Deps{
		TxRunner:   memTx{db},
		OrgRepo:    memOrgs{db},
		LocRepo:    memLocs{db},
		MethodRepo: memMethods{db},
		OrderRepo:  memOrders{db},
		Archiver:   archive,
		Recorder:   rec,
		Log:        zerolog.Nop(),
	})
	im.now = func() time.Time { return time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC) }
	return im
}

const ordersHeader = "organization_code,location_code,sample_id,sample_type,test_method_code,collected_at,notes\n"

func TestImportOrders_FilaValidaCreaUnaOrden(t *testing.T) {
	db := newMemDB()
	im := newImporter(db, nil, nil)

	res, err := im.ImportOrders(context.Background(), []byte(ordersHeader+"acme,norte,S-001,sangre,cbc,2024-06-01,urgente\n"))
	require.NoError(t, err)

	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, 0, res.Skipped)
	assert.Empty(t, res.Warnings)
	require.Len(t, db.orders, 1)
	o := db.orders[0]
	assert.Equal(t, "org-1", o.OrganizationID)
	assert.Equal(t, "loc-1", *o.LocationID)
	assert.Equal(t, "m-cbc", o.TestMethodID)
	assert.Equal(t, "S-001", o.SampleID)
	assert.Equal(t, entity.OrderStatusReceived, o.Status)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), *o.CollectedAt)
	assert.Equal(t, "urgente", o.Notes)
}

func TestImportOrders_FilasInvalidasSonAdvertencias(t *testing.T) {
	db := newMemDB()
	db.orders = append(db.orders, &entity.Order{OrganizationID: "org-2", SampleID: "S-OLD", TestMethodID: "m-cbc"})
	rec := &countRecorder{imported: map[string]int{}, skipped: map[string]int{}}
	im := newImporter(db, nil, rec)

	csv := ordersHeader +
		"ACME,,S-1,sangre,CBC,,\n" + // 2 ok
		"ACME,S-2,CBC\n" + // 3 columnas
		"NOPE,,S-3,sangre,CBC,,\n" + // 4 organización
		"ACME,SUR,S-4,sangre,CBC,,\n" + // 5 sede
		"ACME,,S-5,sangre,XYZ,,\n" + // 6 prueba
		"ACME,,,sangre,CBC,,\n" + // 7 sample vacío
		"ACME,,S-6,sangre,CBC,06/01/2024,\n" + // 8 fecha
		"ACME,,S-1,sangre,CBC,,\n" + // 9 duplicada en archivo
		"SALUD,,S-OLD,orina,CBC,,\n" + // 10 ya existe
		"SALUD,,S-7,orina,CBC,2024-06-01T08:30:00Z,\n" // 11 ok

	res, err := im.ImportOrders(context.Background(), []byte(csv))
	require.NoError(t, err)

	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, 8, res.Skipped)
	lines := make([]int, 0, len(res.Warnings))
	for _, w := range res.Warnings {
		lines = append(lines, w.Line)
		assert.NotEmpty(t, w.Message)
	}
	assert.Equal(t, []int{3, 4, 5, 6, 7, 8, 9, 10}, lines)
	assert.Len(t, db.orders, 3)
	assert.Equal(t, 2, rec.imported[KindOrders])
	assert.Equal(t, 8, rec.skipped[KindOrders])
}

func TestImportOrders_Windows1252(t *testing.T) {
	db := newMemDB()
	im := newImporter(db, nil, nil)
	raw, err := charmap.Windows1252.NewEncoder().String(ordersHeader + "ACME,,S-9,sangre,CBC,,muestra pequeña\n")
	require.NoError(t, err)

	res, err := im.ImportOrders(context.Background(), []byte(raw))
	require.NoError(t, err)
	require.Equal(t, 1, res.Imported)
	assert.Equal(t, "muestra pequeña", db.orders[0].Notes)
}

func TestImportOrders_ArchivaOriginal(t *testing.T) {
	db := newMemDB()
	arch := &memArchive{data: map[string][]byte{}}
	im := newImporter(db, arch, nil)
	body := []byte(ordersHeader + "ACME,,S-1,sangre,CBC,,\n")

	res, err := im.ImportOrders(context.Background(), body)
	require.NoError(t, err)

	require.Len(t, arch.keys, 1)
	assert.Regexp(t, regexp.MustCompile(`^imports/orders/20240603/[0-9a-f-]{36}\.csv$`), arch.keys[0])
	assert.Equal(t, body, arch.data[arch.keys[0]])
	assert.Equal(t, "mem://"+arch.keys[0], res.ArchiveAt)
}

func TestImportOrders_ErrorDeTxAborta(t *testing.T) {
	db := newMemDB()
	db.failTx = true
	im := newImporter(db, nil, nil)

	_, err := im.ImportOrders(context.Background(), []byte(ordersHeader+"ACME,,S-1,sangre,CBC,,\n"))
	assert.ErrorIs(t, err, errTx)
	assert.Empty(t, db.orders)
}

const catalogHeader = "record_type\tcode\tname\tdescription\tspecimen_type\tturnaround_days\tprice\tmembers\n"

func TestImportCatalog_PanelReferenciaPruebaPosterior(t *testing.T) {
	db := newMemDB()
	im := newImporter(db, nil, nil)

	tsv := catalogHeader +
		"PANEL\tLIPID\tPerfil lipídico\t\t\t\t\tchol, hdl ,CBC\n" +
		"METHOD\tCHOL\tColesterol total\t\tsuero\t1\t12.50\t\n" +
		"method\thdl\tHDL\t\tsuero\t2\t9,75\t\n"

	res, err := im.ImportCatalog(context.Background(), []byte(tsv))
	require.NoError(t, err)
	assert.Equal(t, 3, res.Imported)
	assert.Empty(t, res.Warnings)

	chol := db.methods["CHOL"]
	require.NotNil(t, chol)
	assert.Equal(t, "12.5", chol.Price.String())
	assert.Equal(t, 1, chol.TurnaroundDays)
	assert.Equal(t, "9.75", db.methods["HDL"].Price.String())

	panel := db.panels["LIPID"]
	require.NotNil(t, panel)
	assert.Equal(t, []string{chol.ID, db.methods["HDL"].ID, "m-cbc"}, panel.TestMethodIDs)
}

func TestImportCatalog_Advertencias(t *testing.T) {
	db := newMemDB()
	im := newImporter(db, nil, nil)

	tsv := catalogHeader +
		"METHOD\tGLU\tGlucosa\t\tsuero\t1\t5\t\n" + // 2 ok
		"KIT\tX\tX\t\t\t\t\t\n" + // 3 tipo
		"METHOD\t\tSin código\t\t\t\t\t\n" + // 4 code vacío
		"METHOD\tBAD\tPrecio\t\t\t1\tabc\t\n" + // 5 precio
		"METHOD\tBAD2\tDías\t\t\t-1\t1\t\n" + // 6 días
		"PANEL\tP1\tPanel\t\t\t\t\tGLU,NOPE\n" + // 7 miembro desconocido
		"PANEL\tP2\tVacío\t\t\t\t\t\n" + // 8 sin miembros
		"METHOD\tGLU\tOtra\t\t\t\t\t\n" + // 9 repetida
		"METHOD\tSHORT\n" // 10 columnas

	res, err := im.ImportCatalog(context.Background(), []byte(tsv))
	require.NoError(t, err)

	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, 8, res.Skipped)
	var lines []int
	for _, w := range res.Warnings {
		lines = append(lines, w.Line)
	}
	assert.Equal(t, []int{3, 4, 5, 6, 7, 8, 9, 10}, lines)
	assert.Empty(t, db.panels)
}

func TestImportCatalog_UpsertConservaID(t *testing.T) {
	db := newMemDB()
	im := newImporter(db, nil, nil)

	res, err := im.ImportCatalog(context.Background(), []byte(catalogHeader+"METHOD\tCBC\tHemograma\t\tsangre\t1\t20\t\n"))
	require.NoError(t, err)
	assert.Equal(t, dto.ImportResult{Imported: 1, Skipped: 0, Warnings: []dto.ImportWarning{}}, *res)
	assert.Equal(t, "m-cbc", db.methods["CBC"].ID)
	assert.Equal(t, "Hemograma", db.methods["CBC"].Name)
}

func TestImportCatalog_PanelReimportadoReemplazaMiembros(t *testing.T) {
	db := newMemDB()
	im := newImporter(db, nil, nil)
	ctx := context.Background()

	_, err := im.ImportCatalog(ctx, []byte(catalogHeader+
		"METHOD\tGLU\tGlucosa\t\tsuero\t1\t5\t\n"+
		"PANEL\tBASIC\tBásico\t\t\t\t\tCBC,GLU\n"))
	require.NoError(t, err)
	first := db.panels["BASIC"]
	require.NotNil(t, first)
	assert.Equal(t, []string{"m-cbc", db.methods["GLU"].ID}, first.TestMethodIDs)

	res, err := im.ImportCatalog(ctx, []byte(catalogHeader+"PANEL\tBASIC\tBásico v2\t\t\t\t\tCBC\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)

	again := db.panels["BASIC"]
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, "Básico v2", again.Name)
	assert.Equal(t, []string{"m-cbc"}, again.TestMethodIDs)
	assert.Zero(t, db.memberWrites, "los miembros viajan en el upsert")
}
