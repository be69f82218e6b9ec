package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/LabOps-api/internal/application/dto"
	"github.com/jhoicas/LabOps-api/internal/application/importing"
	"github.com/jhoicas/LabOps-api/internal/infrastructure/postgres"
	"github.com/jhoicas/LabOps-api/internal/infrastructure/storage"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Importaciones masivas desde archivo",
}

var importOrdersCmd = &cobra.Command{
	Use:   "orders [archivo.csv]",
	Short: "Importa órdenes desde CSV (organization_code, location_code, sample_id, sample_type, test_method_code, collected_at, notes)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(cmd, args[0], func(im *importing.Importer, data []byte) (*dto.ImportResult, error) {
			return im.ImportOrders(cmd.Context(), data)
		})
	},
}

var importCatalogCmd = &cobra.Command{
	Use:   "catalog [archivo.tsv]",
	Short: "Importa pruebas y paneles desde TSV (METHOD/PANEL)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(cmd, args[0], func(im *importing.Importer, data []byte) (*dto.ImportResult, error) {
			return im.ImportCatalog(cmd.Context(), data)
		})
	},
}

func init() {
	importCmd.AddCommand(importOrdersCmd, importCatalogCmd)
}

func runImport(cmd *cobra.Command, path string, run func(*importing.Importer, []byte) (*dto.ImportResult, error)) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("leer %s: %w", path, err)
	}
	pool, err := openPool(cmd.Context())
	if err != nil {
		return err
	}
	defer pool.Close()

	archiver, err := storage.New(cmd.Context(), cfg.Storage)
	if err != nil {
		return err
	}
	im := importing.NewImporter(importing.Deps{
		TxRunner:   postgres.NewTxRunner(pool),
		OrgRepo:    postgres.NewOrganizationRepository(pool),
		LocRepo:    postgres.NewLocationRepository(pool),
		MethodRepo: postgres.NewTestMethodRepository(pool),
		OrderRepo:  postgres.NewOrderRepository(pool),
		Archiver:   archiver,
		Log:        log.Named("import").Zerolog(),
	})
	res, err := run(im, data)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
