// labctl tareas de operación sin pasar por la API: migraciones, importaciones masivas,
// alta del primer administrador y utilidades de códigos de barras.
//
// Uso:
//
//	labctl migrate
//	labctl import orders ordenes.csv
//	labctl import catalog catalogo.tsv
//	labctl user add --email jefe@lab.co --password ******** --role admin
//	labctl barcode encode start "Extracción ADN" L2024-001
//	labctl barcode decode STOP_EXTRACCION_ADN_L2024-001
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/LabOps-api/internal/infrastructure/postgres"
	"github.com/jhoicas/LabOps-api/pkg/config"
	"github.com/jhoicas/LabOps-api/pkg/logger"
)

var (
	verbose bool

	cfg *config.Config
	log *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:           "labctl",
	Short:         "Herramientas de operación de LabOps",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := "info"
		if verbose {
			level = "debug"
		}
		var err error
		if cfg, err = config.Load(); err != nil {
			return fmt.Errorf("cargar configuración: %w", err)
		}
		log = logger.New(logger.Config{Env: cfg.App.Env, Level: level, Output: cmd.ErrOrStderr()})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log en nivel debug")
	rootCmd.AddCommand(migrateCmd, importCmd, userCmd, barcodeCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica las migraciones pendientes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pool, err := openPool(cmd.Context())
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := postgres.Migrate(cmd.Context(), pool, log.Named("migrate").Zerolog()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "migraciones aplicadas")
		return nil
	},
}

func openPool(ctx context.Context) (*pgxpool.Pool, error) {
	pool, err := postgres.NewPool(ctx, cfg.DB, log.Named("postgres").Zerolog())
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	return pool, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
