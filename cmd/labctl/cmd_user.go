package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/LabOps-api/internal/application/auth"
	"github.com/jhoicas/LabOps-api/internal/application/dto"
	"github.com/jhoicas/LabOps-api/internal/domain/entity"
	"github.com/jhoicas/LabOps-api/internal/infrastructure/postgres"
)

var (
	userEmail    string
	userPassword string
	userName     string
	userRole     string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Gestión de usuarios",
}

// userAddCmd crea usuarios con privilegios de admin, sin token (acceso directo a la base).
var userAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Crea un usuario",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !entity.ValidRole(userRole) {
			return fmt.Errorf("rol inválido %q (admin, supervisor, technician)", userRole)
		}
		pool, err := openPool(cmd.Context())
		if err != nil {
			return err
		}
		defer pool.Close()

		uc := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		})
		u, err := uc.RegisterUser(cmd.Context(), entity.RoleAdmin, dto.RegisterRequest{
			Email:    userEmail,
			Password: userPassword,
			Name:     userName,
			Role:     userRole,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "usuario %s creado (%s, rol %s)\n", u.Email, u.ID, u.Role)
		return nil
	},
}

func init() {
	userAddCmd.Flags().StringVar(&userEmail, "email", "", "email del usuario")
	userAddCmd.Flags().StringVar(&userPassword, "password", "", "contraseña (mínimo 8 caracteres)")
	userAddCmd.Flags().StringVar(&userName, "name", "", "nombre visible")
	userAddCmd.Flags().StringVar(&userRole, "role", entity.RoleTechnician, "admin, supervisor o technician")
	_ = userAddCmd.MarkFlagRequired("email")
	_ = userAddCmd.MarkFlagRequired("password")
	userCmd.AddCommand(userAddCmd)
}
