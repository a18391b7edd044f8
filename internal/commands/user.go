package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/retail-curves/internal/application/dto"
)

func newCreateUserCommand(boot Bootstrap) *cobra.Command {
	var in dto.CreateUserRequest

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Crear un usuario de la API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, boot, func(ctx context.Context, env *Env) error {
				user, err := env.Auth.CreateUser(ctx, in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Usuario %s creado (%s, rol %s)\n", user.Email, user.ID, user.Role)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&in.Email, "email", "", "email (requerido)")
	cmd.Flags().StringVar(&in.Password, "password", "", "password, mínimo 8 caracteres (requerido)")
	cmd.Flags().StringVar(&in.Name, "name", "", "nombre visible")
	cmd.Flags().StringVar(&in.Role, "role", "analyst", "admin | analyst")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
