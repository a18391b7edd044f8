// Package commands define la línea de comandos navidad (cobra).
package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jhoicas/retail-curves/internal/application/auth"
	"github.com/jhoicas/retail-curves/internal/application/catalog"
	"github.com/jhoicas/retail-curves/internal/application/navidad"
	"github.com/jhoicas/retail-curves/internal/infrastructure/sqlitebackup"
)

// Env servicios que usan los subcomandos.
type Env struct {
	Imports   *navidad.ImportService
	Catalog   *catalog.Service
	Auth      *auth.AuthUseCase
	Backup    sqlitebackup.Source
	ChunkSize int // por defecto cuando no se pasa --chunk-size
}

// Bootstrap arma el Env y devuelve la función que libera sus recursos.
type Bootstrap func(ctx context.Context) (*Env, func(), error)

// NewRootCommand crea el comando raíz con todos los subcomandos registrados.
func NewRootCommand(boot Bootstrap) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "navidad",
		Short: "Carga de planillas Navidad y maestros de sucursales y familias",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newImportCommand(boot),
		newLoadStoresCommand(boot),
		newLoadFamiliesCommand(boot),
		newCreateUserCommand(boot),
	)

	return rootCmd
}

// withEnv ejecuta fn con el Env armado y libera los recursos al terminar.
func withEnv(cmd *cobra.Command, boot Bootstrap, fn func(ctx context.Context, env *Env) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	env, cleanup, err := boot(ctx)
	if err != nil {
		return err
	}
	defer cleanup()
	return fn(ctx, env)
}
