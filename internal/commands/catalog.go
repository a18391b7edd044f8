package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/retail-curves/internal/application/catalog"
)

func newLoadStoresCommand(boot Bootstrap) *cobra.Command {
	var pad int

	cmd := &cobra.Command{
		Use:   "load-stores [archivo.json]",
		Short: "Cargar regiones, zonas y sucursales desde JSON (stdin si no hay archivo)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, closeFn, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer closeFn()

			seeds, err := catalog.ParseStoreSeeds(r)
			if err != nil {
				return err
			}
			return withEnv(cmd, boot, func(ctx context.Context, env *Env) error {
				res, err := env.Catalog.LoadStores(ctx, seeds, pad)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Regiones creadas: %d  Zonas creadas: %d  Sucursales creadas: %d  actualizadas: %d\n",
					res.RegionsCreated, res.ZonesCreated, res.StoresCreated, res.StoresUpdated)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&pad, "pad", 0, "ancho de código de sucursal (compatibilidad)")
	return cmd
}

func newLoadFamiliesCommand(boot Bootstrap) *cobra.Command {
	var deactivateMissing bool

	cmd := &cobra.Command{
		Use:   "load-families [archivo.json]",
		Short: "Cargar familias desde JSON (stdin si no hay archivo)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, closeFn, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer closeFn()

			seeds, err := catalog.ParseFamilySeeds(r)
			if err != nil {
				return err
			}
			return withEnv(cmd, boot, func(ctx context.Context, env *Env) error {
				res, err := env.Catalog.LoadFamilies(ctx, seeds, deactivateMissing)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Familias creadas: %d  actualizadas: %d  desactivadas: %d\n",
					res.Created, res.Updated, res.Deactivated)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&deactivateMissing, "deactivate-missing", false, "desactivar familias activas que no vienen en el archivo")
	return cmd
}

func openInput(cmd *cobra.Command, args []string) (io.Reader, func(), error) {
	if len(args) == 0 || args[0] == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("abrir %s: %w", args[0], err)
	}
	return f, func() { f.Close() }, nil
}
