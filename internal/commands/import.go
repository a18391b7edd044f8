package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/retail-curves/internal/application/navidad"
	"github.com/jhoicas/retail-curves/internal/infrastructure/sqlitebackup"
)

type importOptions struct {
	sheet      string
	pad        int
	strictArea bool
	chunkSize  int
	backup     string
	yes        bool
}

func newImportCommand(boot Bootstrap) *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import <archivo>",
		Short: "Importar una planilla Navidad (xlsx, csv o tsv)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, boot, func(ctx context.Context, env *Env) error {
				return runImport(ctx, cmd, env, args[0], opts)
			})
		},
	}

	cmd.Flags().StringVar(&opts.sheet, "sheet", "", "nombre o índice base 0 de la hoja (vacío = primera)")
	cmd.Flags().IntVar(&opts.pad, "pad", 0, "ancho de código de sucursal (compatibilidad)")
	cmd.Flags().BoolVar(&opts.strictArea, "strict-area", false, "descartar filas cuya región/zona no coincide con la sucursal")
	cmd.Flags().IntVar(&opts.chunkSize, "chunk-size", 0, "filas por chunk (0 = configuración)")
	cmd.Flags().StringVar(&opts.backup, "backup", "", "ruta del respaldo SQLite previo a importar")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "no pedir confirmación")

	return cmd
}

func runImport(ctx context.Context, cmd *cobra.Command, env *Env, path string, opts importOptions) error {
	out := cmd.OutOrStdout()

	stores, families, err := env.Catalog.Counts(ctx)
	if err != nil {
		return fmt.Errorf("contar maestros: %w", err)
	}
	fmt.Fprintf(out, "Sucursales: %d  Familias: %d\n", stores, families)

	if !opts.yes && !confirm(cmd.InOrStdin(), out, "¿Continuar con la importación? [s/N]: ") {
		fmt.Fprintln(out, "Cancelado.")
		return nil
	}

	if opts.backup != "" {
		res, err := sqlitebackup.Write(ctx, env.Backup, opts.backup)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Respaldo %s: %d sucursales, %d familias, %d stock, %d ventas\n",
			res.Path, res.Stores, res.Families, res.Stock, res.Sales)
	}

	chunk := opts.chunkSize
	if chunk <= 0 {
		chunk = env.ChunkSize
	}
	run, err := env.Imports.Import(ctx, nil, filepath.Base(path), navidad.Input{
		Path:       path,
		Sheet:      opts.sheet,
		Pad:        opts.pad,
		StrictArea: opts.strictArea,
		ChunkSize:  chunk,
	})
	if err != nil {
		return fmt.Errorf("importación fallida: %w", err)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(run.Summary)
}

// confirm lee una línea; solo s/si/sí/y/yes confirman.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	line, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "s", "si", "sí", "y", "yes":
		return true
	}
	return false
}
