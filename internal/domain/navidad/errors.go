package navidad

import "errors"

// Errores fatales del cargador: abortan la importación completa.
var (
	ErrFileNotFound      = errors.New("archivo no encontrado")
	ErrHeadersNotFound   = errors.New("no pude detectar la fila de encabezados, verificá el archivo/hoja")
	ErrSheetNotFound     = errors.New("hoja no encontrada en el libro")
	ErrUnsupportedFormat = errors.New("formato de archivo no soportado")
)
