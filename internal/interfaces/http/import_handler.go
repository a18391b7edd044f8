package http

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-curves/internal/application/dto"
	"github.com/jhoicas/retail-curves/internal/application/navidad"
	domnavidad "github.com/jhoicas/retail-curves/internal/domain/navidad"
)

// ImportHandler maneja la carga de planillas Navidad y la consulta de corridas.
type ImportHandler struct {
	svc          *navidad.ImportService
	uploadDir    string
	defaultChunk int
}

// NewImportHandler construye el handler. uploadDir vacío usa el temporal del sistema;
// defaultChunk se aplica cuando el formulario no trae chunk_size.
func NewImportHandler(svc *navidad.ImportService, uploadDir string, defaultChunk int) *ImportHandler {
	if uploadDir == "" {
		uploadDir = os.TempDir()
	}
	return &ImportHandler{svc: svc, uploadDir: uploadDir, defaultChunk: defaultChunk}
}

// Upload godoc
// @Summary      Importar planilla Navidad
// @Description  Carga stock y ventas diarias desde XLSX/CSV. Todo o nada: ante un error no queda nada escrito.
// @Tags         imports
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file         formData  file    true   "planilla .xlsx, .csv o .tsv"
// @Param        sheet        formData  string  false  "nombre o índice base 0 de la hoja"
// @Param        pad          formData  int     false  "ancho de código (compatibilidad)"
// @Param        strict_area  formData  bool    false  "descartar filas cuya región/zona no coincide"
// @Param        chunk_size   formData  int     false  "filas por chunk"
// @Success      201  {object}  dto.ImportRunResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      415  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/imports/navidad [post]
func (h *ImportHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "VALIDATION", "el campo file es requerido")
	}
	if !domnavidad.SupportedExtension(fh.Filename) {
		return respondError(c, fmt.Errorf("%w: %q (se aceptan .xlsx, .csv y .tsv)", domnavidad.ErrUnsupportedFormat, filepath.Ext(fh.Filename)))
	}
	var in dto.ImportRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "parámetros inválidos: "+err.Error())
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return respondError(c, err)
	}
	// Se conserva la extensión: el lector elige formato por ella.
	tmp, err := os.CreateTemp(h.uploadDir, "navidad-*"+strings.ToLower(filepath.Ext(fh.Filename)))
	if err != nil {
		return respondError(c, err)
	}
	path := tmp.Name()
	tmp.Close()
	defer os.Remove(path)

	if err := c.SaveFile(fh, path); err != nil {
		return respondError(c, err)
	}

	if in.ChunkSize <= 0 {
		in.ChunkSize = h.defaultChunk
	}

	var userID *string
	if id := GetUserID(c); id != "" {
		userID = &id
	}
	run, err := h.svc.Import(c.UserContext(), userID, filepath.Base(fh.Filename), navidad.Input{
		Path:       path,
		Sheet:      in.Sheet,
		Pad:        in.Pad,
		StrictArea: in.StrictArea,
		ChunkSize:  in.ChunkSize,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(run)
}

// List godoc
// @Summary      Listar corridas de importación
// @Tags         imports
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query  int  false  "máximo de filas (20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.ImportRunListResponse
// @Router       /api/imports [get]
func (h *ImportHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "INVALID_QUERY", "paginación inválida")
	}
	out, err := h.svc.List(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener corrida
// @Tags         imports
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "id de la corrida"
// @Success      200  {object}  dto.ImportRunResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/imports/{id} [get]
func (h *ImportHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Comprobante PDF de una corrida
// @Tags         imports
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id  path  string  true  "id de la corrida"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/imports/{id}/pdf [get]
func (h *ImportHandler) Receipt(c *fiber.Ctx) error {
	id := c.Params("id")
	pdf, err := h.svc.Receipt(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="importacion-`+id+`.pdf"`)
	return c.Send(pdf)
}
