package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-curves/internal/application/auth"
	"github.com/jhoicas/retail-curves/internal/application/catalog"
	"github.com/jhoicas/retail-curves/internal/application/dto"
	"github.com/jhoicas/retail-curves/internal/application/navidad"
	"github.com/jhoicas/retail-curves/internal/application/report"
	"github.com/jhoicas/retail-curves/internal/infrastructure/memory"
	"github.com/jhoicas/retail-curves/internal/infrastructure/pdf"
	"github.com/jhoicas/retail-curves/internal/infrastructure/spreadsheet"
	apphttp "github.com/jhoicas/retail-curves/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Aplicación completa sobre la base en memoria
// ──────────────────────────────────────────────────────────────────────────────

type apiFixture struct {
	app       *fiber.App
	db        *memory.DB
	uploadDir string
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	ctx := context.Background()
	db := memory.New()

	catalogSvc := catalog.NewService(db, db.Regions(), db.Zones(), db.Stores(), db.Families(), nil)
	_, err := catalogSvc.LoadStores(ctx, []catalog.StoreSeed{
		{Region: "Norte", Zone: "Costa", Code: "35"},
		{Region: "Norte", Zone: "Costa", Code: "CDR01", IsCDR: true},
	}, 0)
	require.NoError(t, err)
	_, err = catalogSvc.LoadFamilies(ctx, []catalog.FamilySeed{
		{Origen: "JUGUETES", Sector: "Hogar", FamiliaStd: "Juguetes", SubfamiliaStd: "Muñecas"},
	}, false)
	require.NoError(t, err)

	authUC := auth.NewAuthUseCase(db.Users(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer})
	_, err = authUC.CreateUser(ctx, dto.CreateUserRequest{Email: "admin@tienda.cl", Password: "secreto123", Role: "admin"})
	require.NoError(t, err)

	loader := navidad.NewLoader(spreadsheet.NewOpener(), db, nil)
	uploadDir := t.TempDir()

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:    authUC,
		Imports:   navidad.NewImportService(loader, db.ImportRuns(), pdf.NewReceiptGenerator(), nil),
		Catalog:   catalogSvc,
		Reports:   report.NewService(db.Reports(), db.Stores(), report.DefaultSeason, nil),
		JWTSecret: testJWTSecret,
		UploadDir: uploadDir,
	})
	return &apiFixture{app: app, db: db, uploadDir: uploadDir}
}

func (f *apiFixture) do(t *testing.T, req *http.Request, role string) *http.Response {
	t.Helper()
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func uploadRequest(t *testing.T, fileName, content string, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileName != "" {
		part, err := w.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = io.WriteString(part, content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/imports/navidad", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

const navidadCSV = "Dia;Region;Zona;Sucursal;SubFamilia;Unidades Stock Final;Unidades Vendidas\n" +
	"2024-12-01;Norte;Costa;35;JUGUETES;10;3\n" +
	"2024-12-01;Norte;Costa;CDR01;JUGUETES;100;5\n" +
	"2024-12-02;Norte;Costa;99;JUGUETES;4;1\n"

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, httptest.NewRequest(http.MethodGet, "/health", nil), "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[map[string]string](t, resp)
	assert.Equal(t, "ok", body["status"])
}

func TestLogin(t *testing.T) {
	f := newAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"ADMIN@tienda.cl","password":"secreto123"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := f.do(t, req, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.LoginResponse](t, resp)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "admin", out.User.Role)

	req = httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"admin@tienda.cl","password":"incorrecta"}`))
	req.Header.Set("Content-Type", "application/json")
	resp = f.do(t, req, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestImportNavidad_Flujo(t *testing.T) {
	f := newAPI(t)

	resp := f.do(t, uploadRequest(t, "navidad.csv", navidadCSV, map[string]string{"chunk_size": "2"}), "admin")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	run := decode[dto.ImportRunResponse](t, resp)
	assert.Equal(t, "success", run.Status)
	assert.Equal(t, "navidad.csv", run.FileName)
	assert.Equal(t, 2, run.ChunkSize)
	assert.Equal(t, 3, run.Summary.Rows)
	assert.Equal(t, 2, run.Summary.StockCreated)
	assert.Equal(t, 1, run.Summary.StockSkipped)
	assert.Equal(t, 1, run.Summary.SalesCreated)
	assert.Equal(t, 2, run.Summary.SalesSkipped, "CDR y sucursal desconocida")
	assert.Equal(t, 2, run.Summary.Chunks)
	require.NotNil(t, run.UserID)

	entries, err := os.ReadDir(f.uploadDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "el archivo subido se elimina al terminar")

	resp = f.do(t, httptest.NewRequest(http.MethodGet, "/api/imports", nil), "analyst")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.ImportRunListResponse](t, resp)
	require.Len(t, list.Items, 1)
	assert.Equal(t, run.ID, list.Items[0].ID)
	assert.Equal(t, 20, list.Page.Limit)

	resp = f.do(t, httptest.NewRequest(http.MethodGet, "/api/imports/"+run.ID, nil), "analyst")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[dto.ImportRunResponse](t, resp)
	assert.Equal(t, run.Summary, got.Summary)

	resp = f.do(t, httptest.NewRequest(http.MethodGet, "/api/imports/"+run.ID+"/pdf", nil), "analyst")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	pdfBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdfBytes, []byte("%PDF")))

	resp = f.do(t, httptest.NewRequest(http.MethodGet, "/api/imports/no-existe", nil), "analyst")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestImportNavidad_SoloAdmin(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, uploadRequest(t, "navidad.csv", navidadCSV, nil), "analyst")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Empty(t, f.db.AllStock())
}

func TestImportNavidad_SinArchivo(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, uploadRequest(t, "", "", map[string]string{"sheet": "0"}), "admin")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
}

func TestImportNavidad_SinEncabezado(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, uploadRequest(t, "otra.csv", "a;b;c\n1;2;3\n", nil), "admin")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "HEADERS_NOT_FOUND", body.Code)
	assert.Contains(t, body.Message, "encabezados")

	// La corrida fallida queda registrada.
	runs, err := f.db.ImportRuns().List(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "failed", runs[0].Status)
}

func TestImportNavidad_FormatoNoSoportado(t *testing.T) {
	f := newAPI(t)
	for _, name := range []string{"viejo.xls", "notas.pdf", "sin_extension"} {
		resp := f.do(t, uploadRequest(t, name, "binario", nil), "admin")
		assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode, name)
		body := decode[dto.ErrorResponse](t, resp)
		assert.Equal(t, "UNSUPPORTED_FORMAT", body.Code, name)
	}

	// Se rechaza antes de guardar el archivo y de registrar una corrida.
	entries, err := os.ReadDir(f.uploadDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
	runs, err := f.db.ImportRuns().List(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestCatalogo(t *testing.T) {
	f := newAPI(t)

	resp := f.do(t, httptest.NewRequest(http.MethodGet, "/api/regions", nil), "analyst")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var regions struct {
		Items []struct {
			ID    int64  `json:"id"`
			Label string `json:"label"`
		} `json:"items"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&regions))
	resp.Body.Close()
	require.Len(t, regions.Items, 1)
	assert.Equal(t, "Norte", regions.Items[0].Label)

	resp = f.do(t, httptest.NewRequest(http.MethodGet, "/api/zones", nil), "analyst")
	zones := decode[dto.OptionListResponse](t, resp)
	assert.Empty(t, zones.Items, "sin region_id la lista es vacía")

	resp = f.do(t, httptest.NewRequest(http.MethodGet, "/api/stores/info?code=35", nil), "analyst")
	info := decode[dto.StoreInfoResponse](t, resp)
	assert.True(t, info.OK)
	assert.Equal(t, "Costa", info.Zone.Name)

	resp = f.do(t, httptest.NewRequest(http.MethodGet, "/api/families", nil), "analyst")
	families := decode[dto.FamilyListResponse](t, resp)
	require.Len(t, families.Items, 1)
	assert.Equal(t, "JUGUETES", families.Items[0].Origen)

	resp = f.do(t, httptest.NewRequest(http.MethodGet, "/api/families", nil), "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCurvas(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, uploadRequest(t, "navidad.csv", navidadCSV, nil), "admin")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, httptest.NewRequest(http.MethodGet, "/api/stock/curves?source=stores", nil), "analyst")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stock := decode[dto.CurvesResponse](t, resp)
	assert.Equal(t, 2024, stock.Meta.PivotYear)
	require.Len(t, stock.Datasets, 1)
	assert.Equal(t, 10.0, stock.Datasets[0].Data[61])

	resp = f.do(t, httptest.NewRequest(http.MethodGet, "/api/stock/curves?source=otro", nil), "analyst")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = f.do(t, httptest.NewRequest(http.MethodGet, "/api/sales/curves?year=2024", nil), "analyst")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sales := decode[dto.CurvesResponse](t, resp)
	require.Len(t, sales.Datasets, 1)
	assert.Equal(t, 3.0, sales.Datasets[0].Data[len(sales.Datasets[0].Data)-1])
}

func TestCrearUsuario(t *testing.T) {
	f := newAPI(t)
	body := `{"email":"ana@tienda.cl","password":"clave-segura","role":"analyst"}`

	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := f.do(t, req, "analyst")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp = f.do(t, req, "admin")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	user := decode[dto.UserResponse](t, resp)
	assert.Equal(t, "analyst", user.Role)

	req = httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp = f.do(t, req, "admin")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}
