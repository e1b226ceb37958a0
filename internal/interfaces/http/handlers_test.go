package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bufete-crm/internal/application/dto"
	"github.com/jhoicas/bufete-crm/internal/domain"
	apphttp "github.com/jhoicas/bufete-crm/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de servicios
// ──────────────────────────────────────────────────────────────────────────────

type fakeOpps struct {
	changeErr error
	gotTarget string
}

func (f *fakeOpps) Create(_ context.Context, _, _ string, in dto.CreateOpportunityRequest) (*dto.OpportunityResponse, error) {
	return &dto.OpportunityResponse{ID: "o-1", Title: in.Title}, nil
}

func (f *fakeOpps) Get(_ context.Context, _, id string) (*dto.OpportunityResponse, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeOpps) List(_ context.Context, _, _, _ string, _ dto.PageRequest) (*dto.OpportunityListResponse, error) {
	return &dto.OpportunityListResponse{}, nil
}

func (f *fakeOpps) ChangeStatus(_ context.Context, _, _, id, target string) (*dto.StatusChangeResponse, error) {
	f.gotTarget = target
	if f.changeErr != nil {
		return nil, f.changeErr
	}
	return &dto.StatusChangeResponse{
		Opportunity:   dto.OpportunityResponse{ID: id, Status: dto.StatusMeta{Value: target}},
		MatterCreated: target == "won",
		MatterID:      "m-1",
	}, nil
}

type fakeMatters struct {
	logErr error
}

func (f *fakeMatters) Create(context.Context, string, string, dto.CreateMatterRequest) (*dto.MatterResponse, error) {
	return nil, nil
}

func (f *fakeMatters) Get(context.Context, string, string) (*dto.MatterResponse, error) {
	return nil, nil
}

func (f *fakeMatters) List(context.Context, string, dto.PageRequest) ([]dto.MatterResponse, error) {
	return nil, nil
}

func (f *fakeMatters) ChangeStatus(context.Context, string, string, string) (*dto.MatterResponse, error) {
	return nil, nil
}

func (f *fakeMatters) CreateTask(context.Context, string, string, dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	return nil, nil
}

func (f *fakeMatters) UpdateTaskStatus(context.Context, string, string, string) (*dto.TaskResponse, error) {
	return nil, nil
}

func (f *fakeMatters) LogTime(_ context.Context, _, taskID string, in dto.LogTimeRequest) (*dto.LogTimeResponse, error) {
	if f.logErr != nil {
		return nil, f.logErr
	}
	return &dto.LogTimeResponse{
		Task:  dto.TaskResponse{ID: taskID, ActualHours: in.HoursSpent},
		Entry: dto.TimeEntryResponse{TaskID: taskID, HoursSpent: in.HoursSpent, UserName: in.UserName},
	}, nil
}

func (f *fakeMatters) ListTimeEntries(context.Context, string, string) ([]dto.TimeEntryResponse, error) {
	return nil, nil
}

func (f *fakeMatters) ReportPDF(context.Context, string, string) ([]byte, error) {
	return []byte("%PDF-1.4"), nil
}

type fakeDocs struct {
	got      dto.UploadDocumentInput
	clientID string
	userID   string
}

func (f *fakeDocs) Upload(_ context.Context, _, userID, clientID string, in dto.UploadDocumentInput) (*dto.DocumentResponse, error) {
	f.got, f.clientID, f.userID = in, clientID, userID
	return &dto.DocumentResponse{ID: "d-1", ClientID: clientID, Name: in.Name, FileSize: int64(len(in.Content))}, nil
}

func (f *fakeDocs) List(context.Context, string, string) ([]dto.DocumentResponse, error) {
	return nil, nil
}

func (f *fakeDocs) Download(context.Context, string, string) (*dto.DownloadedDocument, error) {
	return &dto.DownloadedDocument{FileName: "poder.pdf", ContentType: "application/pdf", Content: []byte("pdf")}, nil
}

func (f *fakeDocs) Delete(context.Context, string, string) error { return nil }

func (f *fakeDocs) Expiring(context.Context, string) ([]dto.DocumentResponse, error) {
	return nil, nil
}

type fakeFirmChecker struct {
	active bool
	err    error
}

func (f fakeFirmChecker) IsActive(context.Context, string) (bool, error) { return f.active, f.err }

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

// withSession simula lo que deja AuthMiddleware en Locals.
func withSession(c *fiber.Ctx) error {
	c.Locals(apphttp.LocalUserID, testUserID)
	c.Locals(apphttp.LocalFirmID, testFirmID)
	c.Locals(apphttp.LocalRole, "abogado")
	return c.Next()
}

func sendJSON(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, dto.ErrorResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	var e dto.ErrorResponse
	_ = json.Unmarshal(raw, &e)
	return resp, e
}

// ──────────────────────────────────────────────────────────────────────────────
// Oportunidades
// ──────────────────────────────────────────────────────────────────────────────

func TestChangeStatus_TransicionIlegal_Retorna409(t *testing.T) {
	svc := &fakeOpps{changeErr: fmt.Errorf("prospect → won: %w", domain.ErrIllegalTransition)}
	app := fiber.New()
	app.Patch("/opportunities/:id/status", withSession, apphttp.NewOpportunityHandler(svc).ChangeStatus)

	resp, body := sendJSON(t, app, http.MethodPatch, "/opportunities/o-1/status", `{"status":"won"}`)

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "ILLEGAL_TRANSITION", body.Code)
	assert.Equal(t, "won", svc.gotTarget)
}

func TestChangeStatus_Ganada_InformaAsuntoCreado(t *testing.T) {
	app := fiber.New()
	app.Patch("/opportunities/:id/status", withSession, apphttp.NewOpportunityHandler(&fakeOpps{}).ChangeStatus)

	req := httptest.NewRequest(http.MethodPatch, "/opportunities/o-1/status", strings.NewReader(`{"status":"won"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.StatusChangeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out.MatterCreated)
	assert.Equal(t, "m-1", out.MatterID)
}

func TestOpportunityGet_Inexistente_Retorna404(t *testing.T) {
	app := fiber.New()
	app.Get("/opportunities/:id", withSession, apphttp.NewOpportunityHandler(&fakeOpps{}).GetByID)

	resp, body := sendJSON(t, app, http.MethodGet, "/opportunities/nope", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body.Code)
}

func TestStatuses_DevuelveCatalogo(t *testing.T) {
	app := fiber.New()
	app.Get("/opportunities/statuses", apphttp.NewOpportunityHandler(&fakeOpps{}).Statuses)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/opportunities/statuses", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out []dto.StatusMeta
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out, 5)
	assert.Equal(t, "prospect", out[0].Value)
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro de horas
// ──────────────────────────────────────────────────────────────────────────────

func TestLogTime_HorasInvalidas_Retorna400(t *testing.T) {
	svc := &fakeMatters{logErr: fmt.Errorf("hours_spent=0: %w", domain.ErrInvalidHours)}
	app := fiber.New()
	app.Post("/tasks/:id/time-entries", withSession, apphttp.NewMatterHandler(svc).LogTime)

	resp, body := sendJSON(t, app, http.MethodPost, "/tasks/t-1/time-entries", `{"hours_spent":"0","user_name":"Ana"}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_HOURS", body.Code)
}

func TestLogTime_Valido_Retorna201(t *testing.T) {
	app := fiber.New()
	app.Post("/tasks/:id/time-entries", withSession, apphttp.NewMatterHandler(&fakeMatters{}).LogTime)

	req := httptest.NewRequest(http.MethodPost, "/tasks/t-1/time-entries", strings.NewReader(`{"hours_spent":"2.5","user_name":"Ana"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out dto.LogTimeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, decimal.RequireFromString("2.5").Equal(out.Entry.HoursSpent))
}

func TestReport_DevuelvePDF(t *testing.T) {
	app := fiber.New()
	app.Get("/matters/:id/report.pdf", withSession, apphttp.NewMatterHandler(&fakeMatters{}).Report)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/matters/m-1/report.pdf", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Documentos
// ──────────────────────────────────────────────────────────────────────────────

func multipartBody(t *testing.T, fields map[string]string, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileName != "" {
		fw, err := w.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestUpload_Multipart_ConVencimiento(t *testing.T) {
	svc := &fakeDocs{}
	app := fiber.New()
	app.Post("/clients/:id/documents", withSession, apphttp.NewDocumentHandler(svc).Upload)

	body, ct := multipartBody(t, map[string]string{"name": "Poder notarial", "expiration_date": "2024-04-01"}, "poder.PDF", []byte("contenido"))
	req := httptest.NewRequest(http.MethodPost, "/clients/c-1/documents", body)
	req.Header.Set("Content-Type", ct)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "c-1", svc.clientID)
	assert.Equal(t, testUserID, svc.userID)
	assert.Equal(t, "Poder notarial", svc.got.Name)
	assert.Equal(t, "poder.PDF", svc.got.FileName)
	assert.Equal(t, []byte("contenido"), svc.got.Content)
	require.NotNil(t, svc.got.ExpirationDate)
	assert.Equal(t, "2024-04-01", svc.got.ExpirationDate.Format("2006-01-02"))
}

func TestUpload_SinNombreUsaNombreDeArchivo(t *testing.T) {
	svc := &fakeDocs{}
	app := fiber.New()
	app.Post("/clients/:id/documents", withSession, apphttp.NewDocumentHandler(svc).Upload)

	body, ct := multipartBody(t, nil, "cedula.jpg", []byte("jpg"))
	req := httptest.NewRequest(http.MethodPost, "/clients/c-1/documents", body)
	req.Header.Set("Content-Type", ct)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "cedula.jpg", svc.got.Name)
	assert.Nil(t, svc.got.ExpirationDate)
}

func TestUpload_SinArchivoOFechaInvalida_Retorna400(t *testing.T) {
	app := fiber.New()
	app.Post("/clients/:id/documents", withSession, apphttp.NewDocumentHandler(&fakeDocs{}).Upload)

	body, ct := multipartBody(t, map[string]string{"name": "x"}, "", nil)
	req := httptest.NewRequest(http.MethodPost, "/clients/c-1/documents", body)
	req.Header.Set("Content-Type", ct)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body, ct = multipartBody(t, map[string]string{"expiration_date": "01/04/2024"}, "a.pdf", []byte("a"))
	req = httptest.NewRequest(http.MethodPost, "/clients/c-1/documents", body)
	req.Header.Set("Content-Type", ct)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDownload_ContentDisposition(t *testing.T) {
	app := fiber.New()
	app.Get("/documents/:id/download", withSession, apphttp.NewDocumentHandler(&fakeDocs{}).Download)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/documents/d-1/download", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `filename=poder.pdf`)
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireActiveFirm y errores no mapeados
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireActiveFirm(t *testing.T) {
	cases := []struct {
		name    string
		checker fakeFirmChecker
		want    int
	}{
		{"activo", fakeFirmChecker{active: true}, http.StatusOK},
		{"suspendido", fakeFirmChecker{active: false}, http.StatusForbidden},
		{"fallo de DB", fakeFirmChecker{err: errors.New("conn refused")}, http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/x", withSession, apphttp.RequireActiveFirm(tc.checker), func(c *fiber.Ctx) error {
				return c.SendStatus(fiber.StatusOK)
			})
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil), -1)
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

func TestErrorNoMapeado_Retorna500SinDetalle(t *testing.T) {
	svc := &fakeOpps{changeErr: errors.New("pq: connection reset")}
	app := fiber.New()
	app.Patch("/opportunities/:id/status", withSession, apphttp.NewOpportunityHandler(svc).ChangeStatus)

	resp, body := sendJSON(t, app, http.MethodPatch, "/opportunities/o-1/status", `{"status":"lost"}`)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "INTERNAL", body.Code)
	assert.NotContains(t, body.Message, "connection reset")
}
