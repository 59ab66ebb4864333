package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/muhtegaralfikri/bbi-backend/internal/db"
	"github.com/muhtegaralfikri/bbi-backend/internal/globaltime"
)

type fakeProfilStore struct {
	info        *db.InfoPerusahaan
	cabang      map[string]*db.InfoCabang
	nextID      int
	upsertCalls int
}

func newFakeProfilStore() *fakeProfilStore {
	return &fakeProfilStore{cabang: map[string]*db.InfoCabang{}}
}

func (f *fakeProfilStore) GetInfoPerusahaan(_ context.Context) (*db.InfoPerusahaan, error) {
	if f.info == nil {
		// Mirrors the self-healing default row.
		f.info = &db.InfoPerusahaan{
			ID:           db.InfoPerusahaanID,
			AlamatKantor: "Jl. Default No. 1",
			NoHP:         "(0411) 123456",
			Email:        "info@bbi.co.id",
			UpdatedAt:    globaltime.UTC(),
		}
	}
	clone := *f.info
	return &clone, nil
}

func (f *fakeProfilStore) UpsertInfoPerusahaan(_ context.Context, info *db.InfoPerusahaan) error {
	f.upsertCalls++
	clone := *info
	clone.UpdatedAt = globaltime.UTC()
	f.info = &clone
	return nil
}

func (f *fakeProfilStore) ListCabang(_ context.Context) ([]db.InfoCabang, error) {
	var rows []db.InfoCabang
	for _, row := range f.cabang {
		rows = append(rows, *row)
	}
	return rows, nil
}

func (f *fakeProfilStore) GetCabang(_ context.Context, id string) (*db.InfoCabang, error) {
	row, ok := f.cabang[id]
	if !ok {
		return nil, db.ErrNoRows
	}
	clone := *row
	return &clone, nil
}

func (f *fakeProfilStore) CreateCabang(_ context.Context, cabang *db.InfoCabang) error {
	f.nextID++
	cabang.ID = "cabang-" + strconv.Itoa(f.nextID)
	clone := *cabang
	f.cabang[cabang.ID] = &clone
	return nil
}

func (f *fakeProfilStore) SaveCabang(_ context.Context, cabang *db.InfoCabang) error {
	if _, ok := f.cabang[cabang.ID]; !ok {
		return db.ErrNoRows
	}
	clone := *cabang
	f.cabang[cabang.ID] = &clone
	return nil
}

func (f *fakeProfilStore) DeleteCabang(_ context.Context, id string) error {
	if _, ok := f.cabang[id]; !ok {
		return db.ErrNoRows
	}
	delete(f.cabang, id)
	return nil
}

func newProfilTestServer() (*Server, *fakeProfilStore) {
	store := newFakeProfilStore()
	server := &Server{
		logger:      zerolog.Nop(),
		opts:        Options{SessionCookie: "bbi_session"},
		profilStore: store,
	}
	return server, store
}

func TestHandleGetKontak_SelfHealsDefault(t *testing.T) {
	t.Parallel()

	server, _ := newProfilTestServer()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/kontak", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := server.handleGetKontak(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	_, data := decodeEnvelope(t, rec)
	var resp kontakResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if resp.Email != "info@bbi.co.id" {
		t.Fatalf("email = %q, want default row", resp.Email)
	}
}

func TestHandlePutKontak(t *testing.T) {
	t.Parallel()

	server, store := newProfilTestServer()

	_, c, rec := newJSONContext(http.MethodPut, "/api/v1/admin/kontak",
		`{"alamat_kantor":"Jl. Baru No. 2","no_hp":"(0411) 654321","email":"halo@bbi.co.id"}`)
	if err := server.handlePutKontak(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body %s", rec.Code, rec.Body.String())
	}
	if store.upsertCalls != 1 || store.info.AlamatKantor != "Jl. Baru No. 2" {
		t.Fatalf("store = %+v calls %d", store.info, store.upsertCalls)
	}

	// Invalid email never reaches the store.
	_, c, rec = newJSONContext(http.MethodPut, "/api/v1/admin/kontak",
		`{"alamat_kantor":"x","no_hp":"y","email":"bukan-email"}`)
	if err := server.handlePutKontak(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if store.upsertCalls != 1 {
		t.Fatalf("upsert calls = %d, want unchanged", store.upsertCalls)
	}
}

func TestCabangLifecycle(t *testing.T) {
	t.Parallel()

	server, store := newProfilTestServer()

	_, c, rec := newJSONContext(http.MethodPost, "/api/v1/admin/cabang",
		`{"nama":"Cabang Makassar","alamat":"Jl. Pelabuhan 3","no_telp":"0811"}`)
	if err := server.handleCreateCabang(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d body %s", rec.Code, rec.Body.String())
	}
	_, data := decodeEnvelope(t, rec)
	var created cabangResponse
	if err := json.Unmarshal(data, &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/kontak/cabang/"+created.ID, nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(created.ID)
	if err := server.handleGetCabang(c); err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body %s", rec.Code, rec.Body.String())
	}
	_, data = decodeEnvelope(t, rec)
	var fetched cabangResponse
	if err := json.Unmarshal(data, &fetched); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if fetched.Nama != "Cabang Makassar" {
		t.Fatalf("fetched = %+v", fetched)
	}

	_, c, rec = newJSONContext(http.MethodPut, "/api/v1/admin/cabang/"+created.ID,
		`{"nama":"Cabang Makassar Baru","alamat":"Jl. Pelabuhan 4"}`)
	c.SetParamNames("id")
	c.SetParamValues(created.ID)
	if err := server.handleUpdateCabang(c); err != nil {
		t.Fatalf("update: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body %s", rec.Code, rec.Body.String())
	}
	if store.cabang[created.ID].Nama != "Cabang Makassar Baru" {
		t.Fatalf("stored = %+v", store.cabang[created.ID])
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/admin/cabang/"+created.ID, nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(created.ID)
	if err := server.handleDeleteCabang(c); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(store.cabang) != 0 {
		t.Fatalf("cabang = %d rows, want 0", len(store.cabang))
	}

	// Deleting again is a 404.
	req = httptest.NewRequest(http.MethodDelete, "/api/v1/admin/cabang/"+created.ID, nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(created.ID)
	if err := server.handleDeleteCabang(c); err != nil {
		t.Fatalf("delete again: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
