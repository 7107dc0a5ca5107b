package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shipquote/rate-service/internal/domain/model"
	"github.com/shipquote/rate-service/internal/packing"
	"github.com/shipquote/rate-service/internal/repository"
	"github.com/shipquote/rate-service/internal/service"
)

// stubCatalogService scripts catalog responses for admin handler tests.
type stubCatalogService struct {
	config     *repository.BoxCatalogConfig
	configErr  error
	replaced   *repository.BoxCatalogConfig
	replaceErr error
}

func (s *stubCatalogService) ActiveCatalog(context.Context) *packing.Catalog {
	return packing.DefaultCatalog()
}

func (s *stubCatalogService) ActiveConfig(context.Context) (*repository.BoxCatalogConfig, error) {
	return s.config, s.configErr
}

func (s *stubCatalogService) ReplaceActive(_ context.Context, boxes []model.BoxDefinition, createdBy string) (*repository.BoxCatalogConfig, error) {
	if s.replaceErr != nil {
		return nil, s.replaceErr
	}
	s.replaced = &repository.BoxCatalogConfig{Boxes: boxes, Active: true, Version: 2, CreatedBy: createdBy}
	return s.replaced, nil
}

func (s *stubCatalogService) Invalidate() {}

func newBoxesRouter(stub *stubCatalogService) *gin.Engine {
	handler := NewBoxCatalogHandler(stub, nil)
	router := gin.New()
	router.GET("/api/admin/boxes", handler.GetBoxes)
	router.PUT("/api/admin/boxes", handler.UpdateBoxes)
	return router
}

func catalogUpdateBody() map[string]interface{} {
	return map[string]interface{}{
		"boxes": []map[string]interface{}{{
			"id": "CRATE_1", "category": "box",
			"length_in": 30.0, "width_in": 20.0, "height_in": 20.0,
			"max_weight_lbs": 80.0, "tare_weight_lbs": 4.0, "usable_factor": 0.9,
		}},
		"created_by": "ops",
	}
}

func TestBoxCatalogHandler_GetBoxes_Builtin(t *testing.T) {
	w := performJSON(t, newBoxesRouter(&stubCatalogService{}), http.MethodGet, "/api/admin/boxes", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"builtin":true`)
	assert.Contains(t, w.Body.String(), "SM_BOX")
}

func TestBoxCatalogHandler_GetBoxes_BuiltinWhenStorageDisabled(t *testing.T) {
	stub := &stubCatalogService{configErr: service.ErrRepositoryNotConfigured}

	w := performJSON(t, newBoxesRouter(stub), http.MethodGet, "/api/admin/boxes", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"builtin":true`)
}

func TestBoxCatalogHandler_GetBoxes_Stored(t *testing.T) {
	stub := &stubCatalogService{config: &repository.BoxCatalogConfig{
		Boxes:   []model.BoxDefinition{{ID: "CRATE_1", Category: "box", LengthIn: 30, WidthIn: 20, HeightIn: 20, MaxWeightLbs: 80}},
		Active:  true,
		Version: 3,
	}}

	w := performJSON(t, newBoxesRouter(stub), http.MethodGet, "/api/admin/boxes", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "CRATE_1")
	assert.NotContains(t, w.Body.String(), `"builtin":true`)
}

func TestBoxCatalogHandler_UpdateBoxes(t *testing.T) {
	stub := &stubCatalogService{}

	w := performJSON(t, newBoxesRouter(stub), http.MethodPut, "/api/admin/boxes", catalogUpdateBody())

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, stub.replaced)
	assert.Equal(t, "ops", stub.replaced.CreatedBy)
	require.Len(t, stub.replaced.Boxes, 1)
	assert.Equal(t, "CRATE_1", stub.replaced.Boxes[0].ID)
}

func TestBoxCatalogHandler_UpdateBoxes_ValidationFailure(t *testing.T) {
	body := map[string]interface{}{"boxes": []map[string]interface{}{}}

	w := performJSON(t, newBoxesRouter(&stubCatalogService{}), http.MethodPut, "/api/admin/boxes", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBoxCatalogHandler_UpdateBoxes_StorageDisabled(t *testing.T) {
	stub := &stubCatalogService{replaceErr: service.ErrRepositoryNotConfigured}

	w := performJSON(t, newBoxesRouter(stub), http.MethodPut, "/api/admin/boxes", catalogUpdateBody())

	assert.Equal(t, http.StatusNotImplemented, w.Code)
}
