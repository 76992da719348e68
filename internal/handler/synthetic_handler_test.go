package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"copilot/internal/domain"
	"copilot/internal/handler"
	"copilot/internal/service"
	"copilot/mocks"
)

func TestSyntheticHandler_Generate(t *testing.T) {
	svc := new(mocks.MockSyntheticService)
	h := handler.NewSyntheticHandler(svc, new(mocks.MockExportService))

	sess := newSession()
	svc.On("Generate", mock.Anything, sess, service.SyntheticInput{Template: "diabetes_management"}).
		Return(&domain.SyntheticDataset{Prompt: "p", RawJSON: "[]", Table: &domain.Table{}}, nil)

	c, w := jsonContext(http.MethodPost, "/api/v1/synthetic/generate", handler.SyntheticRequest{Template: "diabetes_management"}, sess)
	h.Generate(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestSyntheticHandler_Generate_EmptyPrompt(t *testing.T) {
	svc := new(mocks.MockSyntheticService)
	h := handler.NewSyntheticHandler(svc, new(mocks.MockExportService))

	sess := newSession()
	svc.On("Generate", mock.Anything, sess, service.SyntheticInput{}).Return(nil, domain.ErrEmptyPrompt)

	c, w := jsonContext(http.MethodPost, "/api/v1/synthetic/generate", handler.SyntheticRequest{}, sess)
	h.Generate(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSyntheticHandler_Export_UnsupportedFormat(t *testing.T) {
	exports := new(mocks.MockExportService)
	h := handler.NewSyntheticHandler(new(mocks.MockSyntheticService), exports)

	sess := newSession()
	exports.On("Synthetic", sess, domain.ExportFormat("pdf")).Return(nil, domain.ErrUnsupportedFormat)

	c, w := newContext(http.MethodGet, "/api/v1/synthetic/export?format=pdf", nil, sess)
	h.Export(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
