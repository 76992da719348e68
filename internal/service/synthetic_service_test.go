package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"copilot/internal/domain"
	"copilot/internal/port"
	"copilot/internal/service"
	"copilot/mocks"
)

func TestSyntheticService_Generate_FromPrompt(t *testing.T) {
	model := new(mocks.MockModelGateway)
	records := new(mocks.MockRecordStore)
	svc := service.NewSyntheticService(testConfig(), testCatalog(t), model, records, nil)
	sess := newSession()

	model.On("Generate", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "3 patients from Pune")
	})).Return("```\n[{\"name\":\"Asha\",\"age\":34},{\"name\":\"Ravi\",\"city\":\"Pune\"}]\n```", nil)
	records.On("Save", mock.Anything, port.CollectionSyntheticDatasets, mock.Anything).Return("rec-9", nil)

	dataset, err := svc.Generate(context.Background(), sess, service.SyntheticInput{Prompt: "  3 patients from Pune ", Template: "ignored"})
	require.NoError(t, err)

	assert.Equal(t, "3 patients from Pune", dataset.Prompt)
	assert.Equal(t, `[{"name":"Asha","age":34},{"name":"Ravi","city":"Pune"}]`, dataset.RawJSON)
	assert.Equal(t, []string{"name", "age", "city"}, dataset.Table.Columns)
	assert.True(t, dataset.Table.Cell(1, "age").IsMissing())
	assert.Equal(t, "rec-9", dataset.RecordID)
	assert.Same(t, dataset, sess.LastDataset)
}

func TestSyntheticService_Generate_FromTemplate(t *testing.T) {
	cat := testCatalog(t)
	tmpl := cat.Templates()[0]
	model := new(mocks.MockModelGateway)
	svc := service.NewSyntheticService(testConfig(), cat, model, nil, nil)

	model.On("Generate", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, tmpl.Prompt)
	})).Return(`[]`, nil)

	dataset, err := svc.Generate(context.Background(), newSession(), service.SyntheticInput{Template: tmpl.Key})
	require.NoError(t, err)
	assert.Equal(t, tmpl.Prompt, dataset.Prompt)
	assert.Equal(t, 0, dataset.Table.Len())
}

func TestSyntheticService_Generate_Validation(t *testing.T) {
	model := new(mocks.MockModelGateway)
	svc := service.NewSyntheticService(testConfig(), testCatalog(t), model, nil, nil)

	_, err := svc.Generate(context.Background(), newSession(), service.SyntheticInput{Prompt: "   "})
	assert.ErrorIs(t, err, domain.ErrEmptyPrompt)

	_, err = svc.Generate(context.Background(), newSession(), service.SyntheticInput{Template: "does-not-exist"})
	assert.ErrorIs(t, err, domain.ErrUnknownTemplate)

	model.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestSyntheticService_Generate_Malformed(t *testing.T) {
	model := new(mocks.MockModelGateway)
	svc := service.NewSyntheticService(testConfig(), testCatalog(t), model, nil, nil)
	sess := newSession()
	model.On("Generate", mock.Anything, mock.Anything).Return(`[{"a":1}, 2]`, nil)

	_, err := svc.Generate(context.Background(), sess, service.SyntheticInput{Prompt: "data"})
	var malformed *domain.MalformedResponseError
	require.ErrorAs(t, err, &malformed)
	assert.Nil(t, sess.LastDataset)
}
