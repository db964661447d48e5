package v1_test

import (
	"fmt"
	"net/http"

	v1 "github.com/estateops/backend/internal/controllers/v1"
	"github.com/estateops/backend/internal/models"
	"github.com/estateops/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestSpendingConfigsCreate() {
	property := suite.createTestProperty(models.Property{})

	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/spending-configs", []map[string]any{
		{"propertyId": property.ID, "title": "Maintenance", "description": "Repairs and upkeep"},
	}, suite.authHeaders(suite.manager(property)))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.SpendingConfigCreateResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	require.Len(suite.T(), response.Data, 1)
	require.NotNil(suite.T(), response.Data[0].Data)
	assert.Contains(suite.T(), response.Data[0].Data.Links.Property, fmt.Sprintf("/v1/properties/%s", property.ID))
}

func (suite *TestSuiteStandard) TestSpendingConfigsDuplicateTitle() {
	property := suite.createTestProperty(models.Property{})
	_ = suite.createTestSpendingConfig(models.SpendingConfig{PropertyID: property.ID, Title: "Maintenance"})

	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/spending-configs", []map[string]any{
		{"propertyId": property.ID, "title": "Maintenance"},
	}, suite.authHeaders(suite.manager(property)))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	var response v1.SpendingConfigCreateResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	require.Len(suite.T(), response.Data, 1)
	require.NotNil(suite.T(), response.Data[0].Error)
	assert.Equal(suite.T(), models.ErrSpendingTitleNotUnique.Error(), *response.Data[0].Error)
}

func (suite *TestSuiteStandard) TestSpendingConfigsCreateUnmanagedProperty() {
	property := suite.createTestProperty(models.Property{})
	other := suite.createTestUser(models.User{Role: models.RoleManager})

	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/spending-configs", []map[string]any{
		{"propertyId": property.ID, "title": "Maintenance"},
	}, suite.authHeaders(other))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestSpendingConfigsScoping() {
	property := suite.createTestProperty(models.Property{})
	other := suite.createTestProperty(models.Property{})

	mine := suite.createTestSpendingConfig(models.SpendingConfig{PropertyID: property.ID, Title: "Maintenance"})
	foreign := suite.createTestSpendingConfig(models.SpendingConfig{PropertyID: other.ID, Title: "Utilities"})

	headers := suite.authHeaders(suite.manager(property))

	recorder := test.Request(suite.T(), suite.router, http.MethodGet, "/v1/spending-configs", "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var list v1.SpendingConfigListResponse
	test.DecodeResponse(suite.T(), &recorder, &list)
	require.Len(suite.T(), list.Data, 1)
	assert.Equal(suite.T(), mine.ID, list.Data[0].ID)

	recorder = test.Request(suite.T(), suite.router, http.MethodGet, fmt.Sprintf("/v1/spending-configs/%s", foreign.ID), "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)

	// Tenants see the categories of their own property
	tenant := suite.createTestUser(models.User{Role: models.RoleTenant, PropertyID: &property.ID})
	recorder = test.Request(suite.T(), suite.router, http.MethodGet, "/v1/spending-configs", "", suite.authHeaders(tenant))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	test.DecodeResponse(suite.T(), &recorder, &list)
	require.Len(suite.T(), list.Data, 1)
	assert.Equal(suite.T(), "Maintenance", list.Data[0].Title)
}

func (suite *TestSuiteStandard) TestSpendingConfigsTitleSearch() {
	property := suite.createTestProperty(models.Property{})
	_ = suite.createTestSpendingConfig(models.SpendingConfig{PropertyID: property.ID, Title: "Maintenance"})
	_ = suite.createTestSpendingConfig(models.SpendingConfig{PropertyID: property.ID, Title: "Utilities"})

	recorder := test.Request(suite.T(), suite.router, http.MethodGet, "/v1/spending-configs?title=mainten", "", suite.authHeaders(suite.manager(property)))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var list v1.SpendingConfigListResponse
	test.DecodeResponse(suite.T(), &recorder, &list)
	require.Len(suite.T(), list.Data, 1)
	assert.Equal(suite.T(), "Maintenance", list.Data[0].Title)
}

func (suite *TestSuiteStandard) TestSpendingConfigsUpdateDelete() {
	property := suite.createTestProperty(models.Property{})
	config := suite.createTestSpendingConfig(models.SpendingConfig{PropertyID: property.ID, Title: "Maintenance"})

	headers := suite.authHeaders(suite.manager(property))

	recorder := test.Request(suite.T(), suite.router, http.MethodPatch, fmt.Sprintf("/v1/spending-configs/%s", config.ID), map[string]any{
		"description": "Repairs, upkeep and inspections",
	}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var updated models.SpendingConfig
	require.Nil(suite.T(), models.DB.First(&updated, config.ID).Error)
	assert.Equal(suite.T(), "Maintenance", updated.Title, "a partial update must not clear the title")
	assert.Equal(suite.T(), "Repairs, upkeep and inspections", updated.Description)

	recorder = test.Request(suite.T(), suite.router, http.MethodDelete, fmt.Sprintf("/v1/spending-configs/%s", config.ID), "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = test.Request(suite.T(), suite.router, http.MethodGet, fmt.Sprintf("/v1/spending-configs/%s", config.ID), "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}
