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

func (suite *TestSuiteStandard) TestPropertiesCreateAdminOnly() {
	manager := suite.createTestUser(models.User{Role: models.RoleManager})

	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/properties", []map[string]any{
		{"name": "Sunset Apartments", "managerId": manager.ID},
	}, suite.authHeaders(manager))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusForbidden)

	admin := suite.createTestUser(models.User{Role: models.RoleAdmin})
	recorder = test.Request(suite.T(), suite.router, http.MethodPost, "/v1/properties", []map[string]any{
		{"name": "Sunset Apartments", "address": "12 Harbour Street", "city": "Rotterdam", "managerId": manager.ID},
	}, suite.authHeaders(admin))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.PropertyCreateResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	require.Len(suite.T(), response.Data, 1)
	require.NotNil(suite.T(), response.Data[0].Data)
	assert.Equal(suite.T(), manager.ID, response.Data[0].Data.ManagerID)
	assert.Contains(suite.T(), response.Data[0].Data.Links.Self, "/v1/properties/")
}

func (suite *TestSuiteStandard) TestPropertiesScoping() {
	mine := suite.createTestProperty(models.Property{Name: "Mine"})
	other := suite.createTestProperty(models.Property{Name: "Somebody else's"})

	headers := suite.authHeaders(suite.manager(mine))

	recorder := test.Request(suite.T(), suite.router, http.MethodGet, "/v1/properties", "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var list v1.PropertyListResponse
	test.DecodeResponse(suite.T(), &recorder, &list)
	require.Len(suite.T(), list.Data, 1)
	assert.Equal(suite.T(), "Mine", list.Data[0].Name)

	// Somebody else's property is not visible, even directly
	recorder = test.Request(suite.T(), suite.router, http.MethodGet, fmt.Sprintf("/v1/properties/%s", other.ID), "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)

	// Admins see everything
	admin := suite.createTestUser(models.User{Role: models.RoleAdmin})
	recorder = test.Request(suite.T(), suite.router, http.MethodGet, "/v1/properties", "", suite.authHeaders(admin))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	test.DecodeResponse(suite.T(), &recorder, &list)
	assert.Len(suite.T(), list.Data, 2)
}

func (suite *TestSuiteStandard) TestPropertiesTenantSeesOwn() {
	property := suite.createTestProperty(models.Property{Name: "Sunset Apartments"})
	_ = suite.createTestProperty(models.Property{Name: "Elsewhere"})

	tenant := suite.createTestUser(models.User{Role: models.RoleTenant, PropertyID: &property.ID})

	recorder := test.Request(suite.T(), suite.router, http.MethodGet, "/v1/properties", "", suite.authHeaders(tenant))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var list v1.PropertyListResponse
	test.DecodeResponse(suite.T(), &recorder, &list)
	require.Len(suite.T(), list.Data, 1)
	assert.Equal(suite.T(), "Sunset Apartments", list.Data[0].Name)
}

func (suite *TestSuiteStandard) TestPropertiesUpdate() {
	property := suite.createTestProperty(models.Property{Name: "Sunset Apartments", City: "Rotterdam"})

	recorder := test.Request(suite.T(), suite.router, http.MethodPatch, fmt.Sprintf("/v1/properties/%s", property.ID), map[string]any{
		"city": "Utrecht",
	}, suite.authHeaders(suite.manager(property)))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.PropertyResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	require.NotNil(suite.T(), response.Data)
	assert.Equal(suite.T(), "Utrecht", response.Data.City)
	assert.Equal(suite.T(), "Sunset Apartments", response.Data.Name, "a partial update must not clear other fields")
}

func (suite *TestSuiteStandard) TestPropertiesPagination() {
	admin := suite.createTestUser(models.User{Role: models.RoleAdmin})

	for i := 0; i < 5; i++ {
		_ = suite.createTestProperty(models.Property{Name: fmt.Sprintf("Block %d", i)})
	}

	recorder := test.Request(suite.T(), suite.router, http.MethodGet, "/v1/properties?limit=2&offset=2", "", suite.authHeaders(admin))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var list v1.PropertyListResponse
	test.DecodeResponse(suite.T(), &recorder, &list)
	require.NotNil(suite.T(), list.Pagination)
	assert.Len(suite.T(), list.Data, 2)
	assert.Equal(suite.T(), int64(5), list.Pagination.Total)
	assert.Equal(suite.T(), uint(2), list.Pagination.Offset)
	assert.Equal(suite.T(), 2, list.Pagination.Limit)
}
