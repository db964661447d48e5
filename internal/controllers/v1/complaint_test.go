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

func (suite *TestSuiteStandard) TestComplaintsTenantCreate() {
	property := suite.createTestProperty(models.Property{})
	other := suite.createTestProperty(models.Property{})
	tenant := suite.createTestUser(models.User{Role: models.RoleTenant, PropertyID: &property.ID})

	// The property in the body is ignored for tenants, they always file
	// for their own
	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/complaints", []map[string]any{
		{
			"propertyId": other.ID,
			"subject":    "Broken heating",
			"body":       "The radiator in the living room leaks.",
			"status":     "resolved",
		},
	}, suite.authHeaders(tenant))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.ComplaintCreateResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	require.Len(suite.T(), response.Data, 1)
	require.NotNil(suite.T(), response.Data[0].Data)
	assert.Equal(suite.T(), property.ID, response.Data[0].Data.PropertyID)
	assert.Equal(suite.T(), tenant.ID, response.Data[0].Data.TenantID)
	assert.Equal(suite.T(), models.ComplaintOpen, response.Data[0].Data.Status, "tenants cannot set a status")
}

func (suite *TestSuiteStandard) TestComplaintsTenantWithoutProperty() {
	tenant := suite.createTestUser(models.User{Role: models.RoleTenant})

	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/complaints", []map[string]any{
		{"subject": "Broken heating"},
	}, suite.authHeaders(tenant))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestComplaintsManagerResolve() {
	property := suite.createTestProperty(models.Property{})
	tenant := suite.createTestUser(models.User{Role: models.RoleTenant, PropertyID: &property.ID})

	complaint := models.Complaint{
		PropertyID: property.ID,
		TenantID:   tenant.ID,
		Subject:    "Broken heating",
	}
	require.Nil(suite.T(), models.DB.Create(&complaint).Error)

	recorder := test.Request(suite.T(), suite.router, http.MethodPatch, fmt.Sprintf("/v1/complaints/%s", complaint.ID), map[string]any{
		"status": "resolved",
	}, suite.authHeaders(suite.manager(property)))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.ComplaintResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	require.NotNil(suite.T(), response.Data)
	assert.Equal(suite.T(), models.ComplaintResolved, response.Data.Status)

	// Tenants cannot change the status
	recorder = test.Request(suite.T(), suite.router, http.MethodPatch, fmt.Sprintf("/v1/complaints/%s", complaint.ID), map[string]any{
		"status": "open",
	}, suite.authHeaders(tenant))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusForbidden)
}

func (suite *TestSuiteStandard) TestComplaintsScoping() {
	property := suite.createTestProperty(models.Property{})
	tenant := suite.createTestUser(models.User{Role: models.RoleTenant, PropertyID: &property.ID})
	neighbor := suite.createTestUser(models.User{Role: models.RoleTenant, PropertyID: &property.ID})

	mine := models.Complaint{PropertyID: property.ID, TenantID: tenant.ID, Subject: "Broken heating"}
	require.Nil(suite.T(), models.DB.Create(&mine).Error)

	foreign := models.Complaint{PropertyID: property.ID, TenantID: neighbor.ID, Subject: "Noisy neighbors"}
	require.Nil(suite.T(), models.DB.Create(&foreign).Error)

	// Tenants see only their own complaints
	recorder := test.Request(suite.T(), suite.router, http.MethodGet, "/v1/complaints", "", suite.authHeaders(tenant))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var list v1.ComplaintListResponse
	test.DecodeResponse(suite.T(), &recorder, &list)
	require.Len(suite.T(), list.Data, 1)
	assert.Equal(suite.T(), "Broken heating", list.Data[0].Subject)

	// The manager sees both
	recorder = test.Request(suite.T(), suite.router, http.MethodGet, "/v1/complaints", "", suite.authHeaders(suite.manager(property)))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	test.DecodeResponse(suite.T(), &recorder, &list)
	assert.Len(suite.T(), list.Data, 2)
}
