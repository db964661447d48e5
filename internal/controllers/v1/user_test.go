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

func (suite *TestSuiteStandard) TestUsersAdminOnly() {
	manager := suite.createTestUser(models.User{Role: models.RoleManager})
	tenant := suite.createTestUser(models.User{Role: models.RoleTenant})

	for _, user := range []models.User{manager, tenant} {
		recorder := test.Request(suite.T(), suite.router, http.MethodGet, "/v1/users", "", suite.authHeaders(user))
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusForbidden)
	}
}

func (suite *TestSuiteStandard) TestUsersCreate() {
	admin := suite.createTestUser(models.User{Role: models.RoleAdmin})

	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/users", []map[string]any{
		{"name": "New Manager", "email": "manager@example.com", "password": "correct horse battery staple", "role": "manager"},
	}, suite.authHeaders(admin))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.UserCreateResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	require.Len(suite.T(), response.Data, 1)
	require.NotNil(suite.T(), response.Data[0].Data)
	assert.Equal(suite.T(), models.RoleManager, response.Data[0].Data.Role)

	// The password hash never leaves the backend
	assert.NotContains(suite.T(), recorder.Body.String(), "password")
}

func (suite *TestSuiteStandard) TestUsersCreateDuplicateEmail() {
	admin := suite.createTestUser(models.User{Role: models.RoleAdmin})
	existing := suite.createTestUser(models.User{})

	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/users", []map[string]any{
		{"name": "Double", "email": existing.Email, "password": "correct horse battery staple"},
	}, suite.authHeaders(admin))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	var response v1.UserCreateResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	require.Len(suite.T(), response.Data, 1)
	require.NotNil(suite.T(), response.Data[0].Error)
	assert.Equal(suite.T(), models.ErrUserEmailNotUnique.Error(), *response.Data[0].Error)
}

func (suite *TestSuiteStandard) TestUsersUpdatePassword() {
	admin := suite.createTestUser(models.User{Role: models.RoleAdmin})
	user := suite.createTestUser(models.User{Email: "jonas@example.com"})

	recorder := test.Request(suite.T(), suite.router, http.MethodPatch, fmt.Sprintf("/v1/users/%s", user.ID), map[string]any{
		"password": "a brand new passphrase",
	}, suite.authHeaders(admin))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var updated models.User
	require.Nil(suite.T(), models.DB.First(&updated, user.ID).Error)
	assert.True(suite.T(), updated.CheckPassword("a brand new passphrase"))
}

func (suite *TestSuiteStandard) TestUsersOptions() {
	admin := suite.createTestUser(models.User{Role: models.RoleAdmin})

	recorder := test.Request(suite.T(), suite.router, http.MethodOptions, "/v1/users", "", suite.authHeaders(admin))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
	assert.Equal(suite.T(), "GET, POST", recorder.Header().Get("allow"))

	recorder = test.Request(suite.T(), suite.router, http.MethodOptions, fmt.Sprintf("/v1/users/%s", admin.ID), "", suite.authHeaders(admin))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
	assert.Equal(suite.T(), "GET, PATCH, DELETE", recorder.Header().Get("allow"))
}
