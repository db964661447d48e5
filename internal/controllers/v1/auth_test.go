package v1_test

import (
	"net/http"

	v1 "github.com/estateops/backend/internal/controllers/v1"
	"github.com/estateops/backend/internal/models"
	"github.com/estateops/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestRegisterAndLogin() {
	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/auth/register", map[string]any{
		"name":     "Jonas Brekke",
		"email":    "jonas@example.com",
		"password": "correct horse battery staple",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var registered v1.LoginResponse
	test.DecodeResponse(suite.T(), &recorder, &registered)
	require.NotNil(suite.T(), registered.Data)
	assert.NotEmpty(suite.T(), registered.Data.Token)
	assert.Equal(suite.T(), models.RoleTenant, registered.Data.User.Role, "public registration must always create a tenant")

	recorder = test.Request(suite.T(), suite.router, http.MethodPost, "/v1/auth/login", map[string]any{
		"email":    "jonas@example.com",
		"password": "correct horse battery staple",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var loggedIn v1.LoginResponse
	test.DecodeResponse(suite.T(), &recorder, &loggedIn)
	require.NotNil(suite.T(), loggedIn.Data)

	// The token works against a protected endpoint
	recorder = test.Request(suite.T(), suite.router, http.MethodGet, "/v1/properties", "", map[string]string{
		"Authorization": "Bearer " + loggedIn.Data.Token,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
}

func (suite *TestSuiteStandard) TestLoginFailures() {
	user := suite.createTestUser(models.User{Email: "jonas@example.com"})
	require.Nil(suite.T(), user.SetPassword("correct horse battery staple"))
	require.Nil(suite.T(), models.DB.Model(&user).Select("password_hash").Updates(&user).Error)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "jonas@example.com", "incorrect horse"},
		{"unknown email", "nobody@example.com", "correct horse battery staple"},
	}

	for _, tt := range tests {
		recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/auth/login", map[string]any{
			"email":    tt.email,
			"password": tt.password,
		})
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusUnauthorized)

		// Unknown accounts and wrong passwords are indistinguishable
		var response v1.LoginResponse
		test.DecodeResponse(suite.T(), &recorder, &response)
		require.NotNil(suite.T(), response.Error, tt.name)
		assert.Equal(suite.T(), "the email or password is incorrect", *response.Error, tt.name)
	}
}

func (suite *TestSuiteStandard) TestProtectedWithoutToken() {
	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/v1/properties"},
		{http.MethodGet, "/v1/payments"},
		{http.MethodGet, "/v1/reports"},
		{http.MethodPost, "/v1/reports/generate"},
	}

	for _, tt := range tests {
		recorder := test.Request(suite.T(), suite.router, tt.method, tt.path, "")
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusUnauthorized)
	}
}
