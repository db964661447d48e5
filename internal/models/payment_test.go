package models_test

import (
	"github.com/estateops/backend/internal/models"
	"github.com/estateops/backend/internal/report"
	"github.com/estateops/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestPaymentDefaultStatus() {
	property := suite.createTestProperty(models.Property{Name: "Sunset Apartments"})
	tenant := suite.createTestUser(models.User{Role: models.RoleTenant, PropertyID: &property.ID})

	payment := suite.createTestPayment(models.Payment{
		PropertyID: property.ID,
		TenantID:   tenant.ID,
		Month:      types.NewMonth(2026, 3),
		Amount:     decimal.NewFromInt(750),
	})

	assert.Equal(suite.T(), report.StatusPending, payment.Status)
}

func (suite *TestSuiteStandard) TestPaymentInvalidStatus() {
	property := suite.createTestProperty(models.Property{})
	tenant := suite.createTestUser(models.User{Role: models.RoleTenant, PropertyID: &property.ID})

	err := models.DB.Create(&models.Payment{
		PropertyID: property.ID,
		TenantID:   tenant.ID,
		Month:      types.NewMonth(2026, 3),
		Amount:     decimal.NewFromInt(750),
		Status:     "maybe",
	}).Error

	assert.ErrorIs(suite.T(), err, models.ErrPaymentStatusInvalid)
}

func (suite *TestSuiteStandard) TestPaymentAmountPositive() {
	property := suite.createTestProperty(models.Property{})
	tenant := suite.createTestUser(models.User{Role: models.RoleTenant, PropertyID: &property.ID})

	tests := []struct {
		name   string
		amount decimal.Decimal
	}{
		{"zero", decimal.Zero},
		{"negative", decimal.NewFromInt(-750)},
	}

	for _, tt := range tests {
		err := models.DB.Create(&models.Payment{
			PropertyID: property.ID,
			TenantID:   tenant.ID,
			Month:      types.NewMonth(2026, 3),
			Amount:     tt.amount,
		}).Error

		assert.ErrorIs(suite.T(), err, models.ErrPaymentAmountNotPositive, tt.name)
	}
}

func (suite *TestSuiteStandard) TestPaymentTenantMonthUnique() {
	property := suite.createTestProperty(models.Property{})
	tenant := suite.createTestUser(models.User{Role: models.RoleTenant, PropertyID: &property.ID})

	_ = suite.createTestPayment(models.Payment{
		PropertyID: property.ID,
		TenantID:   tenant.ID,
		Month:      types.NewMonth(2026, 3),
		Amount:     decimal.NewFromInt(750),
	})

	err := models.DB.Create(&models.Payment{
		PropertyID: property.ID,
		TenantID:   tenant.ID,
		Month:      types.NewMonth(2026, 3),
		Amount:     decimal.NewFromInt(800),
	}).Error

	assert.ErrorIs(suite.T(), err, models.ErrPaymentMonthNotUnique)
}

func (suite *TestSuiteStandard) TestPaymentRebookAfterDelete() {
	property := suite.createTestProperty(models.Property{})
	tenant := suite.createTestUser(models.User{Role: models.RoleTenant, PropertyID: &property.ID})

	payment := suite.createTestPayment(models.Payment{
		PropertyID: property.ID,
		TenantID:   tenant.ID,
		Month:      types.NewMonth(2026, 3),
		Amount:     decimal.NewFromInt(750),
	})
	require.Nil(suite.T(), models.DB.Delete(&payment).Error)

	// Correcting a mis-booked payment by delete-and-rebook must work for
	// the same tenant and month
	err := models.DB.Create(&models.Payment{
		PropertyID: property.ID,
		TenantID:   tenant.ID,
		Month:      types.NewMonth(2026, 3),
		Amount:     decimal.NewFromInt(800),
	}).Error
	assert.Nil(suite.T(), err)
}

func (suite *TestSuiteStandard) TestPaymentUpdateKeepsValidation() {
	property := suite.createTestProperty(models.Property{})
	tenant := suite.createTestUser(models.User{Role: models.RoleTenant, PropertyID: &property.ID})

	payment := suite.createTestPayment(models.Payment{
		PropertyID: property.ID,
		TenantID:   tenant.ID,
		Month:      types.NewMonth(2026, 3),
		Amount:     decimal.NewFromInt(750),
	})

	err := models.DB.Model(&payment).Select("", "Status").Updates(models.Payment{Status: "maybe"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrPaymentStatusInvalid)

	// A partial update of another field must not trip the status check
	err = models.DB.Model(&payment).Select("", "Amount").Updates(models.Payment{Amount: decimal.NewFromInt(800)}).Error
	assert.Nil(suite.T(), err)
}
