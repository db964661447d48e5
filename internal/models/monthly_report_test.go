package models_test

import (
	"github.com/estateops/backend/internal/models"
	"github.com/estateops/backend/internal/report"
	"github.com/estateops/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func (suite *TestSuiteStandard) reportFixture(propertyID uuid.UUID) models.MonthlyReport {
	return models.MonthlyReport{
		PropertyID:    propertyID,
		Month:         types.NewMonth(2026, 3),
		GeneratedByID: suite.createTestUser(models.User{Role: models.RoleManager}).ID,
		TotalBudget:   decimal.NewFromInt(1500),
		PendingAmount: decimal.NewFromInt(750),
		TotalTenants:  3,
		PaidTenants:   2,
		Breakdown: datatypes.NewJSONType([]report.Allocation{
			{Title: "Maintenance", Amount: decimal.NewFromInt(1500), Percentage: decimal.NewFromInt(100)},
		}),
	}
}

func (suite *TestSuiteStandard) TestMonthlyReportGeneratedByRequired() {
	property := suite.createTestProperty(models.Property{})

	rep := suite.reportFixture(property.ID)
	rep.GeneratedByID = uuid.Nil

	err := models.DB.Create(&rep).Error
	assert.ErrorIs(suite.T(), err, models.ErrReportGeneratedByRequired)
}

func (suite *TestSuiteStandard) TestUpsertMonthlyReportUnique() {
	property := suite.createTestProperty(models.Property{})

	first := suite.reportFixture(property.ID)
	require.Nil(suite.T(), models.UpsertMonthlyReport(&first, true))

	second := suite.reportFixture(property.ID)
	second.TotalBudget = decimal.NewFromInt(2000)
	require.Nil(suite.T(), models.UpsertMonthlyReport(&second, true))

	// Regenerating must update the existing row, never add a second one
	var count int64
	require.Nil(suite.T(), models.DB.Model(&models.MonthlyReport{}).Count(&count).Error)
	assert.Equal(suite.T(), int64(1), count)

	var saved models.MonthlyReport
	require.Nil(suite.T(), models.DB.Where("property_id = ?", property.ID).First(&saved).Error)
	assert.True(suite.T(), saved.TotalBudget.Equal(decimal.NewFromInt(2000)), "budget is %s", saved.TotalBudget)
}

func (suite *TestSuiteStandard) TestUpsertMonthlyReportPreservesNotes() {
	property := suite.createTestProperty(models.Property{})

	notes := "The roof repair ate most of the budget this month"
	first := suite.reportFixture(property.ID)
	first.Notes = &notes
	require.Nil(suite.T(), models.UpsertMonthlyReport(&first, false))

	// Regenerate without notes, preserving the existing ones
	second := suite.reportFixture(property.ID)
	require.Nil(suite.T(), models.UpsertMonthlyReport(&second, true))

	var saved models.MonthlyReport
	require.Nil(suite.T(), models.DB.Where("property_id = ?", property.ID).First(&saved).Error)
	require.NotNil(suite.T(), saved.Notes)
	assert.Equal(suite.T(), notes, *saved.Notes)

	// Regenerate with empty notes, clearing the existing ones
	empty := ""
	third := suite.reportFixture(property.ID)
	third.Notes = &empty
	require.Nil(suite.T(), models.UpsertMonthlyReport(&third, false))

	require.Nil(suite.T(), models.DB.Where("property_id = ?", property.ID).First(&saved).Error)
	require.NotNil(suite.T(), saved.Notes)
	assert.Equal(suite.T(), "", *saved.Notes)
}

func (suite *TestSuiteStandard) TestUpsertMonthlyReportAfterDelete() {
	property := suite.createTestProperty(models.Property{})

	first := suite.reportFixture(property.ID)
	require.Nil(suite.T(), models.UpsertMonthlyReport(&first, true))
	require.Nil(suite.T(), models.DB.Delete(&first).Error)

	// The deleted row must not block reporting on the same month again
	second := suite.reportFixture(property.ID)
	second.TotalBudget = decimal.NewFromInt(2000)
	require.Nil(suite.T(), models.UpsertMonthlyReport(&second, true))

	var saved models.MonthlyReport
	require.Nil(suite.T(), models.DB.Where("property_id = ?", property.ID).First(&saved).Error)
	assert.NotEqual(suite.T(), first.ID, saved.ID, "regenerating after deletion must create a new row")
	assert.True(suite.T(), saved.TotalBudget.Equal(decimal.NewFromInt(2000)), "budget is %s", saved.TotalBudget)

	var count int64
	require.Nil(suite.T(), models.DB.Model(&models.MonthlyReport{}).Count(&count).Error)
	assert.Equal(suite.T(), int64(1), count)
}

func (suite *TestSuiteStandard) TestMonthlyReportDifferentMonths() {
	property := suite.createTestProperty(models.Property{})

	first := suite.reportFixture(property.ID)
	require.Nil(suite.T(), models.UpsertMonthlyReport(&first, true))

	second := suite.reportFixture(property.ID)
	second.Month = types.NewMonth(2026, 4)
	require.Nil(suite.T(), models.UpsertMonthlyReport(&second, true))

	var count int64
	require.Nil(suite.T(), models.DB.Model(&models.MonthlyReport{}).Count(&count).Error)
	assert.Equal(suite.T(), int64(2), count)
}

func (suite *TestSuiteStandard) TestReportSources() {
	property := suite.createTestProperty(models.Property{})

	tenantOne := suite.createTestUser(models.User{Role: models.RoleTenant, PropertyID: &property.ID})
	tenantTwo := suite.createTestUser(models.User{Role: models.RoleTenant, PropertyID: &property.ID})

	// Managers living on-site must not count as tenants
	_ = suite.createTestUser(models.User{Role: models.RoleManager, PropertyID: &property.ID})

	_ = suite.createTestPayment(models.Payment{
		PropertyID: property.ID,
		TenantID:   tenantOne.ID,
		Month:      types.NewMonth(2026, 3),
		Amount:     decimal.NewFromInt(750),
		Status:     report.StatusPaid,
	})
	_ = suite.createTestPayment(models.Payment{
		PropertyID: property.ID,
		TenantID:   tenantTwo.ID,
		Month:      types.NewMonth(2026, 4),
		Amount:     decimal.NewFromInt(750),
	})

	payments, categories := models.ReportSources()

	count, err := payments.TenantCount(property.ID)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), int64(2), count)

	records, err := payments.Payments(property.ID, types.NewMonth(2026, 3))
	require.Nil(suite.T(), err)
	require.Len(suite.T(), records, 1)
	assert.Equal(suite.T(), tenantOne.ID, records[0].TenantID)

	_ = suite.createTestSpendingConfig(models.SpendingConfig{PropertyID: property.ID, Title: "Utilities"})
	_ = suite.createTestSpendingConfig(models.SpendingConfig{PropertyID: property.ID, Title: "Maintenance"})

	configured, err := categories.Categories(property.ID)
	require.Nil(suite.T(), err)
	require.Len(suite.T(), configured, 2)

	// Ordered by title
	assert.Equal(suite.T(), "Maintenance", configured[0].Title)
	assert.Equal(suite.T(), "Utilities", configured[1].Title)
}
