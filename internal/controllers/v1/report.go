package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/estateops/backend/internal/httputil"
	"github.com/estateops/backend/internal/models"
	"github.com/estateops/backend/internal/report"
	"github.com/estateops/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
	"gorm.io/datatypes"
)

// RegisterReportRoutes registers the routes for monthly reports with
// the RouterGroup that is passed.
func RegisterReportRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsReportList)
		r.GET("", GetReports)
		r.GET("/preview", GetReportPreview)
		r.POST("/generate", GenerateReport)
	}

	// Report with ID
	{
		r.OPTIONS("/:id", OptionsReportDetail)
		r.GET("/:id", GetReport)
		r.PATCH("/:id", UpdateReport)
		r.DELETE("/:id", DeleteReport)
	}
}

// reportEngine returns the engine wired to the database-backed sources.
func reportEngine() report.Engine {
	payments, categories := models.ReportSources()
	return report.New(payments, categories, cfg.Report.AllocationTolerance)
}

// reportMonth validates the integer month and year of a request and returns
// the Month they denote.
func reportMonth(month, year int) (types.Month, error) {
	if month < 1 || month > 12 {
		return types.Month{}, errMonthOutOfRange
	}

	if year <= 0 {
		return types.Month{}, errYearOutOfRange
	}

	return types.NewMonth(year, time.Month(month)), nil
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Reports
// @Success		204
// @Router			/v1/reports [options]
func OptionsReportList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Reports
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/reports/{id} [options]
func OptionsReportDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	user := currentUser(c)

	err = models.DB.
		Where("property_id IN (?)", manageableProperties(user)).
		First(&models.MonthlyReport{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		List reports
// @Description	Returns the monthly reports of the properties the user manages
// @Tags			Reports
// @Produce		json
// @Success		200	{object}	ReportListResponse
// @Failure		400	{object}	ReportListResponse
// @Failure		500	{object}	ReportListResponse
// @Router			/v1/reports [get]
// @Param			property	query	string	false	"Filter by property"
// @Param			year		query	int		false	"Filter by calendar year"
// @Param			offset		query	uint	false	"The offset of the first report returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of reports to return. Defaults to 50."
func GetReports(c *gin.Context) {
	user := currentUser(c)

	var filter ReportQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we're filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	var reports []models.MonthlyReport

	q := models.DB.
		Order("month DESC").
		Where(filter.model(), queryFields...).
		Where("property_id IN (?)", manageableProperties(user))

	if slices.Contains(setFields, "Year") {
		if filter.Year <= 0 {
			e := errYearOutOfRange.Error()
			c.JSON(status(errYearOutOfRange), ReportListResponse{
				Error: &e,
			})
			return
		}

		from := types.NewMonth(filter.Year, time.January)
		q = q.Where("month >= ? AND month < ?", from, from.AddDate(1, 0))
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 reports and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	err := q.Find(&reports).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ReportListResponse{
			Error: &e,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ReportListResponse{
			Error: &e,
		})
		return
	}

	apiResources := make([]Report, 0)
	for _, r := range reports {
		apiResources = append(apiResources, newReport(c, r))
	}

	c.JSON(http.StatusOK, ReportListResponse{
		Data: apiResources,
		Pagination: &Pagination{
			Count:  len(apiResources),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Preview report
// @Description	Computes the summary for a property and month without saving anything
// @Tags			Reports
// @Produce		json
// @Success		200	{object}	ReportPreviewResponse
// @Failure		400	{object}	ReportPreviewResponse
// @Failure		404	{object}	ReportPreviewResponse
// @Failure		500	{object}	ReportPreviewResponse
// @Router			/v1/reports/preview [get]
// @Param			property	query	string	true	"The property to preview"
// @Param			month		query	int		true	"The calendar month, 1 to 12"
// @Param			year		query	int		true	"The calendar year"
func GetReportPreview(c *gin.Context) {
	var query ReportPreviewQuery
	_ = c.Bind(&query)

	if query.PropertyID.UUID == uuid.Nil {
		e := errPropertyParameter.Error()
		c.JSON(status(errPropertyParameter), ReportPreviewResponse{
			Error: &e,
		})
		return
	}

	month, err := reportMonth(query.Month, query.Year)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ReportPreviewResponse{
			Error: &e,
		})
		return
	}

	property, err := manageableProperty(c, query.PropertyID.UUID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ReportPreviewResponse{
			Error: &e,
		})
		return
	}

	engine := reportEngine()

	summary, err := engine.Summarize(property.ID, month)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ReportPreviewResponse{
			Error: &e,
		})
		return
	}

	categories, err := engine.PropertyCategories(property.ID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ReportPreviewResponse{
			Error: &e,
		})
		return
	}

	var payments []models.Payment
	err = models.DB.
		Where(&models.Payment{PropertyID: property.ID, Month: month}).
		Order("created_at ASC").
		Find(&payments).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ReportPreviewResponse{
			Error: &e,
		})
		return
	}

	apiPayments := make([]Payment, 0, len(payments))
	for _, payment := range payments {
		apiPayments = append(apiPayments, newPayment(c, payment))
	}

	c.JSON(http.StatusOK, ReportPreviewResponse{
		Data: &ReportPreview{
			Summary:    summary,
			Categories: categories,
			Payments:   apiPayments,
		},
	})
}

// @Summary		Generate report
// @Description	Generates the monthly report for a property. Regenerating an existing month overwrites its figures atomically; notes are preserved unless sent.
// @Tags			Reports
// @Accept			json
// @Produce		json
// @Success		200		{object}	ReportResponse
// @Success		201		{object}	ReportResponse
// @Failure		400		{object}	ReportResponse
// @Failure		404		{object}	ReportResponse
// @Failure		500		{object}	ReportResponse
// @Param			report	body		ReportGenerateRequest	true	"Report"
// @Router			/v1/reports/generate [post]
func GenerateReport(c *gin.Context) {
	var request ReportGenerateRequest

	err := httputil.BindData(c, &request)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ReportResponse{
			Error: &e,
		})
		return
	}

	month, err := reportMonth(request.Month, request.Year)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ReportResponse{
			Error: &e,
		})
		return
	}

	property, err := manageableProperty(c, request.PropertyID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ReportResponse{
			Error: &e,
		})
		return
	}

	engine := reportEngine()

	summary, err := engine.Summarize(property.ID, month)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ReportResponse{
			Error: &e,
		})
		return
	}

	explicit := allocationModels(request.Allocations)

	var categories []report.Category
	if len(explicit) == 0 {
		categories, err = engine.PropertyCategories(property.ID)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), ReportResponse{
				Error: &e,
			})
			return
		}
	}

	allocations := engine.Allocations(summary, categories, explicit)

	// Client-supplied breakdowns must add up to the collected budget.
	// The equal split is derived from it, so it always does.
	if len(explicit) > 0 {
		allocations, err = engine.Reconcile(summary.TotalBudget, allocations)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), ReportResponse{
				Error: &e,
			})
			return
		}
	}

	// Whether the month already has a report only decides the response
	// status. Uniqueness is enforced by the upsert itself.
	wasCreated := false
	err = models.DB.
		Where("property_id = ? AND month = ?", property.ID, month).
		First(&models.MonthlyReport{}).Error
	if err != nil {
		if !errors.Is(err, models.ErrResourceNotFound) {
			e := err.Error()
			c.JSON(status(err), ReportResponse{
				Error: &e,
			})
			return
		}
		wasCreated = true
	}

	user := currentUser(c)

	rep := models.MonthlyReport{
		PropertyID:    property.ID,
		Month:         month,
		GeneratedByID: user.ID,
		TotalBudget:   summary.TotalBudget,
		PendingAmount: summary.PendingAmount,
		TotalTenants:  summary.TotalTenants,
		PaidTenants:   summary.PaidTenants,
		Breakdown:     datatypes.NewJSONType(allocations),
		Notes:         request.Notes,
	}

	err = models.UpsertMonthlyReport(&rep, request.Notes == nil)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ReportResponse{
			Error: &e,
		})
		return
	}

	// Read the row back: on a regeneration the upsert leaves the struct
	// with the losing insert's ID and the preserved notes are not in it
	err = models.DB.
		Where("property_id = ? AND month = ?", property.ID, month).
		First(&rep).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ReportResponse{
			Error: &e,
		})
		return
	}

	s := http.StatusOK
	if wasCreated {
		s = http.StatusCreated
	}

	apiResource := newReport(c, rep)
	c.JSON(s, ReportResponse{Data: &apiResource})
}

// @Summary		Get report
// @Description	Returns a specific monthly report
// @Tags			Reports
// @Produce		json
// @Success		200	{object}	ReportResponse
// @Failure		400	{object}	ReportResponse
// @Failure		404	{object}	ReportResponse
// @Failure		500	{object}	ReportResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/reports/{id} [get]
func GetReport(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ReportResponse{
			Error: &s,
		})
		return
	}

	user := currentUser(c)

	var rep models.MonthlyReport
	err = models.DB.
		Where("property_id IN (?)", manageableProperties(user)).
		First(&rep, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ReportResponse{
			Error: &s,
		})
		return
	}

	apiResource := newReport(c, rep)
	c.JSON(http.StatusOK, ReportResponse{Data: &apiResource})
}

// @Summary		Update report
// @Description	Updates the notes or replaces the spending breakdown of an existing report. The figures themselves can only change through regeneration.
// @Tags			Reports
// @Accept			json
// @Produce		json
// @Success		200		{object}	ReportResponse
// @Failure		400		{object}	ReportResponse
// @Failure		404		{object}	ReportResponse
// @Failure		500		{object}	ReportResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			report	body		ReportEditable	true	"Report"
// @Router			/v1/reports/{id} [patch]
func UpdateReport(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ReportResponse{
			Error: &s,
		})
		return
	}

	user := currentUser(c)

	var rep models.MonthlyReport
	err = models.DB.
		Where("property_id IN (?)", manageableProperties(user)).
		First(&rep, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ReportResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, ReportEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ReportResponse{
			Error: &s,
		})
		return
	}

	var data ReportEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ReportResponse{
			Error: &s,
		})
		return
	}

	// Notes are tri-state: an absent key preserves them, an empty string
	// clears them
	if slices.Contains(updateFields, any("Notes")) {
		rep.Notes = data.Notes
	}

	if slices.Contains(updateFields, any("Allocations")) {
		allocations, err := reportEngine().Reconcile(rep.TotalBudget, allocationModels(data.Allocations))
		if err != nil {
			s := err.Error()
			c.JSON(status(err), ReportResponse{
				Error: &s,
			})
			return
		}

		rep.Breakdown = datatypes.NewJSONType(allocations)
	}

	err = models.DB.Save(&rep).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ReportResponse{
			Error: &s,
		})
		return
	}

	apiResource := newReport(c, rep)
	c.JSON(http.StatusOK, ReportResponse{Data: &apiResource})
}

// @Summary		Delete report
// @Description	Deletes a monthly report
// @Tags			Reports
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/reports/{id} [delete]
func DeleteReport(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	user := currentUser(c)

	var rep models.MonthlyReport
	err = models.DB.
		Where("property_id IN (?)", manageableProperties(user)).
		First(&rep, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&rep).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
