package v1

import (
	"net/http"

	"github.com/estateops/backend/internal/httputil"
	"github.com/estateops/backend/internal/models"
	"github.com/estateops/backend/internal/types"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterPaymentRoutes registers the routes for payments with
// the RouterGroup that is passed.
func RegisterPaymentRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsPaymentList)
		r.GET("", GetPayments)
		r.POST("", RequireRole(models.RoleAdmin, models.RoleManager), CreatePayments)
	}

	// Payment with ID
	{
		r.OPTIONS("/:id", OptionsPaymentDetail)
		r.GET("/:id", GetPayment)
		r.PATCH("/:id", RequireRole(models.RoleAdmin, models.RoleManager), UpdatePayment)
		r.DELETE("/:id", RequireRole(models.RoleAdmin, models.RoleManager), DeletePayment)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Payments
// @Success		204
// @Router			/v1/payments [options]
func OptionsPaymentList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Payments
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/payments/{id} [options]
func OptionsPaymentDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Payment{})
}

// @Summary		Create payments
// @Description	Creates new payments
// @Tags			Payments
// @Accept			json
// @Produce		json
// @Success		201			{object}	PaymentCreateResponse
// @Failure		400			{object}	PaymentCreateResponse
// @Failure		404			{object}	PaymentCreateResponse
// @Failure		500			{object}	PaymentCreateResponse
// @Param			payments	body		[]PaymentEditable	true	"Payments"
// @Router			/v1/payments [post]
func CreatePayments(c *gin.Context) {
	var editables []PaymentEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PaymentCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	s := http.StatusCreated
	r := PaymentCreateResponse{}

	for _, editable := range editables {
		// Managers may only book payments for properties they manage
		_, err := manageableProperty(c, editable.PropertyID)
		if err != nil {
			s = r.appendError(err, s)
			continue
		}

		payment := editable.model()

		err = models.DB.Create(&payment).Error
		if err != nil {
			s = r.appendError(err, s)
			continue
		}

		data := newPayment(c, payment)
		r.Data = append(r.Data, PaymentResponse{Data: &data})
	}

	c.JSON(s, r)
}

// @Summary		List payments
// @Description	Returns a list of payments
// @Tags			Payments
// @Produce		json
// @Success		200	{object}	PaymentListResponse
// @Failure		400	{object}	PaymentListResponse
// @Failure		500	{object}	PaymentListResponse
// @Router			/v1/payments [get]
// @Param			property	query	string	false	"Filter by property"
// @Param			tenant		query	string	false	"Filter by tenant"
// @Param			month		query	string	false	"Filter by month, formatted as YYYY-MM"
// @Param			status		query	string	false	"Filter by payment status"
// @Param			offset		query	uint	false	"The offset of the first payment returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of payments to return. Defaults to 50."
func GetPayments(c *gin.Context) {
	user := currentUser(c)

	var filter PaymentQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we're filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	var payments []models.Payment

	q := models.DB.
		Order("month DESC, created_at ASC").
		Where(filter.model(), queryFields...)

	// Tenants only see their own payments, managers those of the
	// properties they manage. Admins see everything.
	switch user.Role {
	case models.RoleManager:
		q = q.Where("property_id IN (?)", manageableProperties(user))
	case models.RoleTenant:
		q = q.Where("tenant_id = ?", user.ID)
	}

	if filter.Month != "" {
		month, err := types.ParseMonth(filter.Month)
		if err != nil {
			e := errMonthInvalid.Error()
			c.JSON(status(errMonthInvalid), PaymentListResponse{
				Error: &e,
			})
			return
		}
		q = q.Where("month = ?", month)
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 payments and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	err := q.Find(&payments).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PaymentListResponse{
			Error: &e,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PaymentListResponse{
			Error: &e,
		})
		return
	}

	apiResources := make([]Payment, 0)
	for _, payment := range payments {
		apiResources = append(apiResources, newPayment(c, payment))
	}

	c.JSON(http.StatusOK, PaymentListResponse{
		Data: apiResources,
		Pagination: &Pagination{
			Count:  len(apiResources),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get payment
// @Description	Returns a specific payment
// @Tags			Payments
// @Produce		json
// @Success		200	{object}	PaymentResponse
// @Failure		400	{object}	PaymentResponse
// @Failure		404	{object}	PaymentResponse
// @Failure		500	{object}	PaymentResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/payments/{id} [get]
func GetPayment(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PaymentResponse{
			Error: &s,
		})
		return
	}

	user := currentUser(c)

	q := models.DB
	switch user.Role {
	case models.RoleManager:
		q = q.Where("property_id IN (?)", manageableProperties(user))
	case models.RoleTenant:
		q = q.Where("tenant_id = ?", user.ID)
	}

	var payment models.Payment
	err = q.First(&payment, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PaymentResponse{
			Error: &s,
		})
		return
	}

	apiResource := newPayment(c, payment)
	c.JSON(http.StatusOK, PaymentResponse{Data: &apiResource})
}

// @Summary		Update payment
// @Description	Update an existing payment. Only values to be updated need to be specified.
// @Tags			Payments
// @Accept			json
// @Produce		json
// @Success		200		{object}	PaymentResponse
// @Failure		400		{object}	PaymentResponse
// @Failure		404		{object}	PaymentResponse
// @Failure		500		{object}	PaymentResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			payment	body		PaymentEditable	true	"Payment"
// @Router			/v1/payments/{id} [patch]
func UpdatePayment(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PaymentResponse{
			Error: &s,
		})
		return
	}

	user := currentUser(c)

	var payment models.Payment
	err = models.DB.
		Where("property_id IN (?)", manageableProperties(user)).
		First(&payment, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PaymentResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, PaymentEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PaymentResponse{
			Error: &s,
		})
		return
	}

	var data PaymentEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PaymentResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&payment).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PaymentResponse{
			Error: &s,
		})
		return
	}

	apiResource := newPayment(c, payment)
	c.JSON(http.StatusOK, PaymentResponse{Data: &apiResource})
}

// @Summary		Delete payment
// @Description	Deletes a payment
// @Tags			Payments
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/payments/{id} [delete]
func DeletePayment(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	user := currentUser(c)

	var payment models.Payment
	err = models.DB.
		Where("property_id IN (?)", manageableProperties(user)).
		First(&payment, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&payment).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
