package v1

import (
	"net/http"

	"github.com/estateops/backend/internal/httputil"
	"github.com/estateops/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterSpendingConfigRoutes registers the routes for spending categories
// with the RouterGroup that is passed.
func RegisterSpendingConfigRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsSpendingConfigList)
		r.GET("", GetSpendingConfigs)
		r.POST("", RequireRole(models.RoleAdmin, models.RoleManager), CreateSpendingConfigs)
	}

	// Spending category with ID
	{
		r.OPTIONS("/:id", OptionsSpendingConfigDetail)
		r.GET("/:id", GetSpendingConfig)
		r.PATCH("/:id", RequireRole(models.RoleAdmin, models.RoleManager), UpdateSpendingConfig)
		r.DELETE("/:id", RequireRole(models.RoleAdmin, models.RoleManager), DeleteSpendingConfig)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			SpendingConfigs
// @Success		204
// @Router			/v1/spending-configs [options]
func OptionsSpendingConfigList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			SpendingConfigs
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/spending-configs/{id} [options]
func OptionsSpendingConfigDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.SpendingConfig{})
}

// @Summary		Create spending categories
// @Description	Creates new spending categories
// @Tags			SpendingConfigs
// @Accept			json
// @Produce		json
// @Success		201		{object}	SpendingConfigCreateResponse
// @Failure		400		{object}	SpendingConfigCreateResponse
// @Failure		404		{object}	SpendingConfigCreateResponse
// @Failure		500		{object}	SpendingConfigCreateResponse
// @Param			configs	body		[]SpendingConfigEditable	true	"SpendingConfigs"
// @Router			/v1/spending-configs [post]
func CreateSpendingConfigs(c *gin.Context) {
	var editables []SpendingConfigEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SpendingConfigCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	s := http.StatusCreated
	r := SpendingConfigCreateResponse{}

	for _, editable := range editables {
		// Managers may only define categories for properties they manage
		_, err := manageableProperty(c, editable.PropertyID)
		if err != nil {
			s = r.appendError(err, s)
			continue
		}

		config := editable.model()

		err = models.DB.Create(&config).Error
		if err != nil {
			s = r.appendError(err, s)
			continue
		}

		data := newSpendingConfig(c, config)
		r.Data = append(r.Data, SpendingConfigResponse{Data: &data})
	}

	c.JSON(s, r)
}

// @Summary		List spending categories
// @Description	Returns a list of spending categories
// @Tags			SpendingConfigs
// @Produce		json
// @Success		200	{object}	SpendingConfigListResponse
// @Failure		500	{object}	SpendingConfigListResponse
// @Router			/v1/spending-configs [get]
// @Param			property	query	string	false	"Filter by property"
// @Param			title		query	string	false	"Filter by title"
// @Param			offset		query	uint	false	"The offset of the first category returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of categories to return. Defaults to 50."
func GetSpendingConfigs(c *gin.Context) {
	user := currentUser(c)

	var filter SpendingConfigQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we're filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	var configs []models.SpendingConfig

	q := models.DB.
		Order("title ASC").
		Where(filter.model(), queryFields...)

	// Tenants see the categories of their property, managers those of the
	// properties they manage. Admins see everything.
	switch user.Role {
	case models.RoleManager:
		q = q.Where("property_id IN (?)", manageableProperties(user))
	case models.RoleTenant:
		q = q.Where("property_id = ?", user.PropertyID)
	}

	if filter.Title != "" {
		q = q.Where("title LIKE ?", "%"+filter.Title+"%")
	} else if slices.Contains(setFields, "Title") {
		q = q.Where("title = ''")
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 categories and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	err := q.Find(&configs).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SpendingConfigListResponse{
			Error: &e,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SpendingConfigListResponse{
			Error: &e,
		})
		return
	}

	apiResources := make([]SpendingConfig, 0)
	for _, config := range configs {
		apiResources = append(apiResources, newSpendingConfig(c, config))
	}

	c.JSON(http.StatusOK, SpendingConfigListResponse{
		Data: apiResources,
		Pagination: &Pagination{
			Count:  len(apiResources),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get spending category
// @Description	Returns a specific spending category
// @Tags			SpendingConfigs
// @Produce		json
// @Success		200	{object}	SpendingConfigResponse
// @Failure		400	{object}	SpendingConfigResponse
// @Failure		404	{object}	SpendingConfigResponse
// @Failure		500	{object}	SpendingConfigResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/spending-configs/{id} [get]
func GetSpendingConfig(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SpendingConfigResponse{
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
		q = q.Where("property_id = ?", user.PropertyID)
	}

	var config models.SpendingConfig
	err = q.First(&config, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SpendingConfigResponse{
			Error: &s,
		})
		return
	}

	apiResource := newSpendingConfig(c, config)
	c.JSON(http.StatusOK, SpendingConfigResponse{Data: &apiResource})
}

// @Summary		Update spending category
// @Description	Update an existing spending category. Only values to be updated need to be specified.
// @Tags			SpendingConfigs
// @Accept			json
// @Produce		json
// @Success		200		{object}	SpendingConfigResponse
// @Failure		400		{object}	SpendingConfigResponse
// @Failure		404		{object}	SpendingConfigResponse
// @Failure		500		{object}	SpendingConfigResponse
// @Param			id		path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			config	body		SpendingConfigEditable	true	"SpendingConfig"
// @Router			/v1/spending-configs/{id} [patch]
func UpdateSpendingConfig(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SpendingConfigResponse{
			Error: &s,
		})
		return
	}

	user := currentUser(c)

	var config models.SpendingConfig
	err = models.DB.
		Where("property_id IN (?)", manageableProperties(user)).
		First(&config, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SpendingConfigResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, SpendingConfigEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SpendingConfigResponse{
			Error: &s,
		})
		return
	}

	var data SpendingConfigEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SpendingConfigResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&config).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SpendingConfigResponse{
			Error: &s,
		})
		return
	}

	apiResource := newSpendingConfig(c, config)
	c.JSON(http.StatusOK, SpendingConfigResponse{Data: &apiResource})
}

// @Summary		Delete spending category
// @Description	Deletes a spending category
// @Tags			SpendingConfigs
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/spending-configs/{id} [delete]
func DeleteSpendingConfig(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	user := currentUser(c)

	var config models.SpendingConfig
	err = models.DB.
		Where("property_id IN (?)", manageableProperties(user)).
		First(&config, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&config).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
