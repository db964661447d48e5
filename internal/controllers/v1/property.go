package v1

import (
	"net/http"

	"github.com/estateops/backend/internal/httputil"
	"github.com/estateops/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterPropertyRoutes registers the routes for properties with
// the RouterGroup that is passed.
func RegisterPropertyRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsPropertyList)
		r.GET("", GetProperties)
		r.POST("", RequireRole(models.RoleAdmin), CreateProperties)
	}

	// Property with ID
	{
		r.OPTIONS("/:id", OptionsPropertyDetail)
		r.GET("/:id", GetProperty)
		r.PATCH("/:id", RequireRole(models.RoleAdmin, models.RoleManager), UpdateProperty)
		r.DELETE("/:id", RequireRole(models.RoleAdmin), DeleteProperty)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Properties
// @Success		204
// @Router			/v1/properties [options]
func OptionsPropertyList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Properties
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/properties/{id} [options]
func OptionsPropertyDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Property{})
}

// @Summary		Create properties
// @Description	Creates new properties
// @Tags			Properties
// @Accept			json
// @Produce		json
// @Success		201			{object}	PropertyCreateResponse
// @Failure		400			{object}	PropertyCreateResponse
// @Failure		500			{object}	PropertyCreateResponse
// @Param			properties	body		[]PropertyEditable	true	"Properties"
// @Router			/v1/properties [post]
func CreateProperties(c *gin.Context) {
	var editables []PropertyEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PropertyCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	s := http.StatusCreated
	r := PropertyCreateResponse{}

	for _, editable := range editables {
		property := editable.model()

		err = models.DB.Create(&property).Error
		if err != nil {
			s = r.appendError(err, s)
			continue
		}

		data := newProperty(c, property)
		r.Data = append(r.Data, PropertyResponse{Data: &data})
	}

	c.JSON(s, r)
}

// @Summary		List properties
// @Description	Returns a list of properties
// @Tags			Properties
// @Produce		json
// @Success		200	{object}	PropertyListResponse
// @Failure		500	{object}	PropertyListResponse
// @Router			/v1/properties [get]
// @Param			name	query	string	false	"Filter by name"
// @Param			city	query	string	false	"Filter by city"
// @Param			manager	query	string	false	"Filter by managing user"
// @Param			offset	query	uint	false	"The offset of the first property returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of properties to return. Defaults to 50."
func GetProperties(c *gin.Context) {
	user := currentUser(c)

	var filter PropertyQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we're filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	var properties []models.Property

	q := models.DB.
		Order("name ASC").
		Where(filter.model(), queryFields...)

	// Managers only see the properties they manage, tenants the one they
	// live in. Admins see everything.
	switch user.Role {
	case models.RoleManager:
		q = q.Where("manager_id = ?", user.ID)
	case models.RoleTenant:
		q = q.Where("id = ?", user.PropertyID)
	}

	if filter.Name != "" {
		q = q.Where("name LIKE ?", "%"+filter.Name+"%")
	} else if slices.Contains(setFields, "Name") {
		q = q.Where("name = ''")
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 properties and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	err := q.Find(&properties).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PropertyListResponse{
			Error: &e,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PropertyListResponse{
			Error: &e,
		})
		return
	}

	apiResources := make([]Property, 0)
	for _, property := range properties {
		apiResources = append(apiResources, newProperty(c, property))
	}

	c.JSON(http.StatusOK, PropertyListResponse{
		Data: apiResources,
		Pagination: &Pagination{
			Count:  len(apiResources),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get property
// @Description	Returns a specific property
// @Tags			Properties
// @Produce		json
// @Success		200	{object}	PropertyResponse
// @Failure		400	{object}	PropertyResponse
// @Failure		404	{object}	PropertyResponse
// @Failure		500	{object}	PropertyResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/properties/{id} [get]
func GetProperty(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PropertyResponse{
			Error: &s,
		})
		return
	}

	user := currentUser(c)

	q := models.DB
	switch user.Role {
	case models.RoleManager:
		q = q.Where("manager_id = ?", user.ID)
	case models.RoleTenant:
		q = q.Where("id = ?", user.PropertyID)
	}

	var property models.Property
	err = q.First(&property, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PropertyResponse{
			Error: &s,
		})
		return
	}

	apiResource := newProperty(c, property)
	c.JSON(http.StatusOK, PropertyResponse{Data: &apiResource})
}

// @Summary		Update property
// @Description	Update an existing property. Only values to be updated need to be specified.
// @Tags			Properties
// @Accept			json
// @Produce		json
// @Success		200			{object}	PropertyResponse
// @Failure		400			{object}	PropertyResponse
// @Failure		404			{object}	PropertyResponse
// @Failure		500			{object}	PropertyResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			property	body		PropertyEditable	true	"Property"
// @Router			/v1/properties/{id} [patch]
func UpdateProperty(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PropertyResponse{
			Error: &s,
		})
		return
	}

	property, err := manageableProperty(c, uri.ID.UUID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PropertyResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, PropertyEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PropertyResponse{
			Error: &s,
		})
		return
	}

	var data PropertyEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PropertyResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&property).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PropertyResponse{
			Error: &s,
		})
		return
	}

	apiResource := newProperty(c, property)
	c.JSON(http.StatusOK, PropertyResponse{Data: &apiResource})
}

// @Summary		Delete property
// @Description	Deletes a property
// @Tags			Properties
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/properties/{id} [delete]
func DeleteProperty(c *gin.Context) {
	deleteResource[models.Property](c)
}
