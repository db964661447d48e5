package v1

import (
	"net/http"

	"github.com/estateops/backend/internal/httputil"
	"github.com/estateops/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterComplaintRoutes registers the routes for complaints with
// the RouterGroup that is passed.
func RegisterComplaintRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsComplaintList)
		r.GET("", GetComplaints)
		r.POST("", CreateComplaints)
	}

	// Complaint with ID
	{
		r.OPTIONS("/:id", OptionsComplaintDetail)
		r.GET("/:id", GetComplaint)
		r.PATCH("/:id", RequireRole(models.RoleAdmin, models.RoleManager), UpdateComplaint)
		r.DELETE("/:id", RequireRole(models.RoleAdmin, models.RoleManager), DeleteComplaint)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Complaints
// @Success		204
// @Router			/v1/complaints [options]
func OptionsComplaintList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Complaints
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/complaints/{id} [options]
func OptionsComplaintDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Complaint{})
}

// @Summary		Create complaints
// @Description	Creates new complaints. Tenants always file for the property they live in.
// @Tags			Complaints
// @Accept			json
// @Produce		json
// @Success		201			{object}	ComplaintCreateResponse
// @Failure		400			{object}	ComplaintCreateResponse
// @Failure		500			{object}	ComplaintCreateResponse
// @Param			complaints	body		[]ComplaintEditable	true	"Complaints"
// @Router			/v1/complaints [post]
func CreateComplaints(c *gin.Context) {
	var editables []ComplaintEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ComplaintCreateResponse{
			Error: &e,
		})
		return
	}

	user := currentUser(c)

	// The final http status. Will be modified when errors occur
	s := http.StatusCreated
	r := ComplaintCreateResponse{}

	for _, editable := range editables {
		complaint := editable.model()
		complaint.TenantID = user.ID

		// Tenants can only file complaints for their own property, and
		// a fresh complaint always starts out open
		if user.Role == models.RoleTenant {
			if user.PropertyID == nil {
				s = r.appendError(errNoProperty, s)
				continue
			}

			complaint.PropertyID = *user.PropertyID
			complaint.Status = models.ComplaintOpen
		}

		err = models.DB.Create(&complaint).Error
		if err != nil {
			s = r.appendError(err, s)
			continue
		}

		data := newComplaint(c, complaint)
		r.Data = append(r.Data, ComplaintResponse{Data: &data})
	}

	c.JSON(s, r)
}

// @Summary		List complaints
// @Description	Returns a list of complaints
// @Tags			Complaints
// @Produce		json
// @Success		200	{object}	ComplaintListResponse
// @Failure		500	{object}	ComplaintListResponse
// @Router			/v1/complaints [get]
// @Param			property	query	string	false	"Filter by property"
// @Param			tenant		query	string	false	"Filter by tenant"
// @Param			status		query	string	false	"Filter by complaint status"
// @Param			offset		query	uint	false	"The offset of the first complaint returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of complaints to return. Defaults to 50."
func GetComplaints(c *gin.Context) {
	user := currentUser(c)

	var filter ComplaintQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we're filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	var complaints []models.Complaint

	q := models.DB.
		Order("created_at DESC").
		Where(filter.model(), queryFields...)

	// Tenants only see their own complaints, managers those of the
	// properties they manage. Admins see everything.
	switch user.Role {
	case models.RoleManager:
		q = q.Where("property_id IN (?)", manageableProperties(user))
	case models.RoleTenant:
		q = q.Where("tenant_id = ?", user.ID)
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 complaints and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	err := q.Find(&complaints).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ComplaintListResponse{
			Error: &e,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ComplaintListResponse{
			Error: &e,
		})
		return
	}

	apiResources := make([]Complaint, 0)
	for _, complaint := range complaints {
		apiResources = append(apiResources, newComplaint(c, complaint))
	}

	c.JSON(http.StatusOK, ComplaintListResponse{
		Data: apiResources,
		Pagination: &Pagination{
			Count:  len(apiResources),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get complaint
// @Description	Returns a specific complaint
// @Tags			Complaints
// @Produce		json
// @Success		200	{object}	ComplaintResponse
// @Failure		400	{object}	ComplaintResponse
// @Failure		404	{object}	ComplaintResponse
// @Failure		500	{object}	ComplaintResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/complaints/{id} [get]
func GetComplaint(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ComplaintResponse{
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

	var complaint models.Complaint
	err = q.First(&complaint, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ComplaintResponse{
			Error: &s,
		})
		return
	}

	apiResource := newComplaint(c, complaint)
	c.JSON(http.StatusOK, ComplaintResponse{Data: &apiResource})
}

// @Summary		Update complaint
// @Description	Update an existing complaint. Only values to be updated need to be specified.
// @Tags			Complaints
// @Accept			json
// @Produce		json
// @Success		200			{object}	ComplaintResponse
// @Failure		400			{object}	ComplaintResponse
// @Failure		404			{object}	ComplaintResponse
// @Failure		500			{object}	ComplaintResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			complaint	body		ComplaintEditable	true	"Complaint"
// @Router			/v1/complaints/{id} [patch]
func UpdateComplaint(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ComplaintResponse{
			Error: &s,
		})
		return
	}

	user := currentUser(c)

	var complaint models.Complaint
	err = models.DB.
		Where("property_id IN (?)", manageableProperties(user)).
		First(&complaint, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ComplaintResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, ComplaintEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ComplaintResponse{
			Error: &s,
		})
		return
	}

	var data ComplaintEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ComplaintResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&complaint).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ComplaintResponse{
			Error: &s,
		})
		return
	}

	apiResource := newComplaint(c, complaint)
	c.JSON(http.StatusOK, ComplaintResponse{Data: &apiResource})
}

// @Summary		Delete complaint
// @Description	Deletes a complaint
// @Tags			Complaints
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/complaints/{id} [delete]
func DeleteComplaint(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	user := currentUser(c)

	var complaint models.Complaint
	err = models.DB.
		Where("property_id IN (?)", manageableProperties(user)).
		First(&complaint, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&complaint).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
