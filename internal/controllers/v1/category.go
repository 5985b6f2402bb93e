package v1

import (
	"net/http"
	"time"

	"github.com/centavo-app/backend/internal/finance"
	"github.com/centavo-app/backend/internal/httputil"
	"github.com/centavo-app/backend/internal/models"
	"github.com/centavo-app/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func RegisterCategoryRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsCategories)
		r.GET("", GetCategories)
		r.POST("", CreateCategory)
	}
	{
		r.OPTIONS("/month", OptionsBudgetMonth)
		r.GET("/month", GetBudgetMonth)
	}
	{
		r.OPTIONS("/:id", OptionsCategoryDetail)
		r.GET("/:id", GetCategory)
		r.PATCH("/:id", UpdateCategory)
		r.DELETE("/:id", DeleteCategory)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Categories
// @Success		204
// @Router			/v1/categories [options]
func OptionsCategories(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Categories
// @Success		204
// @Router			/v1/categories/month [options]
func OptionsBudgetMonth(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Categories
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/categories/{id} [options]
func OptionsCategoryDetail(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusNotFound, httpError{Error: models.ErrResourceNotFound.Error()})
		return
	}

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err := models.DB.First(&models.BudgetCategory{}, "id = ? AND user_id = ?", uri.ID.UUID, userID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create category
// @Description	Creates a new budget category
// @Tags			Categories
// @Produce		json
// @Success		201			{object}	CategoryResponse
// @Failure		400			{object}	CategoryResponse
// @Failure		401			{object}	httpError
// @Param			category	body		CategoryEditable	true	"Category"
// @Router			/v1/categories [post]
func CreateCategory(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var editable CategoryEditable
	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, CategoryResponse{Error: &e})
		return
	}

	category := editable.model(userID)
	if category.Month.IsZero() {
		category.Month = types.MonthOf(time.Now().In(time.UTC))
	}

	err := models.DB.Create(&category).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &e})
		return
	}

	apiResource := newCategory(c, category)
	c.JSON(http.StatusCreated, CategoryResponse{Data: &apiResource})
}

// @Summary		Get categories
// @Description	Returns a list of budget categories with their derived spent amounts
// @Tags			Categories
// @Produce		json
// @Success		200	{object}	CategoryListResponse
// @Failure		400	{object}	CategoryListResponse
// @Router			/v1/categories [get]
// @Param			month	query	string	false	"Categories of this month, as YYYY-MM"
// @Param			offset	query	uint	false	"The offset of the first category returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of categories to return. Defaults to 50."
func GetCategories(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusOK, CategoryListResponse{Data: []Category{}, Pagination: &Pagination{}})
		return
	}

	var filter CategoryQueryFilter
	if err := c.Bind(&filter); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, CategoryListResponse{Error: &e})
		return
	}

	q := models.DB.
		Where("user_id = ?", userID).
		Order("title ASC")

	if filter.Month != "" {
		month, err := types.ParseMonth(filter.Month)
		if err != nil {
			e := errMonthInvalid.Error()
			c.JSON(http.StatusBadRequest, CategoryListResponse{Error: &e})
			return
		}
		q = q.Where("month >= date(?) AND month < date(?)", month, month.AddDate(0, 1))
	}

	q = q.Offset(int(filter.Offset))

	// Default to 50 categories and set the limit
	limit := 50
	if _, ok := c.GetQuery("limit"); ok {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var categories []models.BudgetCategory
	err := q.Find(&categories).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryListResponse{Error: &e})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryListResponse{Error: &e})
		return
	}

	data := make([]Category, 0, len(categories))
	for _, category := range categories {
		category, err := category.WithSpent(models.DB)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), CategoryListResponse{Error: &e})
			return
		}

		data = append(data, newCategory(c, category))
	}

	c.JSON(http.StatusOK, CategoryListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Budget month view
// @Description	Returns all categories of a month, prepended with the synthetic subscriptions category, and the limit usage
// @Tags			Categories
// @Produce		json
// @Success		200	{object}	BudgetMonthResponse
// @Failure		400	{object}	BudgetMonthResponse
// @Router			/v1/categories/month [get]
// @Param			month	query	string	false	"The month, as YYYY-MM. Defaults to the current month."
func GetBudgetMonth(c *gin.Context) {
	month := types.MonthOf(time.Now().In(time.UTC))

	var query QueryMonth
	if err := c.Bind(&query); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, BudgetMonthResponse{Error: &e})
		return
	}

	if query.Month != "" {
		parsed, err := types.ParseMonth(query.Month)
		if err != nil {
			e := errMonthInvalid.Error()
			c.JSON(http.StatusBadRequest, BudgetMonthResponse{Error: &e})
			return
		}
		month = parsed
	}

	userID, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusOK, BudgetMonthResponse{Data: &BudgetMonth{Month: month, Categories: []Category{}}})
		return
	}

	var subscriptions []models.Subscription
	err := models.DB.Where("user_id = ?", userID).Find(&subscriptions).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetMonthResponse{Error: &e})
		return
	}

	subscriptionTotal := finance.Commitments(subscriptions, time.Now().In(time.UTC)).MonthlyTotal

	var categories []models.BudgetCategory
	err = models.DB.
		Where("user_id = ?", userID).
		Where("month >= date(?) AND month < date(?)", month, month.AddDate(0, 1)).
		Order("title ASC").
		Find(&categories).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetMonthResponse{Error: &e})
		return
	}

	// The synthetic subscriptions category always comes first
	data := make([]Category, 0, len(categories)+1)
	data = append(data, newSyntheticCategory(subscriptionTotal, month))

	totalSpent := decimal.Zero
	totalLimit := decimal.Zero
	for _, category := range categories {
		category, err := category.WithSpent(models.DB)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), BudgetMonthResponse{Error: &e})
			return
		}

		totalSpent = totalSpent.Add(category.Spent)
		totalLimit = totalLimit.Add(category.Limit)
		data = append(data, newCategory(c, category))
	}

	c.JSON(http.StatusOK, BudgetMonthResponse{
		Data: &BudgetMonth{
			Month:             month,
			Categories:        data,
			TotalSpent:        totalSpent,
			TotalLimit:        totalLimit,
			LimitUsagePercent: finance.LimitUsagePercent(totalSpent, totalLimit),
		},
	})
}

// @Summary		Get category
// @Description	Returns a specific budget category
// @Tags			Categories
// @Produce		json
// @Success		200	{object}	CategoryResponse
// @Failure		400	{object}	CategoryResponse
// @Failure		404	{object}	CategoryResponse
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/categories/{id} [get]
func GetCategory(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		e := models.ErrResourceNotFound.Error()
		c.JSON(http.StatusNotFound, CategoryResponse{Error: &e})
		return
	}

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &e})
		return
	}

	var category models.BudgetCategory
	err := models.DB.First(&category, "id = ? AND user_id = ?", uri.ID.UUID, userID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &e})
		return
	}

	category, err = category.WithSpent(models.DB)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &e})
		return
	}

	apiResource := newCategory(c, category)
	c.JSON(http.StatusOK, CategoryResponse{Data: &apiResource})
}

// @Summary		Update category
// @Description	Updates an existing budget category
// @Tags			Categories
// @Accept			json
// @Produce		json
// @Success		200			{object}	CategoryResponse
// @Failure		400			{object}	CategoryResponse
// @Failure		404			{object}	CategoryResponse
// @Param			id			path		URIID				true	"ID formatted as string"
// @Param			category	body		CategoryEditable	true	"Category"
// @Router			/v1/categories/{id} [patch]
func UpdateCategory(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &e})
		return
	}

	var category models.BudgetCategory
	err := models.DB.First(&category, "id = ? AND user_id = ?", uri.ID.UUID, userID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &e})
		return
	}

	// Only fields that are set in the body are updated
	updateFields, err := httputil.GetBodyFields(c, CategoryEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, CategoryResponse{Error: &e})
		return
	}

	var editable CategoryEditable
	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, CategoryResponse{Error: &e})
		return
	}

	// The month is fixed at creation
	editable.Month = category.Month

	err = models.DB.Model(&category).
		Select("", updateFields...).
		Updates(editable.model(userID)).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &e})
		return
	}

	category, err = category.WithSpent(models.DB)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &e})
		return
	}

	apiResource := newCategory(c, category)
	c.JSON(http.StatusOK, CategoryResponse{Data: &apiResource})
}

// @Summary		Delete category
// @Description	Deletes a budget category and its expenses
// @Tags			Categories
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/categories/{id} [delete]
func DeleteCategory(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var category models.BudgetCategory
	err := models.DB.First(&category, "id = ? AND user_id = ?", uri.ID.UUID, userID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&category).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
