package v1

import (
	"net/http"

	"github.com/centavo-app/backend/internal/httputil"
	"github.com/centavo-app/backend/internal/models"
	"github.com/centavo-app/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func RegisterExpenseRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsExpenses)
		r.GET("", GetExpenses)
		r.POST("", CreateExpense)
	}
	{
		r.OPTIONS("/:id", OptionsExpenseDetail)
		r.GET("/:id", GetExpense)
		r.DELETE("/:id", DeleteExpense)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenses
// @Success		204
// @Router			/v1/expenses [options]
func OptionsExpenses(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenses
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/expenses/{id} [options]
func OptionsExpenseDetail(c *gin.Context) {
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

	err := models.DB.First(&models.BudgetExpense{}, "id = ? AND user_id = ?", uri.ID.UUID, userID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetDelete(c)
}

// @Summary		Create expense
// @Description	Books a new expense on a budget category. Expenses can not be edited, only deleted.
// @Tags			Expenses
// @Produce		json
// @Success		201		{object}	ExpenseResponse
// @Failure		400		{object}	ExpenseResponse
// @Failure		401		{object}	httpError
// @Failure		404		{object}	ExpenseResponse
// @Param			expense	body		ExpenseEditable	true	"Expense"
// @Router			/v1/expenses [post]
func CreateExpense(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var editable ExpenseEditable
	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, ExpenseResponse{Error: &e})
		return
	}

	expense := editable.model(userID)
	err := models.DB.Create(&expense).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseResponse{Error: &e})
		return
	}

	apiResource := newExpense(c, expense)
	c.JSON(http.StatusCreated, ExpenseResponse{Data: &apiResource})
}

// @Summary		Get expenses
// @Description	Returns a list of expenses, optionally filtered by category or month
// @Tags			Expenses
// @Produce		json
// @Success		200	{object}	ExpenseListResponse
// @Failure		400	{object}	ExpenseListResponse
// @Router			/v1/expenses [get]
// @Param			category	query	string	false	"Filter by category ID"
// @Param			month		query	string	false	"Expenses of this month, as YYYY-MM"
// @Param			offset		query	uint	false	"The offset of the first expense returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of expenses to return. Defaults to 50."
func GetExpenses(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusOK, ExpenseListResponse{Data: []Expense{}, Pagination: &Pagination{}})
		return
	}

	var filter ExpenseQueryFilter
	if err := c.Bind(&filter); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, ExpenseListResponse{Error: &e})
		return
	}

	q := models.DB.
		Where("user_id = ?", userID).
		Order("date(date) DESC, created_at DESC")

	if filter.CategoryID.UUID != uuid.Nil {
		q = q.Where("category_id = ?", filter.CategoryID.UUID)
	}

	if filter.Month != "" {
		month, err := types.ParseMonth(filter.Month)
		if err != nil {
			e := errMonthInvalid.Error()
			c.JSON(http.StatusBadRequest, ExpenseListResponse{Error: &e})
			return
		}

		q = q.Where("date >= ? AND date < ?", month.Start(), month.AddDate(0, 1).Start())
	}

	q = q.Offset(int(filter.Offset))

	// Default to 50 expenses and set the limit
	limit := 50
	if _, ok := c.GetQuery("limit"); ok {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var expenses []models.BudgetExpense
	err := q.Find(&expenses).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseListResponse{Error: &e})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseListResponse{Error: &e})
		return
	}

	data := make([]Expense, 0, len(expenses))
	for _, expense := range expenses {
		data = append(data, newExpense(c, expense))
	}

	c.JSON(http.StatusOK, ExpenseListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get expense
// @Description	Returns a specific expense
// @Tags			Expenses
// @Produce		json
// @Success		200	{object}	ExpenseResponse
// @Failure		400	{object}	ExpenseResponse
// @Failure		404	{object}	ExpenseResponse
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/expenses/{id} [get]
func GetExpense(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		e := models.ErrResourceNotFound.Error()
		c.JSON(http.StatusNotFound, ExpenseResponse{Error: &e})
		return
	}

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseResponse{Error: &e})
		return
	}

	var expense models.BudgetExpense
	err := models.DB.First(&expense, "id = ? AND user_id = ?", uri.ID.UUID, userID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseResponse{Error: &e})
		return
	}

	apiResource := newExpense(c, expense)
	c.JSON(http.StatusOK, ExpenseResponse{Data: &apiResource})
}

// @Summary		Delete expense
// @Description	Deletes an expense, removing it from the spent amount of its category
// @Tags			Expenses
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/expenses/{id} [delete]
func DeleteExpense(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var expense models.BudgetExpense
	err := models.DB.First(&expense, "id = ? AND user_id = ?", uri.ID.UUID, userID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&expense).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
