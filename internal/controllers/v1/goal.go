package v1

import (
	"net/http"
	"time"

	"github.com/centavo-app/backend/internal/finance"
	"github.com/centavo-app/backend/internal/httputil"
	"github.com/centavo-app/backend/internal/models"
	"github.com/gin-gonic/gin"
)

func RegisterGoalRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsGoals)
		r.GET("", GetGoals)
		r.POST("", CreateGoal)
	}
	{
		r.OPTIONS("/:id", OptionsGoalDetail)
		r.GET("/:id", GetGoal)
		r.PATCH("/:id", UpdateGoal)
		r.DELETE("/:id", DeleteGoal)
	}
	{
		r.OPTIONS("/:id/installments", OptionsGoalInstallments)
		r.GET("/:id/installments", GetGoalInstallments)
		r.POST("/:id/installments", CreateGoalInstallment)
	}
	{
		r.OPTIONS("/:id/installments/pay-all", OptionsGoalInstallmentsPayAll)
		r.POST("/:id/installments/pay-all", PayAllGoalInstallments)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Goals
// @Success		204
// @Router			/v1/goals [options]
func OptionsGoals(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Goals
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/goals/{id} [options]
func OptionsGoalDetail(c *gin.Context) {
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

	err := models.DB.First(&models.Goal{}, "id = ? AND user_id = ?", uri.ID.UUID, userID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create goal
// @Description	Creates a new savings goal, debt or investment
// @Tags			Goals
// @Produce		json
// @Success		201		{object}	GoalResponse
// @Failure		400		{object}	GoalResponse
// @Failure		401		{object}	httpError
// @Param			goal	body		GoalEditable	true	"Goal"
// @Router			/v1/goals [post]
func CreateGoal(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var editable GoalEditable
	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, GoalResponse{Error: &e})
		return
	}

	goal := editable.model(userID)
	err := models.DB.Create(&goal).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{Error: &e})
		return
	}

	apiResource, err := goalWithViews(c, userID, goal)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, GoalResponse{Data: &apiResource})
}

// @Summary		Get goals
// @Description	Returns a list of goals with their derived progress and kind specific views
// @Tags			Goals
// @Produce		json
// @Success		200	{object}	GoalListResponse
// @Failure		400	{object}	GoalListResponse
// @Router			/v1/goals [get]
// @Param			kind	query	string	false	"Filter by kind: savings, debt or investment"
// @Param			offset	query	uint	false	"The offset of the first goal returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of goals to return. Defaults to 50."
func GetGoals(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusOK, GoalListResponse{Data: []Goal{}, Pagination: &Pagination{}})
		return
	}

	var filter GoalQueryFilter
	if err := c.Bind(&filter); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, GoalListResponse{Error: &e})
		return
	}

	q := models.DB.
		Where("user_id = ?", userID).
		Order("created_at ASC")

	if filter.Kind != "" {
		q = q.Where("kind = ?", filter.Kind)
	}

	q = q.Offset(int(filter.Offset))

	// Default to 50 goals and set the limit
	limit := 50
	if _, ok := c.GetQuery("limit"); ok {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var goals []models.Goal
	err := q.Find(&goals).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalListResponse{Error: &e})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalListResponse{Error: &e})
		return
	}

	data := make([]Goal, 0, len(goals))
	for _, goal := range goals {
		apiResource, err := goalWithViews(c, userID, goal)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), GoalListResponse{Error: &e})
			return
		}

		data = append(data, apiResource)
	}

	c.JSON(http.StatusOK, GoalListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get goal
// @Description	Returns a specific goal
// @Tags			Goals
// @Produce		json
// @Success		200	{object}	GoalResponse
// @Failure		400	{object}	GoalResponse
// @Failure		404	{object}	GoalResponse
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/goals/{id} [get]
func GetGoal(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		e := models.ErrResourceNotFound.Error()
		c.JSON(http.StatusNotFound, GoalResponse{Error: &e})
		return
	}

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{Error: &e})
		return
	}

	var goal models.Goal
	err := models.DB.First(&goal, "id = ? AND user_id = ?", uri.ID.UUID, userID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{Error: &e})
		return
	}

	apiResource, err := goalWithViews(c, userID, goal)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, GoalResponse{Data: &apiResource})
}

// @Summary		Update goal
// @Description	Updates an existing goal. The kind of a goal can not change.
// @Tags			Goals
// @Accept			json
// @Produce		json
// @Success		200		{object}	GoalResponse
// @Failure		400		{object}	GoalResponse
// @Failure		404		{object}	GoalResponse
// @Param			id		path		URIID			true	"ID formatted as string"
// @Param			goal	body		GoalEditable	true	"Goal"
// @Router			/v1/goals/{id} [patch]
func UpdateGoal(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{Error: &e})
		return
	}

	var goal models.Goal
	err := models.DB.First(&goal, "id = ? AND user_id = ?", uri.ID.UUID, userID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{Error: &e})
		return
	}

	// Only fields that are set in the body are updated
	updateFields, err := httputil.GetBodyFields(c, GoalEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, GoalResponse{Error: &e})
		return
	}

	var editable GoalEditable
	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, GoalResponse{Error: &e})
		return
	}

	// The kind is fixed at creation
	editable.Kind = goal.Kind

	err = models.DB.Model(&goal).
		Select("", updateFields...).
		Updates(editable.model(userID)).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{Error: &e})
		return
	}

	apiResource, err := goalWithViews(c, userID, goal)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, GoalResponse{Data: &apiResource})
}

// @Summary		Delete goal
// @Description	Deletes a goal. Deleting a debt also deletes its installments.
// @Tags			Goals
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/goals/{id} [delete]
func DeleteGoal(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var goal models.Goal
	err := models.DB.First(&goal, "id = ? AND user_id = ?", uri.ID.UUID, userID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&goal).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// goalWithViews builds the API representation of a goal including its
// kind specific derived view. All derived data is recomputed from the
// raw records on every call.
func goalWithViews(c *gin.Context, userID string, goal models.Goal) (Goal, error) {
	now := time.Now().In(time.UTC)

	switch goal.Kind {
	case models.GoalDebt:
		installments, err := goalInstallments(goal)
		if err != nil {
			return Goal{}, err
		}

		view := newDebtView(finance.Debt(goal, installments, now))
		if len(installments) > 0 {
			firstDue := installments[0].DueDate
			for _, i := range installments {
				if i.DueDate.Before(firstDue) {
					firstDue = i.DueDate
				}
			}

			completion := finance.CompletionDate(firstDue, len(installments))
			view.EstimatedCompletion = &completion
		}

		return newGoal(c, goal, view, nil, nil), nil

	case models.GoalInvestment:
		return newGoal(c, goal, nil, newInvestmentView(goal, now), nil), nil

	default:
		view, err := savingsView(userID, goal, now)
		if err != nil {
			return Goal{}, err
		}

		return newGoal(c, goal, nil, nil, view), nil
	}
}

// savingsView estimates how many months of the suggested savings rate
// fund the remaining amount of the goal.
func savingsView(userID string, goal models.Goal, now time.Time) (*SavingsView, error) {
	var sources []models.IncomeSource
	err := models.DB.Where("user_id = ?", userID).Find(&sources).Error
	if err != nil {
		return nil, err
	}

	fixed := finance.FixedIncome(sources, now)
	variable := finance.VariableIncome(sources, now)
	suggested := finance.SuggestedSavingsValue(fixed.Add(variable), finance.SavingsSuggestionPercent(fixed, variable))

	view := &SavingsView{}
	if months, ok := finance.GoalFundingMonths(goal.RemainingAmount(), suggested); ok {
		view.FundingMonths = &months
	}

	return view, nil
}

// goalInstallments returns all installments of a debt goal ordered by
// due date.
func goalInstallments(goal models.Goal) ([]models.Installment, error) {
	var installments []models.Installment
	err := models.DB.
		Where("goal_id = ?", goal.ID).
		Order("date(due_date) ASC, created_at ASC").
		Find(&installments).Error

	return installments, err
}
