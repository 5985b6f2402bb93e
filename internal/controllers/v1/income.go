package v1

import (
	"net/http"
	"time"

	"github.com/centavo-app/backend/internal/finance"
	"github.com/centavo-app/backend/internal/httputil"
	"github.com/centavo-app/backend/internal/models"
	"github.com/centavo-app/backend/internal/types"
	"github.com/gin-gonic/gin"
)

func RegisterIncomeRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("/sources", OptionsIncomeSources)
		r.GET("/sources", GetIncomeSources)
		r.POST("/sources", CreateIncomeSource)
	}
	{
		r.OPTIONS("/sources/:id", OptionsIncomeSourceDetail)
		r.GET("/sources/:id", GetIncomeSource)
		r.PATCH("/sources/:id", UpdateIncomeSource)
		r.DELETE("/sources/:id", DeleteIncomeSource)
	}
	{
		r.OPTIONS("/analytics", OptionsIncomeAnalytics)
		r.GET("/analytics", GetIncomeAnalytics)
	}
	{
		r.OPTIONS("/history", OptionsIncomeHistory)
		r.GET("/history", GetIncomeHistory)
		r.POST("/history", SnapshotIncome)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Income
// @Success		204
// @Router			/v1/income/sources [options]
func OptionsIncomeSources(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Income
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/income/sources/{id} [options]
func OptionsIncomeSourceDetail(c *gin.Context) {
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

	err := models.DB.First(&models.IncomeSource{}, "id = ? AND user_id = ?", uri.ID.UUID, userID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Income
// @Success		204
// @Router			/v1/income/analytics [options]
func OptionsIncomeAnalytics(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Income
// @Success		204
// @Router			/v1/income/history [options]
func OptionsIncomeHistory(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Create income source
// @Description	Creates a new income source
// @Tags			Income
// @Produce		json
// @Success		201		{object}	IncomeSourceResponse
// @Failure		400		{object}	IncomeSourceResponse
// @Failure		401		{object}	httpError
// @Param			source	body		IncomeSourceEditable	true	"Income source"
// @Router			/v1/income/sources [post]
func CreateIncomeSource(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var editable IncomeSourceEditable
	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, IncomeSourceResponse{Error: &e})
		return
	}

	source := editable.model(userID)
	err := models.DB.Create(&source).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeSourceResponse{Error: &e})
		return
	}

	apiResource := newIncomeSource(c, source, finance.ToMonthly(source.Amount, source.Recurrence), finance.IsFixedKind(source.Kind))
	c.JSON(http.StatusCreated, IncomeSourceResponse{Data: &apiResource})
}

// @Summary		Get income sources
// @Description	Returns a list of income sources with their normalized monthly amounts
// @Tags			Income
// @Produce		json
// @Success		200	{object}	IncomeSourceListResponse
// @Failure		400	{object}	IncomeSourceListResponse
// @Router			/v1/income/sources [get]
// @Param			kind	query	string	false	"Filter by kind"
// @Param			offset	query	uint	false	"The offset of the first source returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of sources to return. Defaults to 50."
func GetIncomeSources(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusOK, IncomeSourceListResponse{Data: []IncomeSource{}, Pagination: &Pagination{}})
		return
	}

	var filter IncomeSourceQueryFilter
	if err := c.Bind(&filter); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, IncomeSourceListResponse{Error: &e})
		return
	}

	q := models.DB.
		Where("user_id = ?", userID).
		Order("created_at ASC")

	if filter.Kind != "" {
		q = q.Where("kind = ?", filter.Kind)
	}

	q = q.Offset(int(filter.Offset))

	// Default to 50 sources and set the limit
	limit := 50
	if _, ok := c.GetQuery("limit"); ok {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var sources []models.IncomeSource
	err := q.Find(&sources).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeSourceListResponse{Error: &e})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeSourceListResponse{Error: &e})
		return
	}

	data := make([]IncomeSource, 0, len(sources))
	for _, source := range sources {
		data = append(data, newIncomeSource(c, source, finance.ToMonthly(source.Amount, source.Recurrence), finance.IsFixedKind(source.Kind)))
	}

	c.JSON(http.StatusOK, IncomeSourceListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get income source
// @Description	Returns a specific income source
// @Tags			Income
// @Produce		json
// @Success		200	{object}	IncomeSourceResponse
// @Failure		400	{object}	IncomeSourceResponse
// @Failure		404	{object}	IncomeSourceResponse
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/income/sources/{id} [get]
func GetIncomeSource(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		e := models.ErrResourceNotFound.Error()
		c.JSON(http.StatusNotFound, IncomeSourceResponse{Error: &e})
		return
	}

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeSourceResponse{Error: &e})
		return
	}

	var source models.IncomeSource
	err := models.DB.First(&source, "id = ? AND user_id = ?", uri.ID.UUID, userID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeSourceResponse{Error: &e})
		return
	}

	apiResource := newIncomeSource(c, source, finance.ToMonthly(source.Amount, source.Recurrence), finance.IsFixedKind(source.Kind))
	c.JSON(http.StatusOK, IncomeSourceResponse{Data: &apiResource})
}

// @Summary		Update income source
// @Description	Updates an existing income source
// @Tags			Income
// @Accept			json
// @Produce		json
// @Success		200		{object}	IncomeSourceResponse
// @Failure		400		{object}	IncomeSourceResponse
// @Failure		404		{object}	IncomeSourceResponse
// @Param			id		path		URIID					true	"ID formatted as string"
// @Param			source	body		IncomeSourceEditable	true	"Income source"
// @Router			/v1/income/sources/{id} [patch]
func UpdateIncomeSource(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeSourceResponse{Error: &e})
		return
	}

	var source models.IncomeSource
	err := models.DB.First(&source, "id = ? AND user_id = ?", uri.ID.UUID, userID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeSourceResponse{Error: &e})
		return
	}

	// Only fields that are set in the body are updated
	updateFields, err := httputil.GetBodyFields(c, IncomeSourceEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, IncomeSourceResponse{Error: &e})
		return
	}

	var editable IncomeSourceEditable
	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, IncomeSourceResponse{Error: &e})
		return
	}

	err = models.DB.Model(&source).
		Select("", updateFields...).
		Updates(editable.model(userID)).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeSourceResponse{Error: &e})
		return
	}

	apiResource := newIncomeSource(c, source, finance.ToMonthly(source.Amount, source.Recurrence), finance.IsFixedKind(source.Kind))
	c.JSON(http.StatusOK, IncomeSourceResponse{Data: &apiResource})
}

// @Summary		Delete income source
// @Description	Deletes an income source. Persisted snapshots are not touched.
// @Tags			Income
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/income/sources/{id} [delete]
func DeleteIncomeSource(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var source models.IncomeSource
	err := models.DB.First(&source, "id = ? AND user_id = ?", uri.ID.UUID, userID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&source).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Income analytics
// @Description	Returns the derived income report: monthly totals, fixed and variable split, month-over-month variation and the savings suggestion
// @Tags			Income
// @Produce		json
// @Success		200	{object}	IncomeAnalyticsResponse
// @Failure		400	{object}	IncomeAnalyticsResponse
// @Router			/v1/income/analytics [get]
func GetIncomeAnalytics(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusOK, IncomeAnalyticsResponse{Data: &IncomeAnalytics{}})
		return
	}

	analytics, err := incomeAnalytics(userID, time.Now().In(time.UTC))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeAnalyticsResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, IncomeAnalyticsResponse{Data: analytics})
}

// @Summary		Income history
// @Description	Returns all persisted monthly income snapshots, oldest first
// @Tags			Income
// @Produce		json
// @Success		200	{object}	IncomeHistoryResponse
// @Failure		400	{object}	IncomeHistoryResponse
// @Router			/v1/income/history [get]
func GetIncomeHistory(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusOK, IncomeHistoryResponse{Data: []models.IncomeSnapshot{}})
		return
	}

	snapshots, err := incomeSnapshots(userID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeHistoryResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, IncomeHistoryResponse{Data: snapshots})
}

// @Summary		Snapshot income
// @Description	Persists the current monthly income as the snapshot of the current month, replacing an existing snapshot for the month
// @Tags			Income
// @Produce		json
// @Success		200	{object}	IncomeSnapshotResponse
// @Failure		400	{object}	IncomeSnapshotResponse
// @Failure		401	{object}	httpError
// @Router			/v1/income/history [post]
func SnapshotIncome(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	now := time.Now().In(time.UTC)

	var sources []models.IncomeSource
	err := models.DB.Where("user_id = ?", userID).Find(&sources).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeSnapshotResponse{Error: &e})
		return
	}

	snapshot := models.IncomeSnapshot{
		UserID:   userID,
		Month:    types.MonthOf(now),
		Total:    finance.MonthlyIncome(sources, now),
		Fixed:    finance.FixedIncome(sources, now),
		Variable: finance.VariableIncome(sources, now),
	}

	err = models.UpsertIncomeSnapshot(models.DB, &snapshot)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeSnapshotResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, IncomeSnapshotResponse{Data: &snapshot})
}

// incomeAnalytics recomputes the full income report from the raw
// sources and snapshots.
func incomeAnalytics(userID string, now time.Time) (*IncomeAnalytics, error) {
	var sources []models.IncomeSource
	err := models.DB.Where("user_id = ?", userID).Find(&sources).Error
	if err != nil {
		return nil, err
	}

	snapshots, err := incomeSnapshots(userID)
	if err != nil {
		return nil, err
	}

	fixed := finance.FixedIncome(sources, now)
	variable := finance.VariableIncome(sources, now)
	monthly := finance.MonthlyIncome(sources, now)
	suggestion := finance.SavingsSuggestionPercent(fixed, variable)

	return &IncomeAnalytics{
		MonthlyTotal:             monthly,
		FixedIncome:              fixed,
		VariableIncome:           variable,
		AverageMonthly:           finance.AverageMonthly(snapshots),
		VariationPercent:         finance.VariationPercent(snapshots),
		SavingsSuggestionPercent: suggestion,
		SuggestedSavingsValue:    finance.SuggestedSavingsValue(monthly, suggestion),
	}, nil
}

// incomeSnapshots returns the income history of the user, oldest first.
func incomeSnapshots(userID string) ([]models.IncomeSnapshot, error) {
	var snapshots []models.IncomeSnapshot
	err := models.DB.
		Where("user_id = ?", userID).
		Order("date(month) ASC").
		Find(&snapshots).Error

	return snapshots, err
}
