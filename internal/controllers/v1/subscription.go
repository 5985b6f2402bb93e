package v1

import (
	"net/http"
	"time"

	"github.com/centavo-app/backend/internal/finance"
	"github.com/centavo-app/backend/internal/httputil"
	"github.com/centavo-app/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func RegisterSubscriptionRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsSubscriptions)
		r.GET("", GetSubscriptions)
		r.POST("", CreateSubscription)
	}
	{
		r.OPTIONS("/summary", OptionsSubscriptionSummary)
		r.GET("/summary", GetSubscriptionSummary)
	}
	{
		r.OPTIONS("/:id", OptionsSubscriptionDetail)
		r.GET("/:id", GetSubscription)
		r.PATCH("/:id", UpdateSubscription)
		r.DELETE("/:id", DeleteSubscription)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Subscriptions
// @Success		204
// @Router			/v1/subscriptions [options]
func OptionsSubscriptions(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Subscriptions
// @Success		204
// @Router			/v1/subscriptions/summary [options]
func OptionsSubscriptionSummary(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Subscriptions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/subscriptions/{id} [options]
func OptionsSubscriptionDetail(c *gin.Context) {
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

	err := models.DB.First(&models.Subscription{}, "id = ? AND user_id = ?", uri.ID.UUID, userID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create subscription
// @Description	Creates a new subscription
// @Tags			Subscriptions
// @Produce		json
// @Success		201				{object}	SubscriptionResponse
// @Failure		400				{object}	SubscriptionResponse
// @Failure		401				{object}	httpError
// @Param			subscription	body		SubscriptionEditable	true	"Subscription"
// @Router			/v1/subscriptions [post]
func CreateSubscription(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var editable SubscriptionEditable
	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, SubscriptionResponse{Error: &e})
		return
	}

	subscription := editable.model(userID)
	err := models.DB.Create(&subscription).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SubscriptionResponse{Error: &e})
		return
	}

	total, err := subscriptionMonthlyTotal(userID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SubscriptionResponse{Error: &e})
		return
	}

	apiResource := newSubscription(c, subscription, total)
	c.JSON(http.StatusCreated, SubscriptionResponse{Data: &apiResource})
}

// @Summary		Get subscriptions
// @Description	Returns a list of subscriptions with their derived monthly price and impact
// @Tags			Subscriptions
// @Produce		json
// @Success		200	{object}	SubscriptionListResponse
// @Failure		400	{object}	SubscriptionListResponse
// @Router			/v1/subscriptions [get]
// @Param			name	query	string	false	"Filter by name"
// @Param			offset	query	uint	false	"The offset of the first subscription returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of subscriptions to return. Defaults to 50."
func GetSubscriptions(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusOK, SubscriptionListResponse{Data: []Subscription{}, Pagination: &Pagination{}})
		return
	}

	var filter SubscriptionQueryFilter
	if err := c.Bind(&filter); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, SubscriptionListResponse{Error: &e})
		return
	}

	q := models.DB.
		Where("user_id = ?", userID).
		Order("date(next_billing) ASC, name ASC")

	if filter.Name != "" {
		q = q.Where("name LIKE ?", "%"+filter.Name+"%")
	}

	q = q.Offset(int(filter.Offset))

	// Default to 50 subscriptions and set the limit
	limit := 50
	if _, ok := c.GetQuery("limit"); ok {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var subscriptions []models.Subscription
	err := q.Find(&subscriptions).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SubscriptionListResponse{Error: &e})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SubscriptionListResponse{Error: &e})
		return
	}

	total, err := subscriptionMonthlyTotal(userID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SubscriptionListResponse{Error: &e})
		return
	}

	data := make([]Subscription, 0, len(subscriptions))
	for _, subscription := range subscriptions {
		data = append(data, newSubscription(c, subscription, total))
	}

	c.JSON(http.StatusOK, SubscriptionListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Subscription summary
// @Description	Returns the monthly and annual commitment totals and the renewals of the next seven days
// @Tags			Subscriptions
// @Produce		json
// @Success		200	{object}	SubscriptionSummaryResponse
// @Failure		400	{object}	SubscriptionSummaryResponse
// @Router			/v1/subscriptions/summary [get]
func GetSubscriptionSummary(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusOK, SubscriptionSummaryResponse{Data: &SubscriptionSummary{UpcomingRenewals: []Subscription{}}})
		return
	}

	var subscriptions []models.Subscription
	err := models.DB.Where("user_id = ?", userID).Find(&subscriptions).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SubscriptionSummaryResponse{Error: &e})
		return
	}

	summary := finance.Commitments(subscriptions, time.Now().In(time.UTC))

	renewals := make([]Subscription, 0, len(summary.UpcomingRenewals))
	for _, subscription := range summary.UpcomingRenewals {
		renewals = append(renewals, newSubscription(c, subscription, summary.MonthlyTotal))
	}

	c.JSON(http.StatusOK, SubscriptionSummaryResponse{
		Data: &SubscriptionSummary{
			MonthlyTotal:     summary.MonthlyTotal,
			AnnualTotal:      summary.AnnualTotal,
			UpcomingRenewals: renewals,
		},
	})
}

// @Summary		Get subscription
// @Description	Returns a specific subscription
// @Tags			Subscriptions
// @Produce		json
// @Success		200	{object}	SubscriptionResponse
// @Failure		400	{object}	SubscriptionResponse
// @Failure		404	{object}	SubscriptionResponse
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/subscriptions/{id} [get]
func GetSubscription(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		e := models.ErrResourceNotFound.Error()
		c.JSON(http.StatusNotFound, SubscriptionResponse{Error: &e})
		return
	}

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(status(err), SubscriptionResponse{Error: &e})
		return
	}

	var subscription models.Subscription
	err := models.DB.First(&subscription, "id = ? AND user_id = ?", uri.ID.UUID, userID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SubscriptionResponse{Error: &e})
		return
	}

	total, err := subscriptionMonthlyTotal(userID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SubscriptionResponse{Error: &e})
		return
	}

	apiResource := newSubscription(c, subscription, total)
	c.JSON(http.StatusOK, SubscriptionResponse{Data: &apiResource})
}

// @Summary		Update subscription
// @Description	Updates an existing subscription. Only the fields in the body are changed.
// @Tags			Subscriptions
// @Accept			json
// @Produce		json
// @Success		200				{object}	SubscriptionResponse
// @Failure		400				{object}	SubscriptionResponse
// @Failure		404				{object}	SubscriptionResponse
// @Param			id				path		URIID					true	"ID formatted as string"
// @Param			subscription	body		SubscriptionEditable	true	"Subscription"
// @Router			/v1/subscriptions/{id} [patch]
func UpdateSubscription(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(status(err), SubscriptionResponse{Error: &e})
		return
	}

	var subscription models.Subscription
	err := models.DB.First(&subscription, "id = ? AND user_id = ?", uri.ID.UUID, userID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SubscriptionResponse{Error: &e})
		return
	}

	// Only fields that are set in the body are updated
	updateFields, err := httputil.GetBodyFields(c, SubscriptionEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, SubscriptionResponse{Error: &e})
		return
	}

	var editable SubscriptionEditable
	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, SubscriptionResponse{Error: &e})
		return
	}

	err = models.DB.Model(&subscription).
		Select("", updateFields...).
		Updates(editable.model(userID)).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SubscriptionResponse{Error: &e})
		return
	}

	total, err := subscriptionMonthlyTotal(userID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SubscriptionResponse{Error: &e})
		return
	}

	apiResource := newSubscription(c, subscription, total)
	c.JSON(http.StatusOK, SubscriptionResponse{Data: &apiResource})
}

// @Summary		Delete subscription
// @Description	Deletes a subscription
// @Tags			Subscriptions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/subscriptions/{id} [delete]
func DeleteSubscription(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var subscription models.Subscription
	err := models.DB.First(&subscription, "id = ? AND user_id = ?", uri.ID.UUID, userID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&subscription).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// subscriptionMonthlyTotal recomputes the monthly total over all
// subscriptions of the user. Totals are views over the raw records,
// they are never cached.
func subscriptionMonthlyTotal(userID string) (total decimal.Decimal, err error) {
	var subscriptions []models.Subscription
	err = models.DB.Where("user_id = ?", userID).Find(&subscriptions).Error
	if err != nil {
		return decimal.Zero, err
	}

	return finance.Commitments(subscriptions, time.Now().In(time.UTC)).MonthlyTotal, nil
}
