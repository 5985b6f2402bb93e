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

func RegisterInstallmentRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("/:id", OptionsInstallmentDetail)
		r.GET("/:id", GetInstallment)
		r.DELETE("/:id", DeleteInstallment)
	}
	{
		r.OPTIONS("/:id/pay", OptionsInstallmentPay)
		r.POST("/:id/pay", PayInstallment)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Installments
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/installments/{id} [options]
func OptionsInstallmentDetail(c *gin.Context) {
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

	_, _, err := installmentForUser(uri, userID)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetDelete(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Installments
// @Success		204
// @Router			/v1/installments/{id}/pay [options]
func OptionsInstallmentPay(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Installments
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/goals/{id}/installments [options]
func OptionsGoalInstallments(c *gin.Context) {
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

	_, err := debtForUser(uri, userID)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Installments
// @Success		204
// @Router			/v1/goals/{id}/installments/pay-all [options]
func OptionsGoalInstallmentsPayAll(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Get installments
// @Description	Returns all installments of a debt goal, ordered by due date
// @Tags			Installments
// @Produce		json
// @Success		200	{object}	InstallmentListResponse
// @Failure		400	{object}	InstallmentListResponse
// @Failure		404	{object}	InstallmentListResponse
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/goals/{id}/installments [get]
func GetGoalInstallments(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusOK, InstallmentListResponse{Data: []InstallmentDetail{}})
		return
	}

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(status(err), InstallmentListResponse{Error: &e})
		return
	}

	goal, err := debtForUser(uri, userID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), InstallmentListResponse{Error: &e})
		return
	}

	installments, err := goalInstallments(goal)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), InstallmentListResponse{Error: &e})
		return
	}

	data := make([]InstallmentDetail, 0, len(installments))
	for _, installment := range installments {
		data = append(data, newInstallment(c, installment))
	}

	c.JSON(http.StatusOK, InstallmentListResponse{Data: data})
}

// @Summary		Register installment
// @Description	Registers a payment on a debt goal. A payment registered as already paid immediately raises the paid amount of the debt.
// @Tags			Installments
// @Produce		json
// @Success		201			{object}	InstallmentResponse
// @Failure		400			{object}	InstallmentResponse
// @Failure		401			{object}	httpError
// @Failure		404			{object}	InstallmentResponse
// @Param			id			path		URIID				true	"ID formatted as string"
// @Param			installment	body		InstallmentEditable	true	"Installment"
// @Router			/v1/goals/{id}/installments [post]
func CreateGoalInstallment(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(status(err), InstallmentResponse{Error: &e})
		return
	}

	goal, err := debtForUser(uri, userID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), InstallmentResponse{Error: &e})
		return
	}

	var editable InstallmentEditable
	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, InstallmentResponse{Error: &e})
		return
	}

	now := time.Now().In(time.UTC)

	installment := models.Installment{
		GoalID:  goal.ID,
		Amount:  editable.Amount,
		DueDate: finance.ParsePaymentDate(editable.Date, now),
		Status:  models.InstallmentUpcoming,
	}
	if editable.Paid {
		installment.Status = models.InstallmentPaid
	}

	err = models.DB.Create(&installment).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), InstallmentResponse{Error: &e})
		return
	}

	// A payment registered as paid counts towards the debt right away
	if editable.Paid {
		err = creditGoal(&goal, installment.Amount)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), InstallmentResponse{Error: &e})
			return
		}
	}

	apiResource := newInstallment(c, installment)
	c.JSON(http.StatusCreated, InstallmentResponse{Data: &apiResource})
}

// @Summary		Get installment
// @Description	Returns a specific installment
// @Tags			Installments
// @Produce		json
// @Success		200	{object}	InstallmentResponse
// @Failure		400	{object}	InstallmentResponse
// @Failure		404	{object}	InstallmentResponse
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/installments/{id} [get]
func GetInstallment(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		e := models.ErrResourceNotFound.Error()
		c.JSON(http.StatusNotFound, InstallmentResponse{Error: &e})
		return
	}

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(status(err), InstallmentResponse{Error: &e})
		return
	}

	installment, _, err := installmentForUser(uri, userID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), InstallmentResponse{Error: &e})
		return
	}

	apiResource := newInstallment(c, installment)
	c.JSON(http.StatusOK, InstallmentResponse{Data: &apiResource})
}

// @Summary		Delete installment
// @Description	Deletes an installment. The paid amount of the debt is left untouched.
// @Tags			Installments
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/installments/{id} [delete]
func DeleteInstallment(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	installment, _, err := installmentForUser(uri, userID)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&installment).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Pay installment
// @Description	Marks an installment as paid and raises the paid amount of its debt by the installment amount
// @Tags			Installments
// @Produce		json
// @Success		200	{object}	InstallmentResponse
// @Failure		400	{object}	InstallmentResponse
// @Failure		401	{object}	httpError
// @Failure		404	{object}	InstallmentResponse
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/installments/{id}/pay [post]
func PayInstallment(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(status(err), InstallmentResponse{Error: &e})
		return
	}

	installment, goal, err := installmentForUser(uri, userID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), InstallmentResponse{Error: &e})
		return
	}

	if installment.Status == models.InstallmentPaid {
		e := models.ErrInstallmentAlreadyPaid.Error()
		c.JSON(http.StatusBadRequest, InstallmentResponse{Error: &e})
		return
	}

	// Two separate writes: settle the installment, then credit the
	// payment to the debt.
	err = models.DB.Model(&installment).Update("Status", models.InstallmentPaid).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), InstallmentResponse{Error: &e})
		return
	}

	err = creditGoal(&goal, installment.Amount)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), InstallmentResponse{Error: &e})
		return
	}

	apiResource := newInstallment(c, installment)
	c.JSON(http.StatusOK, InstallmentResponse{Data: &apiResource})
}

// @Summary		Pay all installments
// @Description	Marks every open installment of a debt as paid. The paid amount of the debt is raised once, by the sum of all settled installments.
// @Tags			Installments
// @Produce		json
// @Success		200	{object}	PayAllResponse
// @Failure		400	{object}	PayAllResponse
// @Failure		401	{object}	httpError
// @Failure		404	{object}	PayAllResponse
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/goals/{id}/installments/pay-all [post]
func PayAllGoalInstallments(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(status(err), PayAllResponse{Error: &e})
		return
	}

	goal, err := debtForUser(uri, userID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PayAllResponse{Error: &e})
		return
	}

	installments, err := goalInstallments(goal)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PayAllResponse{Error: &e})
		return
	}

	paidCount := 0
	paidAmount := decimal.Zero
	for i := range installments {
		if installments[i].Status == models.InstallmentPaid {
			continue
		}

		err = models.DB.Model(&installments[i]).Update("Status", models.InstallmentPaid).Error
		if err != nil {
			e := err.Error()
			c.JSON(status(err), PayAllResponse{Error: &e})
			return
		}

		paidCount++
		paidAmount = paidAmount.Add(installments[i].Amount)
	}

	// The debt is credited once, with the sum of everything settled
	if paidCount > 0 {
		err = creditGoal(&goal, paidAmount)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), PayAllResponse{Error: &e})
			return
		}
	}

	apiResource, err := goalWithViews(c, userID, goal)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PayAllResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, PayAllResponse{
		Data: &PayAllResult{
			PaidCount:  paidCount,
			PaidAmount: paidAmount,
			Goal:       &apiResource,
		},
	})
}

// creditGoal raises the paid amount of a debt by the given amount.
func creditGoal(goal *models.Goal, amount decimal.Decimal) error {
	return models.DB.Model(goal).Update("CurrentAmount", goal.CurrentAmount.Add(amount)).Error
}

// debtForUser loads a goal of the user and verifies it is a debt.
func debtForUser(uri URIID, userID string) (models.Goal, error) {
	var goal models.Goal
	err := models.DB.First(&goal, "id = ? AND user_id = ?", uri.ID.UUID, userID).Error
	if err != nil {
		return models.Goal{}, err
	}

	if goal.Kind != models.GoalDebt {
		return models.Goal{}, errGoalNotDebt
	}

	return goal, nil
}

// installmentForUser loads an installment and the debt it belongs to,
// verifying both belong to the user.
func installmentForUser(uri URIID, userID string) (models.Installment, models.Goal, error) {
	var installment models.Installment
	err := models.DB.First(&installment, "id = ?", uri.ID.UUID).Error
	if err != nil {
		return models.Installment{}, models.Goal{}, err
	}

	var goal models.Goal
	err = models.DB.First(&goal, "id = ? AND user_id = ?", installment.GoalID, userID).Error
	if err != nil {
		return models.Installment{}, models.Goal{}, err
	}

	return installment, goal, nil
}
