package v1

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/centavo-app/backend/internal/analysis"
	"github.com/centavo-app/backend/internal/finance"
	"github.com/centavo-app/backend/internal/httputil"
	"github.com/centavo-app/backend/internal/models"
	"github.com/centavo-app/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// analysisTimeout bounds a single request to the external analyzer.
const analysisTimeout = 10 * time.Second

func RegisterSummaryRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsSummary)
	r.GET("", GetSummary)
}

func RegisterInsightRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsInsights)
	r.GET("", GetInsights)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Summary
// @Success		204
// @Router			/v1/summary [options]
func OptionsSummary(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Summary
// @Success		204
// @Router			/v1/insights [options]
func OptionsInsights(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Finance summary
// @Description	Returns the consolidated month view: income against expenses and subscriptions. Reading the current month also persists it as the monthly finance snapshot.
// @Tags			Summary
// @Produce		json
// @Success		200	{object}	FinanceSummaryResponse
// @Failure		400	{object}	FinanceSummaryResponse
// @Router			/v1/summary [get]
// @Param			month	query	string	false	"The month, as YYYY-MM. Defaults to the current month."
func GetSummary(c *gin.Context) {
	now := time.Now().In(time.UTC)
	month := types.MonthOf(now)

	var query QueryMonth
	if err := c.Bind(&query); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, FinanceSummaryResponse{Error: &e})
		return
	}

	if query.Month != "" {
		parsed, err := types.ParseMonth(query.Month)
		if err != nil {
			e := errMonthInvalid.Error()
			c.JSON(http.StatusBadRequest, FinanceSummaryResponse{Error: &e})
			return
		}
		month = parsed
	}

	userID, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusOK, FinanceSummaryResponse{Data: &FinanceSummary{Month: month}})
		return
	}

	summary, err := financeSummary(userID, month, now)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), FinanceSummaryResponse{Error: &e})
		return
	}

	// Only the live month is snapshotted, historic months stay as
	// they were persisted.
	if month.Equal(types.MonthOf(now)) {
		err = models.UpsertFinanceSnapshot(models.DB, &models.FinanceSnapshot{
			UserID:   userID,
			Month:    month,
			Income:   summary.Income,
			Outflows: summary.Outflows,
			Balance:  summary.Balance,
		})
		if err != nil {
			e := err.Error()
			c.JSON(status(err), FinanceSummaryResponse{Error: &e})
			return
		}

		snapshotsUpserted.WithLabelValues("finance").Inc()
	}

	c.JSON(http.StatusOK, FinanceSummaryResponse{Data: summary})
}

// @Summary		Insights
// @Description	Returns the generated insights for the current numbers. When an external analyzer is configured, a natural language summary is added; on analyzer errors the insights alone are returned.
// @Tags			Summary
// @Produce		json
// @Success		200	{object}	InsightReportResponse
// @Failure		400	{object}	InsightReportResponse
// @Router			/v1/insights [get]
func GetInsights(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusOK, InsightReportResponse{Data: &InsightReport{Insights: []finance.Insight{}}})
		return
	}

	now := time.Now().In(time.UTC)

	snapshot, err := insightSnapshot(userID, now)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), InsightReportResponse{Error: &e})
		return
	}

	lang := finance.MatchLanguage(c.GetHeader("Accept-Language"))
	report := InsightReport{
		Insights: finance.Generate(snapshot, lang),
	}

	if summary, ok := analyzeSnapshot(c.Request.Context(), snapshot, report.Insights); ok {
		report.Summary = &summary
	}

	c.JSON(http.StatusOK, InsightReportResponse{Data: &report})
}

// financeSummary recomputes the month view from the raw records.
func financeSummary(userID string, month types.Month, now time.Time) (*FinanceSummary, error) {
	var sources []models.IncomeSource
	err := models.DB.Where("user_id = ?", userID).Find(&sources).Error
	if err != nil {
		return nil, err
	}

	var subscriptions []models.Subscription
	err = models.DB.Where("user_id = ?", userID).Find(&subscriptions).Error
	if err != nil {
		return nil, err
	}

	expenses, err := expenseTotal(userID, month)
	if err != nil {
		return nil, err
	}

	var goalCount int64
	err = models.DB.Model(&models.Goal{}).Where("user_id = ?", userID).Count(&goalCount).Error
	if err != nil {
		return nil, err
	}

	income := finance.MonthlyIncome(sources, month.End())
	subscriptionTotal := finance.Commitments(subscriptions, now).MonthlyTotal
	outflows := expenses.Add(subscriptionTotal)

	return &FinanceSummary{
		Month:             month,
		Income:            income,
		Outflows:          outflows,
		Balance:           income.Sub(outflows),
		Expenses:          expenses,
		Subscriptions:     subscriptionTotal,
		GoalCount:         int(goalCount),
		SubscriptionCount: len(subscriptions),
	}, nil
}

// expenseTotal sums all expenses of the user booked in the month.
func expenseTotal(userID string, month types.Month) (decimal.Decimal, error) {
	var sum decimal.NullDecimal

	err := models.DB.Table("budget_expenses").
		Select("SUM(amount)").
		Where("user_id = ?", userID).
		Where("date >= ? AND date < ?", month.Start(), month.AddDate(0, 1).Start()).
		Where("deleted_at IS NULL").
		Row().
		Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}

	return sum.Decimal, nil
}

// insightSnapshot assembles the numeric input of the insight rules
// from all aggregates of the user.
func insightSnapshot(userID string, now time.Time) (finance.Snapshot, error) {
	var sources []models.IncomeSource
	err := models.DB.Where("user_id = ?", userID).Find(&sources).Error
	if err != nil {
		return finance.Snapshot{}, err
	}

	incomeHistory, err := incomeSnapshots(userID)
	if err != nil {
		return finance.Snapshot{}, err
	}

	var subscriptions []models.Subscription
	err = models.DB.Where("user_id = ?", userID).Find(&subscriptions).Error
	if err != nil {
		return finance.Snapshot{}, err
	}

	month := types.MonthOf(now)

	var categories []models.BudgetCategory
	err = models.DB.
		Where("user_id = ?", userID).
		Where("month >= date(?) AND month < date(?)", month, month.AddDate(0, 1)).
		Find(&categories).Error
	if err != nil {
		return finance.Snapshot{}, err
	}

	totalSpent := decimal.Zero
	totalLimit := decimal.Zero
	for _, category := range categories {
		spent, err := category.SpentAmount(models.DB)
		if err != nil {
			return finance.Snapshot{}, err
		}

		totalSpent = totalSpent.Add(spent)
		totalLimit = totalLimit.Add(category.Limit)
	}

	var goals []models.Goal
	err = models.DB.Where("user_id = ?", userID).Find(&goals).Error
	if err != nil {
		return finance.Snapshot{}, err
	}

	lateInstallments := 0
	debtsNearCompletion := 0
	investmentsContributing := 0
	for _, goal := range goals {
		switch goal.Kind {
		case models.GoalDebt:
			installments, err := goalInstallments(goal)
			if err != nil {
				return finance.Snapshot{}, err
			}

			summary := finance.Debt(goal, installments, now)
			if summary.NextIsLate {
				lateInstallments++
			}
			if summary.ProgressPercent.GreaterThanOrEqual(decimal.NewFromInt(80)) {
				debtsNearCompletion++
			}

		case models.GoalInvestment:
			if goal.Contribution != nil && goal.Contribution.IsPositive() {
				investmentsContributing++
			}
		}
	}

	return finance.Snapshot{
		MonthlyIncome:           finance.MonthlyIncome(sources, now),
		FixedIncome:             finance.FixedIncome(sources, now),
		VariableIncome:          finance.VariableIncome(sources, now),
		VariationPercent:        finance.VariationPercent(incomeHistory),
		SubscriptionMonthly:     finance.Commitments(subscriptions, now).MonthlyTotal,
		SubscriptionCount:       len(subscriptions),
		BudgetLimitUsage:        finance.LimitUsagePercent(totalSpent, totalLimit),
		LateInstallments:        lateInstallments,
		DebtsNearCompletion:     debtsNearCompletion,
		InvestmentsContributing: investmentsContributing,
	}, nil
}

// analyzeSnapshot asks the external analyzer for a natural language
// summary. Any failure falls back to the locally generated insights,
// the endpoint never errors because of the analyzer.
func analyzeSnapshot(ctx context.Context, snapshot finance.Snapshot, insights []finance.Insight) (string, bool) {
	if os.Getenv("GEMINI_API_KEY") == "" {
		return "", false
	}

	events := make([]string, 0, len(insights))
	for _, insight := range insights {
		events = append(events, insight.Text)
	}

	payload := analysis.Payload{
		Totals: map[string]decimal.Decimal{
			"monthlyIncome":       snapshot.MonthlyIncome,
			"fixedIncome":         snapshot.FixedIncome,
			"variableIncome":      snapshot.VariableIncome,
			"variationPercent":    snapshot.VariationPercent,
			"subscriptionMonthly": snapshot.SubscriptionMonthly,
			"budgetLimitUsage":    snapshot.BudgetLimitUsage,
		},
		Counts: map[string]int{
			"subscriptions":           snapshot.SubscriptionCount,
			"lateInstallments":        snapshot.LateInstallments,
			"debtsNearCompletion":     snapshot.DebtsNearCompletion,
			"investmentsContributing": snapshot.InvestmentsContributing,
		},
		RecentEvents: events,
	}

	ctx, cancel := context.WithTimeout(ctx, analysisTimeout)
	defer cancel()

	analysisRequests.Inc()

	summary, err := analysis.NewGemini(os.Getenv("GEMINI_MODEL")).Analyze(ctx, payload)
	if err != nil {
		analysisFallbacks.Inc()
		log.Debug().Err(err).Msg("analysis fallback")
		return "", false
	}

	return summary, true
}
