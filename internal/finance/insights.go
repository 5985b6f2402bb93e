package finance

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

// Snapshot is the immutable numeric input of the insight rules. It is
// assembled once per request from the outputs of the other aggregators.
type Snapshot struct {
	MonthlyIncome    decimal.Decimal
	FixedIncome      decimal.Decimal
	VariableIncome   decimal.Decimal
	VariationPercent decimal.Decimal

	SubscriptionMonthly decimal.Decimal
	SubscriptionCount   int

	BudgetLimitUsage decimal.Decimal

	LateInstallments    int
	DebtsNearCompletion int

	InvestmentsContributing int
}

// Insight is one short statement about the snapshot.
type Insight struct {
	Code string `json:"code" example:"income-stable"`
	Text string `json:"text" example:"Renda estável neste mês"`
	Tag  string `json:"tag,omitempty" example:"success"`
}

var supportedLanguages = []language.Tag{
	language.MustParse("pt-BR"), // default
	language.English,
}

var languageMatcher = language.NewMatcher(supportedLanguages)

// MatchLanguage picks the insight language for an Accept-Language
// header. Unknown or empty headers fall back to pt-BR.
func MatchLanguage(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return supportedLanguages[0]
	}

	_, index, _ := languageMatcher.Match(tags...)
	return supportedLanguages[index]
}

func pick(lang language.Tag, pt, en string) string {
	if lang == language.English {
		return en
	}

	return pt
}

var (
	variationStable    = decimal.NewFromInt(5)
	usageAttention     = decimal.NewFromInt(80)
	subscriptionWeight = decimal.NewFromFloat(0.15)
)

type rule struct {
	code string
	tag  string
	when func(Snapshot) bool
	text func(Snapshot, language.Tag) string
}

// The rules are evaluated top to bottom and each may independently
// append an insight. This is a non-exclusive list, several insights can
// co-occur in one pass.
var rules = []rule{
	{
		code: "income-stable",
		tag:  "success",
		when: func(s Snapshot) bool {
			return s.MonthlyIncome.IsPositive() && s.VariationPercent.Abs().LessThan(variationStable)
		},
		text: func(_ Snapshot, lang language.Tag) string {
			return pick(lang, "Renda estável neste mês", "Your income is stable this month")
		},
	},
	{
		code: "income-up",
		tag:  "success",
		when: func(s Snapshot) bool {
			return s.VariationPercent.GreaterThanOrEqual(variationStable)
		},
		text: func(s Snapshot, lang language.Tag) string {
			v := s.VariationPercent.Round(1)
			return pick(lang,
				fmt.Sprintf("Variação positiva de %s%% na renda", v),
				fmt.Sprintf("Income went up by %s%%", v))
		},
	},
	{
		code: "income-down",
		tag:  "warning",
		when: func(s Snapshot) bool {
			return s.VariationPercent.LessThanOrEqual(variationStable.Neg())
		},
		text: func(s Snapshot, lang language.Tag) string {
			v := s.VariationPercent.Abs().Round(1)
			return pick(lang,
				fmt.Sprintf("Sua renda caiu %s%% em relação ao mês anterior", v),
				fmt.Sprintf("Your income dropped by %s%% compared to last month", v))
		},
	},
	{
		code: "income-volatile",
		tag:  "warning",
		when: func(s Snapshot) bool {
			total := s.FixedIncome.Add(s.VariableIncome)
			return total.IsPositive() && s.VariableIncome.Div(total).GreaterThan(volatilityHigh)
		},
		text: func(_ Snapshot, lang language.Tag) string {
			return pick(lang,
				"Mais da metade da sua renda é variável, reserve ao menos 20% dela",
				"More than half of your income is variable, set aside at least 20% of it")
		},
	},
	{
		code: "budget-blown",
		tag:  "warning",
		when: func(s Snapshot) bool {
			return s.BudgetLimitUsage.GreaterThanOrEqual(hundred)
		},
		text: func(s Snapshot, lang language.Tag) string {
			u := s.BudgetLimitUsage.Round(0)
			return pick(lang,
				fmt.Sprintf("Orçamento estourado: %s%% do limite do mês já foi gasto", u),
				fmt.Sprintf("Budget blown: %s%% of this month's limit is already spent", u))
		},
	},
	{
		code: "budget-attention",
		tag:  "info",
		when: func(s Snapshot) bool {
			return s.BudgetLimitUsage.GreaterThanOrEqual(usageAttention) && s.BudgetLimitUsage.LessThan(hundred)
		},
		text: func(s Snapshot, lang language.Tag) string {
			u := s.BudgetLimitUsage.Round(0)
			return pick(lang,
				fmt.Sprintf("Atenção: %s%% do limite do mês já foi gasto", u),
				fmt.Sprintf("Heads up: %s%% of this month's limit is already spent", u))
		},
	},
	{
		code: "subscriptions-heavy",
		tag:  "warning",
		when: func(s Snapshot) bool {
			return s.MonthlyIncome.IsPositive() &&
				s.SubscriptionMonthly.Div(s.MonthlyIncome).GreaterThanOrEqual(subscriptionWeight)
		},
		text: func(s Snapshot, lang language.Tag) string {
			share := s.SubscriptionMonthly.Div(s.MonthlyIncome).Mul(hundred).Round(0)
			return pick(lang,
				fmt.Sprintf("Assinaturas consomem %s%% da sua renda mensal", share),
				fmt.Sprintf("Subscriptions take up %s%% of your monthly income", share))
		},
	},
	{
		code: "installments-late",
		tag:  "warning",
		when: func(s Snapshot) bool {
			return s.LateInstallments > 0
		},
		text: func(s Snapshot, lang language.Tag) string {
			return pick(lang,
				fmt.Sprintf("Você tem %d parcela(s) em atraso", s.LateInstallments),
				fmt.Sprintf("You have %d late installment(s)", s.LateInstallments))
		},
	},
	{
		code: "debt-almost-done",
		tag:  "success",
		when: func(s Snapshot) bool {
			return s.DebtsNearCompletion > 0
		},
		text: func(s Snapshot, lang language.Tag) string {
			return pick(lang,
				fmt.Sprintf("%d dívida(s) perto de serem quitadas, continue assim", s.DebtsNearCompletion),
				fmt.Sprintf("%d debt(s) close to being paid off, keep it up", s.DebtsNearCompletion))
		},
	},
	{
		code: "investments-on-track",
		tag:  "info",
		when: func(s Snapshot) bool {
			return s.InvestmentsContributing > 0
		},
		text: func(s Snapshot, lang language.Tag) string {
			return pick(lang,
				fmt.Sprintf("%d investimento(s) com aportes regulares em andamento", s.InvestmentsContributing),
				fmt.Sprintf("%d investment(s) with regular contributions in progress", s.InvestmentsContributing))
		},
	},
}

// Generate runs the insight rules over the snapshot. The result order
// follows the rule order and is deterministic for equal snapshots.
func Generate(s Snapshot, lang language.Tag) []Insight {
	insights := make([]Insight, 0, len(rules))
	for _, r := range rules {
		if !r.when(s) {
			continue
		}

		insights = append(insights, Insight{
			Code: r.code,
			Text: r.text(s, lang),
			Tag:  r.tag,
		})
	}

	return insights
}
