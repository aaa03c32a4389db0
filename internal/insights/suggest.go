package insights

import (
	"strings"
)

// MaxSuggestions caps the number of tips returned by Suggest.
const MaxSuggestions = 6

// SuggestionType is the tone of a tip.
type SuggestionType string

const (
	TypeExtreme     SuggestionType = "extreme"
	TypeModerate    SuggestionType = "moderate"
	TypeFun         SuggestionType = "fun"
	TypeCelebration SuggestionType = "celebration"
)

// Suggestion is a single tip. IDs are stable within one response only.
type Suggestion struct {
	ID          string         `json:"id"`
	Type        SuggestionType `json:"type"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Icon        string         `json:"icon"`
	Color       string         `json:"color"`
	Actionable  bool           `json:"actionable"`
}

// Suggest selects up to MaxSuggestions tips for the analysis. Stages run in
// a fixed order and the result is truncated after the last one, so later
// stages are the first to be cut.
func Suggest(a Analysis) []Suggestion {
	if a.BudgetStatus == StatusNoBudget {
		return onboardingTips()
	}

	var out []Suggestion
	switch a.BudgetStatus {
	case StatusOver:
		out = append(out, overTips(a)...)
	case StatusUnder:
		out = append(out, underTips(a)...)
	case StatusOnTrack:
		out = append(out, onTrackTips(a)...)
	}
	out = append(out, generalTips()...)
	out = append(out, keywordTips(a.TopCategory)...)

	if len(out) > MaxSuggestions {
		out = out[:MaxSuggestions]
	}
	return out
}

func onboardingTips() []Suggestion {
	return []Suggestion{
		{
			ID:          "1",
			Type:        TypeModerate,
			Title:       "Start with a Budget! 🎯",
			Description: "Create your first budget to start tracking your spending and get personalized suggestions.",
			Icon:        "🎯",
			Color:       "from-blue-400 to-purple-500",
			Actionable:  true,
		},
		{
			ID:          "2",
			Type:        TypeFun,
			Title:       "Track Everything for a Week 📝",
			Description: "Write down every expense for 7 days to understand your spending patterns before setting a budget.",
			Icon:        "📝",
			Color:       "from-green-400 to-blue-500",
			Actionable:  true,
		},
		{
			ID:          "3",
			Type:        TypeFun,
			Title:       "Start Small, Dream Big! ✨",
			Description: "Begin with a realistic weekly budget. You can always adjust it as you learn your spending habits.",
			Icon:        "✨",
			Color:       "from-purple-400 to-pink-500",
			Actionable:  false,
		},
	}
}

func overTips(a Analysis) []Suggestion {
	cookAtHome := "Try meal prepping and cooking at home to save money on food expenses."
	if a.TopCategory != nil && a.TopCategory.Name == "Meals" {
		cookAtHome = a.TopCategory.Icon + " Meals are " + percent(a.TopCategory) +
			"% of your spending! Try cooking at home for the rest of the " + periodNoun(a) + "."
	}

	tips := []Suggestion{
		{
			ID:          "over-1",
			Type:        TypeExtreme,
			Title:       "Emergency Mode Activated! 🚨",
			Description: "You're $" + money(a.OverageAmount) + " over budget! Time for some serious spending cuts. Consider the 24-hour rule before any non-essential purchases.",
			Icon:        "🚨",
			Color:       "from-red-500 to-orange-500",
			Actionable:  true,
		},
		{
			ID:          "over-2",
			Type:        TypeExtreme,
			Title:       "Cook at Home Challenge! 👨‍🍳",
			Description: cookAtHome,
			Icon:        "👨‍🍳",
			Color:       "from-red-400 to-pink-500",
			Actionable:  true,
		},
		{
			ID:          "over-3",
			Type:        TypeExtreme,
			Title:       "No-Spend Challenge! 💪",
			Description: "Challenge yourself to a no-spend day (or three!). Only buy absolute necessities. Your wallet will thank you!",
			Icon:        "💪",
			Color:       "from-orange-500 to-red-500",
			Actionable:  true,
		},
	}

	if top := a.TopCategory; top != nil {
		tips = append(tips, Suggestion{
			ID:          "over-4",
			Type:        TypeExtreme,
			Title:       top.Icon + " " + top.Name + " Alert!",
			Description: "You've spent $" + top.Amount.StringFixed(2) + " on " + top.Name + " (" + percent(top) + "% of your budget). Time to find alternatives!",
			Icon:        top.Icon,
			Color:       "from-red-500 to-purple-500",
			Actionable:  true,
		})
	}
	return tips
}

func underTips(a Analysis) []Suggestion {
	under := money(a.UnderAmount)
	return []Suggestion{
		{
			ID:          "under-1",
			Type:        TypeCelebration,
			Title:       "Budget Superstar! 🌟",
			Description: "Amazing! You're $" + under + " under budget. You're crushing your financial goals!",
			Icon:        "🌟",
			Color:       "from-green-400 to-blue-500",
			Actionable:  false,
		},
		{
			ID:          "under-2",
			Type:        TypeFun,
			Title:       "Treat Yourself (A Little)! 🍦",
			Description: "You've been so good with your budget! Maybe it's time for a small, guilt-free treat. You've earned it!",
			Icon:        "🍦",
			Color:       "from-pink-400 to-purple-500",
			Actionable:  true,
		},
		{
			ID:          "under-3",
			Type:        TypeFun,
			Title:       "Emergency Fund Boost! 💰",
			Description: "Consider moving some of that extra $" + under + " to your emergency fund. Future you will be grateful!",
			Icon:        "💰",
			Color:       "from-green-500 to-teal-500",
			Actionable:  true,
		},
		{
			ID:          "under-4",
			Type:        TypeFun,
			Title:       "Investment Opportunity! 📈",
			Description: "With your excellent budgeting skills, maybe it's time to explore some low-risk investments for that extra money?",
			Icon:        "📈",
			Color:       "from-blue-400 to-green-500",
			Actionable:  true,
		},
	}
}

func onTrackTips(a Analysis) []Suggestion {
	champion := "Great job spreading your expenses across different categories!"
	if top := a.TopCategory; top != nil {
		champion = top.Icon + " " + top.Name + " is your biggest expense at " + percent(top) + "%. Keep an eye on it!"
	}

	return []Suggestion{
		{
			ID:          "track-1",
			Type:        TypeModerate,
			Title:       "Steady as She Goes! ⚖️",
			Description: "You're right on track with your budget! Keep up the great work and maintain this balance.",
			Icon:        "⚖️",
			Color:       "from-blue-400 to-purple-500",
			Actionable:  false,
		},
		{
			ID:          "track-2",
			Type:        TypeModerate,
			Title:       "Weekly Check-ins! 📅",
			Description: "Your daily average is $" + a.AverageDailySpend.StringFixed(2) + ". Try checking your spending every few days to stay on track.",
			Icon:        "📅",
			Color:       "from-purple-400 to-pink-500",
			Actionable:  true,
		},
		{
			ID:          "track-3",
			Type:        TypeFun,
			Title:       "Category Champion! 🏆",
			Description: champion,
			Icon:        "🏆",
			Color:       "from-yellow-400 to-orange-500",
			Actionable:  false,
		},
	}
}

func generalTips() []Suggestion {
	return []Suggestion{
		{
			ID:          "general-1",
			Type:        TypeFun,
			Title:       "Receipt Detective! 🕵️",
			Description: "Take photos of your receipts and review them weekly. You might spot some surprising spending patterns!",
			Icon:        "🕵️",
			Color:       "from-indigo-400 to-purple-500",
			Actionable:  true,
		},
		{
			ID:          "general-2",
			Type:        TypeFun,
			Title:       "The 50/30/20 Rule! 📊",
			Description: "Try allocating 50% for needs, 30% for wants, and 20% for savings. It's a classic for a reason!",
			Icon:        "📊",
			Color:       "from-teal-400 to-blue-500",
			Actionable:  true,
		},
	}
}

// keywordTips applies every keyword rule matching the top category. It only
// fires when the category takes more than 40% of the spend.
func keywordTips(top *TopCategory) []Suggestion {
	if top == nil || !top.Percentage.GreaterThan(keywordShare) {
		return nil
	}

	name := strings.ToLower(top.Name)
	amount := top.Amount.StringFixed(2)
	pct := percent(top)

	var out []Suggestion
	for _, rule := range keywordRules {
		if !rule.matches(name) {
			continue
		}
		for _, tpl := range rule.tips {
			out = append(out, tpl.render(amount, pct))
		}
	}
	return out
}

func periodNoun(a Analysis) string {
	if a.Timeframe == "weekly" {
		return "week"
	}
	return "month"
}
