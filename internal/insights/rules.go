package insights

import (
	"strings"

	"github.com/shopspring/decimal"
)

// tipTemplate is a Suggestion whose description may contain {amount} and
// {pct} placeholders.
type tipTemplate struct {
	Suggestion
}

func (t tipTemplate) render(amount, pct string) Suggestion {
	s := t.Suggestion
	s.Description = strings.NewReplacer("{amount}", amount, "{pct}", pct).Replace(s.Description)
	return s
}

// keywordRule appends its tips when any keyword is a substring of the
// lower-cased top category name. Rules are not exclusive: "coffee" matches
// both food and coffee, "healthcare" matches transport ("car") and health.
type keywordRule struct {
	name     string
	keywords []string
	tips     []tipTemplate
}

func (r keywordRule) matches(lowerName string) bool {
	for _, kw := range r.keywords {
		if strings.Contains(lowerName, kw) {
			return true
		}
	}
	return false
}

var keywordRules = []keywordRule{
	{
		name:     "food",
		keywords: []string{"food", "dining", "meal", "restaurant", "coffee", "snack"},
		tips: []tipTemplate{
			{Suggestion{
				ID:          "food-health",
				Type:        TypeModerate,
				Title:       "🥗 Healthy Eating Challenge!",
				Description: "You're spending {pct}% on food (${amount}). Try meal prepping with fresh vegetables, lean proteins, and whole grains. Your wallet AND your health will thank you!",
				Icon:        "🥗",
				Color:       "from-green-500 to-emerald-500",
				Actionable:  true,
			}},
			{Suggestion{
				ID:          "food-cook",
				Type:        TypeExtreme,
				Title:       "👨‍🍳 Master Chef Mode!",
				Description: "Time to unleash your inner chef! With ${amount} spent on food, cooking at home could save you 60-70%. Start with simple recipes and gradually build your skills.",
				Icon:        "👨‍🍳",
				Color:       "from-orange-500 to-red-500",
				Actionable:  true,
			}},
		},
	},
	{
		name:     "transport",
		keywords: []string{"transport", "taxi", "grab", "uber", "ride", "car"},
		tips: []tipTemplate{
			{Suggestion{
				ID:          "transport-public",
				Type:        TypeModerate,
				Title:       "🚌 Public Transport Hero!",
				Description: "{pct}% of your budget (${amount}) goes to transportation. Consider public transport, walking, or cycling. It's eco-friendly and budget-friendly!",
				Icon:        "🚌",
				Color:       "from-blue-500 to-green-500",
				Actionable:  true,
			}},
			{Suggestion{
				ID:          "transport-plan",
				Type:        TypeFun,
				Title:       "🗺️ Route Optimizer!",
				Description: "Plan your trips better! Combine errands into one journey, use transport apps to find cheaper routes, or try carpooling with friends. Every saved trip adds up!",
				Icon:        "🗺️",
				Color:       "from-purple-500 to-blue-500",
				Actionable:  true,
			}},
		},
	},
	{
		name:     "shopping",
		keywords: []string{"shopping", "retail", "clothes", "electronics", "gadget", "consumer"},
		tips: []tipTemplate{
			{Suggestion{
				ID:          "shopping-mindful",
				Type:        TypeExtreme,
				Title:       "🛍️ Mindful Shopping Challenge!",
				Description: `Whoa! {pct}% (${amount}) on shopping. Try the 24-hour rule: wait a day before buying non-essentials. Ask yourself: "Do I need this or just want it?"`,
				Icon:        "🛍️",
				Color:       "from-red-500 to-pink-500",
				Actionable:  true,
			}},
			{Suggestion{
				ID:          "shopping-alternatives",
				Type:        TypeModerate,
				Title:       "♻️ Smart Shopper Mode!",
				Description: "Before buying new, try: borrowing from friends, buying second-hand, using discount apps, or waiting for sales. Your future self will appreciate the savings!",
				Icon:        "♻️",
				Color:       "from-green-500 to-teal-500",
				Actionable:  true,
			}},
		},
	},
	{
		name:     "entertainment",
		keywords: []string{"entertainment", "streaming", "subscription", "gaming", "movie", "music"},
		tips: []tipTemplate{
			{Suggestion{
				ID:          "entertainment-audit",
				Type:        TypeModerate,
				Title:       "📺 Subscription Audit Time!",
				Description: "{pct}% on entertainment (${amount})! Review all your subscriptions. Cancel unused ones and consider sharing family plans with friends or family.",
				Icon:        "📺",
				Color:       "from-purple-500 to-indigo-500",
				Actionable:  true,
			}},
			{Suggestion{
				ID:          "entertainment-free",
				Type:        TypeFun,
				Title:       "🎨 Free Fun Explorer!",
				Description: "Discover free entertainment: local events, hiking, free museums, library activities, or game nights with friends. Fun doesn't have to be expensive!",
				Icon:        "🎨",
				Color:       "from-pink-500 to-purple-500",
				Actionable:  true,
			}},
		},
	},
	{
		name:     "health",
		keywords: []string{"health", "medical", "pharmacy", "fitness", "gym", "wellness"},
		tips: []tipTemplate{
			{Suggestion{
				ID:          "health-prevention",
				Type:        TypeFun,
				Title:       "💪 Prevention is Key!",
				Description: "{pct}% on healthcare (${amount}). Invest in prevention: regular exercise, good sleep, healthy eating. It saves money long-term!",
				Icon:        "💪",
				Color:       "from-green-500 to-blue-500",
				Actionable:  true,
			}},
			{Suggestion{
				ID:          "health-alternatives",
				Type:        TypeModerate,
				Title:       "🏃‍♀️ Budget Wellness!",
				Description: "Try free alternatives: outdoor workouts, YouTube fitness videos, walking groups, or home workouts. Your health goals don't need expensive gym memberships!",
				Icon:        "🏃‍♀️",
				Color:       "from-orange-500 to-red-500",
				Actionable:  true,
			}},
		},
	},
	{
		name:     "utilities",
		keywords: []string{"utilities", "electric", "water", "internet", "phone", "bill"},
		tips: []tipTemplate{
			{Suggestion{
				ID:          "utilities-efficiency",
				Type:        TypeModerate,
				Title:       "💡 Energy Efficiency Hero!",
				Description: "{pct}% on utilities (${amount}). Small changes make big differences: LED bulbs, unplugging devices, adjusting thermostat, shorter showers!",
				Icon:        "💡",
				Color:       "from-yellow-500 to-orange-500",
				Actionable:  true,
			}},
			{Suggestion{
				ID:          "utilities-negotiate",
				Type:        TypeFun,
				Title:       "📞 Bill Negotiator!",
				Description: "Call your service providers! Many offer discounts, loyalty rates, or bundle deals. A 10-minute call could save you hundreds per year. You've got this! 💪",
				Icon:        "📞",
				Color:       "from-blue-500 to-purple-500",
				Actionable:  true,
			}},
		},
	},
	{
		name:     "coffee",
		keywords: []string{"coffee", "beverage", "drink", "starbucks", "cafe"},
		tips: []tipTemplate{
			{Suggestion{
				ID:          "coffee-homebrew",
				Type:        TypeExtreme,
				Title:       "☕ Home Barista Challenge!",
				Description: "${amount} on coffee ({pct}%)! Invest in a good coffee maker and quality beans. You'll save money and might discover you make better coffee than the shops!",
				Icon:        "☕",
				Color:       "from-amber-500 to-orange-500",
				Actionable:  true,
			}},
			{Suggestion{
				ID:          "coffee-limit",
				Type:        TypeModerate,
				Title:       "⏰ Coffee Budget Timer!",
				Description: "Set a weekly coffee budget and stick to it. Maybe treat yourself to fancy coffee twice a week and make the rest at home. Balance is key! ⚖️",
				Icon:        "⏰",
				Color:       "from-brown-500 to-amber-500",
				Actionable:  true,
			}},
		},
	},
}

// money renders an optional amount with two decimals, "0.00" when unset.
func money(d *decimal.Decimal) string {
	if d == nil {
		return decimal.Zero.StringFixed(2)
	}
	return d.StringFixed(2)
}

// percent renders a category share as a whole number.
func percent(top *TopCategory) string {
	return top.Percentage.StringFixed(0)
}
