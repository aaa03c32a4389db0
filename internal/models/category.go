package models

// Default presentation for categories created without an icon or color.
const (
	DefaultCategoryIcon  = "📝"
	DefaultCategoryColor = "#6366f1"
)

// Category groups expenses. Names are unique per user.
type Category struct {
	Base
	UserID    string `gorm:"type:uuid;not null;uniqueIndex:idx_category_user_name" json:"user_id"`
	Name      string `gorm:"size:100;not null;uniqueIndex:idx_category_user_name" json:"name"`
	Icon      string `gorm:"size:32;not null" json:"icon"`
	Color     string `gorm:"size:7;not null" json:"color"`
	IsDefault bool   `gorm:"not null;default:false" json:"is_default"`
}

// TableName overrides the table name used by GORM.
func (Category) TableName() string {
	return "expense_categories"
}

// DefaultCategory describes one of the categories seeded for every user.
type DefaultCategory struct {
	Name  string
	Icon  string
	Color string
}

// DefaultCategories is the set seeded for each new user.
var DefaultCategories = []DefaultCategory{
	{Name: "Meals", Icon: "🍽️", Color: "#f97316"},
	{Name: "Transportation", Icon: "🚗", Color: "#3b82f6"},
	{Name: "Shopping", Icon: "🛍️", Color: "#ec4899"},
	{Name: "Entertainment", Icon: "🎬", Color: "#8b5cf6"},
	{Name: "Utilities", Icon: "💡", Color: "#eab308"},
	{Name: "Healthcare", Icon: "🏥", Color: "#10b981"},
	{Name: "Coffee", Icon: "☕", Color: "#92400e"},
	{Name: "Other", Icon: "📝", Color: "#6366f1"},
}
