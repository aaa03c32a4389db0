package services

import (
	"errors"
	"strings"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "budgetbuddy/internal/errors"
	"budgetbuddy/internal/models"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
	// seeding collapses concurrent default seeding for the same user.
	seeding singleflight.Group
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// EnsureDefaultCategories seeds the default categories for a user that has
// none. It is safe to call before every read.
func (s *categoryService) EnsureDefaultCategories(userID string) error {
	_, err, _ := s.seeding.Do(userID, func() (interface{}, error) {
		var count int64
		if err := s.db.Model(&models.Category{}).
			Where("user_id = ? AND is_default = ?", userID, true).
			Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return nil, nil
		}

		categories := make([]models.Category, 0, len(models.DefaultCategories))
		for _, d := range models.DefaultCategories {
			categories = append(categories, models.Category{
				UserID:    userID,
				Name:      d.Name,
				Icon:      d.Icon,
				Color:     d.Color,
				IsDefault: true,
			})
		}

		// A user may already own a custom category with a default name.
		if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&categories).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil, nil
	})
	return err
}

// GetUserCategories returns the user's categories, defaults first and the
// rest in creation order.
func (s *categoryService) GetUserCategories(userID string) ([]models.Category, error) {
	if err := s.EnsureDefaultCategories(userID); err != nil {
		return nil, err
	}

	var categories []models.Category
	if err := s.db.Where("user_id = ?", userID).
		Order("is_default DESC").
		Order("created_at ASC").
		Order("id ASC").
		Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// GetCategoryByID retrieves a category by ID for a specific user
func (s *categoryService) GetCategoryByID(userID, categoryID string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// CreateCategory creates a new category
func (s *categoryService) CreateCategory(userID, name, icon, color string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}
	if icon == "" {
		icon = models.DefaultCategoryIcon
	}
	if color == "" {
		color = models.DefaultCategoryColor
	}

	category := &models.Category{
		UserID:    userID,
		Name:      name,
		Icon:      icon,
		Color:     color,
		IsDefault: false,
	}

	if err := s.db.Create(category).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ErrDuplicateCategoryName
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return category, nil
}

// UpdateCategory renames or restyles a category. Empty icon and color keep
// the current values.
func (s *categoryService) UpdateCategory(userID, categoryID, name, icon, color string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	category, err := s.GetCategoryByID(userID, categoryID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"name": name}
	if icon != "" {
		updates["icon"] = icon
	}
	if color != "" {
		updates["color"] = color
	}

	if err := s.db.Model(category).Updates(updates).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ErrDuplicateCategoryName
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetCategoryByID(userID, categoryID)
}

// DeleteCategory removes a custom category and detaches its expenses.
// Default categories and unknown ids are left untouched without an error.
func (s *categoryService) DeleteCategory(userID, categoryID string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		err := tx.Where("id = ? AND user_id = ? AND is_default = ?", categoryID, userID, false).
			First(&category).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := tx.Model(&models.Expense{}).
			Where("category_id = ? AND user_id = ?", category.ID, userID).
			Update("category_id", nil).Error; err != nil {
			return err
		}

		return tx.Where("id = ? AND user_id = ? AND is_default = ?", category.ID, userID, false).
			Delete(&models.Category{}).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
