package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "budgetbuddy/internal/errors"
	"budgetbuddy/internal/models"
	"budgetbuddy/internal/services"
)

type mockCategoryService struct {
	ensureDefaultCategoriesFn func(userID string) error
	getUserCategoriesFn       func(userID string) ([]models.Category, error)
	getCategoryByIDFn         func(userID, categoryID string) (*models.Category, error)
	createCategoryFn          func(userID, name, icon, color string) (*models.Category, error)
	updateCategoryFn          func(userID, categoryID, name, icon, color string) (*models.Category, error)
	deleteCategoryFn          func(userID, categoryID string) error
}

var _ services.CategoryServicer = (*mockCategoryService)(nil)

func (m *mockCategoryService) EnsureDefaultCategories(userID string) error {
	if m.ensureDefaultCategoriesFn != nil {
		return m.ensureDefaultCategoriesFn(userID)
	}
	return nil
}

func (m *mockCategoryService) GetUserCategories(userID string) ([]models.Category, error) {
	if m.getUserCategoriesFn != nil {
		return m.getUserCategoriesFn(userID)
	}
	return []models.Category{}, nil
}

func (m *mockCategoryService) GetCategoryByID(userID, categoryID string) (*models.Category, error) {
	if m.getCategoryByIDFn != nil {
		return m.getCategoryByIDFn(userID, categoryID)
	}
	return &models.Category{Base: models.Base{ID: categoryID}, UserID: userID}, nil
}

func (m *mockCategoryService) CreateCategory(userID, name, icon, color string) (*models.Category, error) {
	if m.createCategoryFn != nil {
		return m.createCategoryFn(userID, name, icon, color)
	}
	return &models.Category{Base: models.Base{ID: "c1"}, UserID: userID, Name: name, Icon: icon, Color: color}, nil
}

func (m *mockCategoryService) UpdateCategory(userID, categoryID, name, icon, color string) (*models.Category, error) {
	if m.updateCategoryFn != nil {
		return m.updateCategoryFn(userID, categoryID, name, icon, color)
	}
	return &models.Category{Base: models.Base{ID: categoryID}, UserID: userID, Name: name, Icon: icon, Color: color}, nil
}

func (m *mockCategoryService) DeleteCategory(userID, categoryID string) error {
	if m.deleteCategoryFn != nil {
		return m.deleteCategoryFn(userID, categoryID)
	}
	return nil
}

func setupCategoryRouter(handler *CategoryHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.GET("/categories", handler.GetCategories)
	auth.POST("/categories", handler.CreateCategory)
	auth.PUT("/categories/:id", handler.UpdateCategory)
	auth.DELETE("/categories/:id", handler.DeleteCategory)
	return r
}

func TestCategoryHandler_GetCategories(t *testing.T) {
	svc := &mockCategoryService{
		getUserCategoriesFn: func(userID string) ([]models.Category, error) {
			return []models.Category{
				{Base: models.Base{ID: "c1"}, UserID: userID, Name: "Meals", Icon: "🍽️", Color: "#ef4444", IsDefault: true},
				{Base: models.Base{ID: "c2"}, UserID: userID, Name: "Books", Icon: "📚", Color: "#6366f1"},
			}, nil
		},
	}
	r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}))

	rec := doRequest(r, "GET", "/categories", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	categories := parseJSON(t, rec)["categories"].([]interface{})
	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(categories))
	}
	first := categories[0].(map[string]interface{})
	if first["name"] != "Meals" || first["is_default"] != true {
		t.Errorf("unexpected first category %v", first)
	}
}

func TestCategoryHandler_CreateCategory(t *testing.T) {
	t.Run("returns 201 with message", func(t *testing.T) {
		audit := &mockAuditService{}
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}, audit))

		rec := doRequest(r, "POST", "/categories", `{"name":"Groceries","icon":"🛒","color":"#22c55e"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["message"] != `Category "Groceries" created successfully! 🎉` {
			t.Errorf("unexpected message %v", result["message"])
		}
		if got := audit.actions(); len(got) != 1 || got[0] != "CREATE_CATEGORY" {
			t.Errorf("expected CREATE_CATEGORY audit entry, got %v", got)
		}
	})

	t.Run("passes empty icon and color to the service", func(t *testing.T) {
		var gotIcon, gotColor string
		svc := &mockCategoryService{
			createCategoryFn: func(userID, name, icon, color string) (*models.Category, error) {
				gotIcon, gotColor = icon, color
				return &models.Category{Base: models.Base{ID: "c1"}, Name: name, Icon: "📝", Color: "#6366f1"}, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/categories", `{"name":"Misc"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotIcon != "" || gotColor != "" {
			t.Errorf("expected defaults to be left to the service, got %q %q", gotIcon, gotColor)
		}
	})

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"icon":"🛒"}`},
		{"blank name", `{"name":"   "}`},
		{"bad color", `{"name":"Groceries","color":"green"}`},
		{"name too long", `{"name":"` + longString(101) + `"}`},
	}
	for _, tt := range tests {
		t.Run("returns 400 on "+tt.name, func(t *testing.T) {
			r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}, &mockAuditService{}))

			rec := doRequest(r, "POST", "/categories", tt.body)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
		})
	}

	t.Run("returns 409 on duplicate name", func(t *testing.T) {
		svc := &mockCategoryService{
			createCategoryFn: func(_, _, _, _ string) (*models.Category, error) {
				return nil, apperrors.ErrDuplicateCategoryName
			},
		}
		audit := &mockAuditService{}
		r := setupCategoryRouter(NewCategoryHandler(svc, audit))

		rec := doRequest(r, "POST", "/categories", `{"name":"Meals"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		assertErrorCode(t, result, "DUPLICATE_CATEGORY_NAME")
		if msg := result["error"].(map[string]interface{})["message"]; msg != "A category with this name already exists" {
			t.Errorf("unexpected message %v", msg)
		}
		if len(audit.actions()) != 0 {
			t.Error("failed mutations must not be audited")
		}
	})
}

func TestCategoryHandler_UpdateCategory(t *testing.T) {
	t.Run("returns 200 with message", func(t *testing.T) {
		var gotID string
		svc := &mockCategoryService{
			updateCategoryFn: func(userID, categoryID, name, icon, color string) (*models.Category, error) {
				gotID = categoryID
				return &models.Category{Base: models.Base{ID: categoryID}, Name: name, Icon: "🍕", Color: "#ef4444"}, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/categories/c9", `{"name":"Takeaway"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotID != "c9" {
			t.Errorf("expected category c9, got %s", gotID)
		}
		if msg := parseJSON(t, rec)["message"]; msg != `Category "Takeaway" updated successfully! ✨` {
			t.Errorf("unexpected message %v", msg)
		}
	})

	t.Run("returns 404 for unknown category", func(t *testing.T) {
		svc := &mockCategoryService{
			updateCategoryFn: func(_, _, _, _, _ string) (*models.Category, error) {
				return nil, apperrors.ErrCategoryNotFound
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/categories/missing", `{"name":"Takeaway"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "CATEGORY_NOT_FOUND")
	})
}

func TestCategoryHandler_DeleteCategory(t *testing.T) {
	var gotUser, gotID string
	svc := &mockCategoryService{
		deleteCategoryFn: func(userID, categoryID string) error {
			gotUser, gotID = userID, categoryID
			return nil
		},
	}
	audit := &mockAuditService{}
	r := setupCategoryRouter(NewCategoryHandler(svc, audit))

	rec := doRequest(r, "DELETE", "/categories/c3", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotUser != testUserID || gotID != "c3" {
		t.Errorf("expected delete of c3 for %s, got %s for %s", testUserID, gotID, gotUser)
	}
	if msg := parseJSON(t, rec)["message"]; msg != "Category deleted successfully! 🗑️" {
		t.Errorf("unexpected message %v", msg)
	}
	if got := audit.actions(); len(got) != 1 || got[0] != "DELETE_CATEGORY" {
		t.Errorf("expected DELETE_CATEGORY audit entry, got %v", got)
	}
}

func longString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = 'a'
	}
	return string(b)
}
