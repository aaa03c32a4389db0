// Package docs registers the OpenAPI description served at /swagger.
// Regenerate with: swag init -g cmd/api/main.go -o internal/docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a new user",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.RegisterRequest"}}],
                "responses": {
                    "201": {"description": "User registered and tokens generated", "schema": {"$ref": "#/definitions/handlers.AuthResponse"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "409": {"description": "Email already registered", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Login user",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.LoginRequest"}}],
                "responses": {
                    "200": {"description": "User authenticated and tokens generated", "schema": {"$ref": "#/definitions/handlers.AuthResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["auth"],
                "summary": "Refresh tokens",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.RefreshRequest"}}],
                "responses": {
                    "200": {"description": "New tokens", "schema": {"$ref": "#/definitions/handlers.AuthResponse"}},
                    "401": {"description": "Invalid or expired token", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/profile": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["user"],
                "summary": "Get user profile",
                "responses": {"200": {"description": "User profile", "schema": {"$ref": "#/definitions/handlers.UserResponse"}}}
            }
        },
        "/dashboard": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["dashboard"],
                "summary": "Get dashboard",
                "responses": {"200": {"description": "Dashboard", "schema": {"$ref": "#/definitions/services.Dashboard"}}}
            }
        },
        "/suggestions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["suggestions"],
                "summary": "Get spending suggestions",
                "responses": {"200": {"description": "Analysis and suggestions", "schema": {"$ref": "#/definitions/services.SuggestionResult"}}}
            }
        },
        "/features": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["features"],
                "summary": "Get feature flags",
                "responses": {"200": {"description": "Feature flags", "schema": {"$ref": "#/definitions/handlers.FeaturesResponse"}}}
            }
        },
        "/budgets": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["budgets"],
                "summary": "Get budgets",
                "responses": {"200": {"description": "Budgets"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["budgets"],
                "summary": "Save budget",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.SaveBudgetRequest"}}],
                "responses": {
                    "200": {"description": "Budget saved"},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/categories": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["categories"],
                "summary": "Get categories",
                "responses": {"200": {"description": "Categories, defaults first"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["categories"],
                "summary": "Create category",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.CategoryRequest"}}],
                "responses": {
                    "201": {"description": "Category created"},
                    "409": {"description": "Duplicate category name", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/categories/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["categories"],
                "summary": "Update category",
                "parameters": [
                    {"type": "string", "in": "path", "name": "id", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.CategoryRequest"}}
                ],
                "responses": {
                    "200": {"description": "Category updated"},
                    "404": {"description": "Category not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["categories"],
                "summary": "Delete category",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}],
                "responses": {"200": {"description": "Category deleted", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}}}
            }
        },
        "/expenses": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["expenses"],
                "summary": "Get expenses",
                "parameters": [
                    {"type": "string", "in": "query", "name": "from"},
                    {"type": "string", "in": "query", "name": "to"},
                    {"type": "string", "in": "query", "name": "category_id"},
                    {"type": "integer", "in": "query", "name": "page"},
                    {"type": "integer", "in": "query", "name": "page_size"}
                ],
                "responses": {"200": {"description": "Paginated expenses"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["expenses"],
                "summary": "Add expense",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.AddExpenseRequest"}}],
                "responses": {
                    "201": {"description": "Expense created"},
                    "404": {"description": "Category not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/expenses/recent": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["expenses"],
                "summary": "Get recent expenses",
                "parameters": [{"type": "integer", "in": "query", "name": "limit"}],
                "responses": {"200": {"description": "Recent expenses"}}
            }
        },
        "/expenses/export": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["expenses"],
                "summary": "Export expenses",
                "parameters": [
                    {"enum": ["csv", "xlsx"], "type": "string", "in": "query", "name": "format"},
                    {"type": "string", "in": "query", "name": "from"},
                    {"type": "string", "in": "query", "name": "to"},
                    {"type": "string", "in": "query", "name": "category_id"}
                ],
                "responses": {"200": {"description": "Expense export", "schema": {"type": "file"}}}
            }
        },
        "/expenses/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["expenses"],
                "summary": "Get expense by ID",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}],
                "responses": {"200": {"description": "Expense details"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["expenses"],
                "summary": "Delete expense",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}],
                "responses": {
                    "200": {"description": "Expense deleted", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}},
                    "404": {"description": "Expense not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/photos/analyze": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json", "multipart/form-data"],
                "tags": ["photos"],
                "summary": "Analyze receipt photo",
                "parameters": [{"in": "body", "name": "request", "schema": {"$ref": "#/definitions/handlers.AnalyzePhotoRequest"}}],
                "responses": {
                    "200": {"description": "Extracted receipt fields"},
                    "413": {"description": "Image too large", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "503": {"description": "AI not configured", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.RegisterRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string", "minLength": 8}, "name": {"type": "string"}}
        },
        "handlers.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "handlers.RefreshRequest": {
            "type": "object",
            "required": ["refresh_token"],
            "properties": {"refresh_token": {"type": "string"}}
        },
        "handlers.UserResponse": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "email": {"type": "string"}, "name": {"type": "string"}}
        },
        "handlers.AuthResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "refresh_token": {"type": "string"},
                "expires_in": {"type": "integer"},
                "user": {"$ref": "#/definitions/handlers.UserResponse"}
            }
        },
        "handlers.SaveBudgetRequest": {
            "type": "object",
            "required": ["amount", "timeframe"],
            "properties": {"amount": {"type": "string", "example": "1000.00"}, "timeframe": {"type": "string", "enum": ["weekly", "monthly"]}}
        },
        "handlers.CategoryRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {"name": {"type": "string", "maxLength": 100}, "icon": {"type": "string"}, "color": {"type": "string", "example": "#22c55e"}}
        },
        "handlers.AddExpenseRequest": {
            "type": "object",
            "required": ["amount", "category_id"],
            "properties": {
                "amount": {"type": "string", "example": "12.50"},
                "category_id": {"type": "string", "format": "uuid"},
                "description": {"type": "string", "maxLength": 500},
                "expense_date": {"type": "string", "example": "2024-03-06"}
            }
        },
        "handlers.AnalyzePhotoRequest": {
            "type": "object",
            "required": ["image"],
            "properties": {"image": {"type": "string"}}
        },
        "handlers.FeaturesResponse": {
            "type": "object",
            "properties": {"photo_analysis": {"type": "boolean"}}
        },
        "handlers.MessageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "object", "properties": {"code": {"type": "string"}, "message": {"type": "string"}}}
            }
        },
        "services.Dashboard": {
            "type": "object",
            "properties": {
                "weekly_budget": {"type": "object"},
                "monthly_budget": {"type": "object"},
                "weekly_spent": {"type": "string"},
                "monthly_spent": {"type": "string"},
                "weekly_remaining": {"type": "string"},
                "monthly_remaining": {"type": "string"},
                "recent_expenses": {"type": "array", "items": {"type": "object"}},
                "categories": {"type": "array", "items": {"type": "object"}}
            }
        },
        "services.SuggestionResult": {
            "type": "object",
            "properties": {
                "analysis": {"type": "object"},
                "suggestions": {"type": "array", "items": {"type": "object"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "BudgetBuddy API",
	Description:      "Expense tracking with weekly and monthly budgets, receipt photo analysis and spending suggestions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
