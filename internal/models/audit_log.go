package models

import "gorm.io/datatypes"

// AuditLog records user mutations. Changes holds a JSON object describing
// what was written.
type AuditLog struct {
	Base
	UserID     string         `gorm:"type:uuid;not null;index" json:"user_id"`
	Action     string         `gorm:"size:50;not null" json:"action"`
	Resource   string         `gorm:"size:50;not null" json:"resource"`
	ResourceID string         `gorm:"type:uuid;not null" json:"resource_id"`
	IPAddress  string         `gorm:"size:45" json:"ip_address"`
	Changes    datatypes.JSON `json:"changes,omitempty" swaggertype:"object"`
}
