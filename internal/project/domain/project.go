package domain

import "time"

// ProjectStatus represents the delivery state of a client project
type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusOnHold    ProjectStatus = "on_hold"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusArchived  ProjectStatus = "archived"
)

// Project represents a client engagement that tasks and events attach to
type Project struct {
	ID          string        `json:"id" gorm:"primaryKey"`
	OwnerID     string        `json:"owner_id" gorm:"index;not null"`
	Name        string        `json:"name" gorm:"not null"`
	ClientName  string        `json:"client_name,omitempty"`
	Description string        `json:"description,omitempty"`
	Color       string        `json:"color,omitempty"` // Hex color used as the calendar accent
	Status      ProjectStatus `json:"status" gorm:"default:active"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
