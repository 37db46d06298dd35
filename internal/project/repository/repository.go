package repository

import "studioflow-backend/internal/project/domain"

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *domain.Project) error

	// FindByID finds a project by its ID
	FindByID(id string) (*domain.Project, error)

	// FindByOwnerID finds all projects owned by a user
	FindByOwnerID(ownerID string) ([]*domain.Project, error)

	// ResolveNames maps project ids to names (for occurrence projectRef)
	ResolveNames(ids []string) (map[string]string, error)

	// Update updates an existing project
	Update(project *domain.Project) error

	// Delete deletes a project by ID
	Delete(id string) error
}
