package usecase

import (
	"errors"

	"studioflow-backend/internal/project/domain"
	"studioflow-backend/internal/project/repository"
)

// ProjectUpdateRequest represents the fields that can be updated
type ProjectUpdateRequest struct {
	Name        *string `json:"name,omitempty"`
	ClientName  *string `json:"client_name,omitempty"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// ProjectUsecase defines the interface for project business logic
type ProjectUsecase interface {
	CreateProject(ownerID, name, clientName, description, color string) (*domain.Project, error)
	GetProjectByID(userID, projectID string) (*domain.Project, error)
	GetUserProjects(userID string) ([]*domain.Project, error)
	UpdateProject(userID, projectID string, updates ProjectUpdateRequest) (*domain.Project, error)
	DeleteProject(userID, projectID string) error
}

// projectUsecase implements ProjectUsecase interface
type projectUsecase struct {
	projectRepo repository.ProjectRepository
}

// NewProjectUsecase creates a new instance of projectUsecase
func NewProjectUsecase(projectRepo repository.ProjectRepository) ProjectUsecase {
	return &projectUsecase{projectRepo: projectRepo}
}

func (u *projectUsecase) CreateProject(ownerID, name, clientName, description, color string) (*domain.Project, error) {
	project := &domain.Project{
		OwnerID:     ownerID,
		Name:        name,
		ClientName:  clientName,
		Description: description,
		Color:       color,
		Status:      domain.ProjectStatusActive,
	}

	if err := u.projectRepo.Create(project); err != nil {
		return nil, err
	}

	return project, nil
}

func (u *projectUsecase) GetProjectByID(userID, projectID string) (*domain.Project, error) {
	project, err := u.projectRepo.FindByID(projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, errors.New("project not found")
	}
	if project.OwnerID != userID {
		return nil, errors.New("unauthorized")
	}
	return project, nil
}

func (u *projectUsecase) GetUserProjects(userID string) ([]*domain.Project, error) {
	return u.projectRepo.FindByOwnerID(userID)
}

func (u *projectUsecase) UpdateProject(userID, projectID string, updates ProjectUpdateRequest) (*domain.Project, error) {
	project, err := u.GetProjectByID(userID, projectID)
	if err != nil {
		return nil, err
	}

	if updates.Name != nil {
		project.Name = *updates.Name
	}
	if updates.ClientName != nil {
		project.ClientName = *updates.ClientName
	}
	if updates.Description != nil {
		project.Description = *updates.Description
	}
	if updates.Color != nil {
		project.Color = *updates.Color
	}
	if updates.Status != nil {
		project.Status = domain.ProjectStatus(*updates.Status)
	}

	if err := u.projectRepo.Update(project); err != nil {
		return nil, err
	}

	return project, nil
}

func (u *projectUsecase) DeleteProject(userID, projectID string) error {
	project, err := u.GetProjectByID(userID, projectID)
	if err != nil {
		return err
	}
	return u.projectRepo.Delete(project.ID)
}
