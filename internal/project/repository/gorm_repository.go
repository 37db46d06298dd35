package repository

import (
	"errors"
	"time"

	"studioflow-backend/internal/project/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormProjectRepository implements ProjectRepository using GORM
type gormProjectRepository struct {
	db *gorm.DB
}

// NewGormProjectRepository creates a new GORM-based ProjectRepository
func NewGormProjectRepository(db *gorm.DB) ProjectRepository {
	return &gormProjectRepository{db: db}
}

func (r *gormProjectRepository) Create(project *domain.Project) error {
	if project.ID == "" {
		project.ID = uuid.New().String()
	}
	if project.Status == "" {
		project.Status = domain.ProjectStatusActive
	}
	project.CreatedAt = time.Now()
	project.UpdatedAt = time.Now()
	return r.db.Create(project).Error
}

func (r *gormProjectRepository) FindByID(id string) (*domain.Project, error) {
	var project domain.Project
	err := r.db.Where("id = ?", id).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

func (r *gormProjectRepository) FindByOwnerID(ownerID string) ([]*domain.Project, error) {
	var projects []*domain.Project
	err := r.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&projects).Error
	return projects, err
}

func (r *gormProjectRepository) ResolveNames(ids []string) (map[string]string, error) {
	names := make(map[string]string)
	if len(ids) == 0 {
		return names, nil
	}

	var projects []*domain.Project
	if err := r.db.Select("id", "name").Where("id IN ?", ids).Find(&projects).Error; err != nil {
		return nil, err
	}
	for _, p := range projects {
		names[p.ID] = p.Name
	}
	return names, nil
}

func (r *gormProjectRepository) Update(project *domain.Project) error {
	project.UpdatedAt = time.Now()
	return r.db.Save(project).Error
}

func (r *gormProjectRepository) Delete(id string) error {
	return r.db.Delete(&domain.Project{}, "id = ?", id).Error
}
