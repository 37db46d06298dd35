package delivery

import (
	"net/http"

	"studioflow-backend/internal/project/usecase"

	"github.com/gin-gonic/gin"
)

// ProjectHandler handles project-related HTTP requests
type ProjectHandler struct {
	projectUsecase usecase.ProjectUsecase
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(projectUsecase usecase.ProjectUsecase) *ProjectHandler {
	return &ProjectHandler{projectUsecase: projectUsecase}
}

// CreateProjectRequest represents the request body for creating a project
type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	ClientName  string `json:"client_name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// GetProjects returns all projects for the authenticated user
// GET /api/projects
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	userID := c.GetString("userID")

	projects, err := h.projectUsecase.GetUserProjects(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": projects,
		"total":    len(projects),
	})
}

// GetProjectByID returns a specific project
// GET /api/projects/:id
func (h *ProjectHandler) GetProjectByID(c *gin.Context) {
	userID := c.GetString("userID")
	projectID := c.Param("id")

	project, err := h.projectUsecase.GetProjectByID(userID, projectID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// CreateProject creates a new project
// POST /api/projects
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID := c.GetString("userID")

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.projectUsecase.CreateProject(userID, req.Name, req.ClientName, req.Description, req.Color)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, project)
}

// UpdateProject updates an existing project
// PUT /api/projects/:id
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	userID := c.GetString("userID")
	projectID := c.Param("id")

	var updates usecase.ProjectUpdateRequest
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.projectUsecase.UpdateProject(userID, projectID, updates)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// DeleteProject deletes a project
// DELETE /api/projects/:id
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID := c.GetString("userID")
	projectID := c.Param("id")

	if err := h.projectUsecase.DeleteProject(userID, projectID); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}

func respondProjectError(c *gin.Context, err error) {
	switch err.Error() {
	case "project not found":
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
	case "unauthorized":
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
