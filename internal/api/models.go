package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/geotask-api/internal/domain"
	"github.com/phrazzld/geotask-api/internal/service"
)

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Phone    string `json:"phone"    validate:"required,max=30"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse is returned by register, login and refresh.
type AuthResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
}

// UpdateUserRequest defines the payload for PUT /api/users/{id}. Only the
// display name can be changed here.
type UpdateUserRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// UserResponse is the public form of an account. It never carries the
// password hash.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateTaskRequest defines the payload for POST /api/tasks.
type CreateTaskRequest struct {
	Title       string `json:"title"                 validate:"required,max=100"`
	Description string `json:"description"           validate:"required,max=250"`
	Date        string `json:"date"                  validate:"required,datetime=2006-01-02"`
	Status      string `json:"status,omitempty"      validate:"omitempty,oneof=pending in-progress completed"`
	Priority    string `json:"priority,omitempty"    validate:"omitempty,oneof=low medium high"`
	Category    string `json:"category,omitempty"    validate:"max=50"`
	LocationID  *int64 `json:"location_id,omitempty" validate:"omitempty,gt=0"`
}

// ToParams converts the request into service parameters.
func (req *CreateTaskRequest) ToParams() (service.CreateTaskParams, error) {
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		return service.CreateTaskParams{}, err
	}
	return service.CreateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		Status:      domain.TaskStatus(req.Status),
		Priority:    domain.TaskPriority(req.Priority),
		Category:    req.Category,
		LocationID:  req.LocationID,
	}, nil
}

// UpdateTaskRequest defines the payload for PUT /api/tasks/{id}. Absent or
// empty fields are left unchanged.
type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"       validate:"omitempty,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=250"`
	Date        *string `json:"date,omitempty"        validate:"omitempty,datetime=2006-01-02"`
	Status      *string `json:"status,omitempty"      validate:"omitempty,oneof=pending in-progress completed"`
	Priority    *string `json:"priority,omitempty"    validate:"omitempty,oneof=low medium high"`
	Category    *string `json:"category,omitempty"    validate:"omitempty,max=50"`
	LocationID  *int64  `json:"location_id,omitempty" validate:"omitempty,gt=0"`
}

// ToPatch converts the request into a domain.TaskPatch.
func (req *UpdateTaskRequest) ToPatch() (domain.TaskPatch, error) {
	patch := domain.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		LocationID:  req.LocationID,
	}
	if req.Date != nil && *req.Date != "" {
		date, err := domain.ParseDate(*req.Date)
		if err != nil {
			return domain.TaskPatch{}, err
		}
		patch.Date = &date
	}
	if req.Status != nil && *req.Status != "" {
		status := domain.TaskStatus(*req.Status)
		patch.Status = &status
	}
	if req.Priority != nil && *req.Priority != "" {
		priority := domain.TaskPriority(*req.Priority)
		patch.Priority = &priority
	}
	return patch, nil
}

// TaskResponse is the wire form of a task.
type TaskResponse struct {
	ID          int64             `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Date        string            `json:"date"`
	Status      string            `json:"status"`
	Priority    string            `json:"priority"`
	Category    string            `json:"category"`
	OwnerID     uuid.UUID         `json:"owner_id"`
	LocationID  *int64            `json:"location_id"`
	Location    *LocationResponse `json:"location,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// RegisterLocationRequest defines the payload for POST /api/locations.
type RegisterLocationRequest struct {
	Name           *string  `json:"name,omitempty"            validate:"omitempty,max=100"`
	Latitude       *float64 `json:"latitude"                  validate:"required,gte=-90,lte=90"`
	Longitude      *float64 `json:"longitude"                 validate:"required,gte=-180,lte=180"`
	GeofenceRadius *int     `json:"geofence_radius,omitempty" validate:"omitempty,gt=0"`
}

// ToParams converts the request into domain parameters.
func (req *RegisterLocationRequest) ToParams() domain.NewLocationParams {
	return domain.NewLocationParams{
		Name:           req.Name,
		Latitude:       *req.Latitude,
		Longitude:      *req.Longitude,
		GeofenceRadius: req.GeofenceRadius,
	}
}

// UpdateLocationRequest defines the payload for PUT /api/locations/{id}.
type UpdateLocationRequest struct {
	Name           *string  `json:"name,omitempty"            validate:"omitempty,max=100"`
	Latitude       *float64 `json:"latitude,omitempty"        validate:"omitempty,gte=-90,lte=90"`
	Longitude      *float64 `json:"longitude,omitempty"       validate:"omitempty,gte=-180,lte=180"`
	GeofenceRadius *int     `json:"geofence_radius,omitempty" validate:"omitempty,gt=0"`
}

// ToPatch converts the request into a domain.LocationPatch.
func (req *UpdateLocationRequest) ToPatch() domain.LocationPatch {
	return domain.LocationPatch{
		Name:           req.Name,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		GeofenceRadius: req.GeofenceRadius,
	}
}

// LocationResponse is the wire form of a location.
type LocationResponse struct {
	ID             int64   `json:"id"`
	Name           *string `json:"name"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	GeofenceRadius int     `json:"geofence_radius"`
}

// CreateCategoryRequest defines the payload for POST /api/categories.
type CreateCategoryRequest struct {
	Name  string  `json:"name"            validate:"required,max=50"`
	Icon  *string `json:"icon,omitempty"  validate:"omitempty,max=100"`
	Color *string `json:"color,omitempty" validate:"omitempty,max=20"`
}

// ToParams converts the request into domain parameters.
func (req *CreateCategoryRequest) ToParams() domain.NewCategoryParams {
	return domain.NewCategoryParams{Name: req.Name, Icon: req.Icon, Color: req.Color}
}

// UpdateCategoryRequest defines the payload for PUT /api/categories/{id}.
type UpdateCategoryRequest struct {
	Name  *string `json:"name,omitempty"  validate:"omitempty,max=50"`
	Icon  *string `json:"icon,omitempty"  validate:"omitempty,max=100"`
	Color *string `json:"color,omitempty" validate:"omitempty,max=20"`
}

// ToPatch converts the request into a domain.CategoryPatch.
func (req *UpdateCategoryRequest) ToPatch() domain.CategoryPatch {
	return domain.CategoryPatch{Name: req.Name, Icon: req.Icon, Color: req.Color}
}

// CategoryResponse is the wire form of a category.
type CategoryResponse struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Icon  *string `json:"icon"`
	Color *string `json:"color"`
}

// DeletedResponse reports whether a delete removed anything.
type DeletedResponse struct {
	Deleted bool `json:"deleted"`
}

func taskToResponse(task *domain.Task) TaskResponse {
	resp := TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Date:        task.Date.Format(domain.DateLayout),
		Status:      string(task.Status),
		Priority:    string(task.Priority),
		Category:    task.Category,
		OwnerID:     task.OwnerID,
		LocationID:  task.LocationID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
	if task.Location != nil {
		loc := locationToResponse(task.Location)
		resp.Location = &loc
	}
	return resp
}

func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, taskToResponse(task))
	}
	return out
}

func locationToResponse(loc *domain.Location) LocationResponse {
	return LocationResponse{
		ID:             loc.ID,
		Name:           loc.Name,
		Latitude:       loc.Latitude,
		Longitude:      loc.Longitude,
		GeofenceRadius: loc.GeofenceRadius,
	}
}

func locationsToResponse(locations []*domain.Location) []LocationResponse {
	out := make([]LocationResponse, 0, len(locations))
	for _, loc := range locations {
		out = append(out, locationToResponse(loc))
	}
	return out
}

func categoryToResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Icon: c.Icon, Color: c.Color}
}

func categoriesToResponse(categories []*domain.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, categoryToResponse(c))
	}
	return out
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func usersToResponse(users []*domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, userToResponse(user))
	}
	return out
}
