package dto

import "github.com/unifiedhq/usp-api/internal/models"

// CreateBranchRequest is the branch reference payload.
type CreateBranchRequest struct {
	Code         string  `json:"code" validate:"required"`
	Name         string  `json:"name" validate:"required"`
	Region       *string `json:"region,omitempty"`
	ManagerName  *string `json:"manager_name,omitempty"`
	ManagerEmail *string `json:"manager_email,omitempty" validate:"omitempty,email"`
}

// CreateRoleRequest is the role reference payload.
type CreateRoleRequest struct {
	Name        models.RoleName `json:"name" validate:"required"`
	Description *string         `json:"description,omitempty"`
}

// CreateUserRequest is the user reference payload.
type CreateUserRequest struct {
	FullName   string  `json:"full_name" validate:"required"`
	Email      string  `json:"email" validate:"required,email"`
	BranchCode *string `json:"branch_code,omitempty"`
	Role       string  `json:"role" validate:"required"`
	IsActive   *bool   `json:"is_active,omitempty"`
}

// CreateResourceRequest is the resource inventory payload.
type CreateResourceRequest struct {
	Name               string                    `json:"name" validate:"required"`
	Type               models.ResourceType       `json:"type" validate:"required"`
	BranchCode         *string                   `json:"branch_code,omitempty"`
	Capacity           *int                      `json:"capacity,omitempty"`
	AvailabilityStatus models.AvailabilityStatus `json:"availability_status,omitempty"`
}
