package models

// Branch is an organizational unit that originates program requests.
type Branch struct {
	ID           string  `json:"id"`
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	Region       *string `json:"region,omitempty"`
	ManagerName  *string `json:"manager_name,omitempty"`
	ManagerEmail *string `json:"manager_email,omitempty"`
}

// RoleName enumerates the platform roles.
type RoleName string

const (
	RoleAdmin         RoleName = "admin"
	RoleHQManager     RoleName = "hq_manager"
	RoleBranchManager RoleName = "branch_manager"
	RoleCoordinator   RoleName = "coordinator"
	RoleReviewer      RoleName = "reviewer"
	RoleFinance       RoleName = "finance"
	RoleIT            RoleName = "it"
	RoleQuality       RoleName = "quality"
	RoleViewer        RoleName = "viewer"
)

// Valid reports whether the role name is recognised.
func (r RoleName) Valid() bool {
	switch r {
	case RoleAdmin, RoleHQManager, RoleBranchManager, RoleCoordinator,
		RoleReviewer, RoleFinance, RoleIT, RoleQuality, RoleViewer:
		return true
	default:
		return false
	}
}

// Role describes a platform role.
type Role struct {
	ID          string   `json:"id"`
	Name        RoleName `json:"name"`
	Description *string  `json:"description,omitempty"`
}

// User is a platform user referenced by requests and approvals.
type User struct {
	ID         string  `json:"id"`
	FullName   string  `json:"full_name"`
	Email      string  `json:"email"`
	BranchCode *string `json:"branch_code,omitempty"`
	Role       string  `json:"role"`
	IsActive   bool    `json:"is_active"`
}

// UserFilter constrains user listing queries.
type UserFilter struct {
	BranchCode string
	Page       int
	PageSize   int
}

// ResourceType enumerates bookable asset categories.
type ResourceType string

const (
	ResourceVenue     ResourceType = "venue"
	ResourceEquipment ResourceType = "equipment"
	ResourceITSupport ResourceType = "it_support"
	ResourceMedia     ResourceType = "media"
	ResourceTransport ResourceType = "transport"
)

// Valid reports whether the resource type is recognised.
func (t ResourceType) Valid() bool {
	switch t {
	case ResourceVenue, ResourceEquipment, ResourceITSupport, ResourceMedia, ResourceTransport:
		return true
	default:
		return false
	}
}

// AvailabilityStatus tracks resource availability.
type AvailabilityStatus string

const (
	AvailabilityAvailable   AvailabilityStatus = "available"
	AvailabilityReserved    AvailabilityStatus = "reserved"
	AvailabilityMaintenance AvailabilityStatus = "maintenance"
)

// Valid reports whether the availability status is recognised.
func (s AvailabilityStatus) Valid() bool {
	switch s {
	case AvailabilityAvailable, AvailabilityReserved, AvailabilityMaintenance:
		return true
	default:
		return false
	}
}

// Resource is a bookable asset referenced by events.
type Resource struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	Type               ResourceType       `json:"type"`
	BranchCode         *string            `json:"branch_code,omitempty"`
	Capacity           *int               `json:"capacity,omitempty"`
	AvailabilityStatus AvailabilityStatus `json:"availability_status"`
}

// ResourceFilter constrains resource listing queries.
type ResourceFilter struct {
	BranchCode string
	Type       ResourceType
	Page       int
	PageSize   int
}
