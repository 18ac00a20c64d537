package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/unifiedhq/usp-api/internal/dto"
	"github.com/unifiedhq/usp-api/internal/models"
	appErrors "github.com/unifiedhq/usp-api/pkg/errors"
)

type branchStore interface {
	Create(ctx context.Context, branch *models.Branch) error
	List(ctx context.Context, page, pageSize int) ([]models.Branch, int, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
}

type roleStore interface {
	Create(ctx context.Context, role *models.Role) error
	List(ctx context.Context, page, pageSize int) ([]models.Role, int, error)
}

type userStore interface {
	Create(ctx context.Context, user *models.User) error
	List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error)
	Exists(ctx context.Context, identifier string) (bool, error)
}

type resourceStore interface {
	Create(ctx context.Context, resource *models.Resource) error
	List(ctx context.Context, filter models.ResourceFilter) ([]models.Resource, int, error)
	Exists(ctx context.Context, id string) (bool, error)
}

type cacheObserver interface {
	RecordCacheOperation(hit bool, duration time.Duration)
}

// ReferenceService owns reference data (branches, roles, users, resources)
// and acts as the reference validator for the lifecycle services. Existence
// lookups go through a short-TTL redis cache and fail open to the store.
type ReferenceService struct {
	branches  branchStore
	roles     roleStore
	users     userStore
	resources resourceStore
	cache     *redis.Client
	cacheTTL  time.Duration
	metrics   cacheObserver
	validator *validator.Validate
	logger    *zap.Logger
}

// ReferenceServiceOption configures the service.
type ReferenceServiceOption func(*ReferenceService)

// WithReferenceCache enables the redis existence cache.
func WithReferenceCache(client *redis.Client, ttl time.Duration) ReferenceServiceOption {
	return func(s *ReferenceService) {
		s.cache = client
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithCacheObserver wires cache hit/miss metrics.
func WithCacheObserver(metrics cacheObserver) ReferenceServiceOption {
	return func(s *ReferenceService) {
		s.metrics = metrics
	}
}

// NewReferenceService constructs the service.
func NewReferenceService(branches branchStore, roles roleStore, users userStore, resources resourceStore, logger *zap.Logger, opts ...ReferenceServiceOption) *ReferenceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &ReferenceService{
		branches:  branches,
		roles:     roles,
		users:     users,
		resources: resources,
		cacheTTL:  time.Minute,
		validator: validator.New(),
		logger:    logger,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc
}

// BranchExists implements the reference validator for branch codes.
func (s *ReferenceService) BranchExists(ctx context.Context, code string) (bool, error) {
	return s.cachedExists(ctx, "ref:branch:"+code, func(ctx context.Context) (bool, error) {
		return s.branches.ExistsByCode(ctx, code)
	})
}

// UserExists implements the reference validator for user identifiers
// (identity or email).
func (s *ReferenceService) UserExists(ctx context.Context, identifier string) (bool, error) {
	return s.cachedExists(ctx, "ref:user:"+identifier, func(ctx context.Context) (bool, error) {
		return s.users.Exists(ctx, identifier)
	})
}

// ResourceExists implements the reference validator for resource identities.
func (s *ReferenceService) ResourceExists(ctx context.Context, id string) (bool, error) {
	return s.cachedExists(ctx, "ref:resource:"+id, func(ctx context.Context) (bool, error) {
		return s.resources.Exists(ctx, id)
	})
}

func (s *ReferenceService) cachedExists(ctx context.Context, key string, lookup func(context.Context) (bool, error)) (bool, error) {
	if s.cache != nil {
		start := time.Now()
		val, err := s.cache.Get(ctx, key).Result()
		if err == nil {
			s.observeCache(true, time.Since(start))
			return val == "1", nil
		}
		s.observeCache(false, time.Since(start))
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("reference cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	exists, err := lookup(ctx)
	if err != nil {
		return false, storeError(err, "reference lookup failed")
	}
	if s.cache != nil {
		val := "0"
		if exists {
			val = "1"
		}
		if err := s.cache.Set(ctx, key, val, s.cacheTTL).Err(); err != nil {
			s.logger.Warn("reference cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return exists, nil
}

func (s *ReferenceService) observeCache(hit bool, duration time.Duration) {
	if s.metrics != nil {
		s.metrics.RecordCacheOperation(hit, duration)
	}
}

func (s *ReferenceService) invalidate(ctx context.Context, key string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, key).Err(); err != nil {
		s.logger.Warn("reference cache invalidation failed", zap.String("key", key), zap.Error(err))
	}
}

// CreateBranch registers a new branch.
func (s *ReferenceService) CreateBranch(ctx context.Context, req dto.CreateBranchRequest) (*models.Branch, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid branch payload")
	}
	branch := &models.Branch{
		Code:         req.Code,
		Name:         req.Name,
		Region:       req.Region,
		ManagerName:  req.ManagerName,
		ManagerEmail: req.ManagerEmail,
	}
	if err := s.branches.Create(ctx, branch); err != nil {
		return nil, storeError(err, "failed to create branch")
	}
	s.invalidate(ctx, "ref:branch:"+branch.Code)
	return branch, nil
}

// ListBranches returns all branches, paginated.
func (s *ReferenceService) ListBranches(ctx context.Context, page, pageSize int) ([]models.Branch, *models.Pagination, error) {
	branches, total, err := s.branches.List(ctx, page, pageSize)
	if err != nil {
		return nil, nil, storeError(err, "failed to list branches")
	}
	return branches, newPagination(page, pageSize, total), nil
}

// CreateRole registers a new role.
func (s *ReferenceService) CreateRole(ctx context.Context, req dto.CreateRoleRequest) (*models.Role, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid role payload")
	}
	if !req.Name.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported role name")
	}
	role := &models.Role{Name: req.Name, Description: req.Description}
	if err := s.roles.Create(ctx, role); err != nil {
		return nil, storeError(err, "failed to create role")
	}
	return role, nil
}

// ListRoles returns all roles, paginated.
func (s *ReferenceService) ListRoles(ctx context.Context, page, pageSize int) ([]models.Role, *models.Pagination, error) {
	roles, total, err := s.roles.List(ctx, page, pageSize)
	if err != nil {
		return nil, nil, storeError(err, "failed to list roles")
	}
	return roles, newPagination(page, pageSize, total), nil
}

// CreateUser registers a new user.
func (s *ReferenceService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid user payload")
	}
	user := &models.User{
		FullName:   req.FullName,
		Email:      req.Email,
		BranchCode: req.BranchCode,
		Role:       req.Role,
		IsActive:   true,
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, storeError(err, "failed to create user")
	}
	s.invalidate(ctx, "ref:user:"+user.Email)
	return user, nil
}

// ListUsers returns users matching the filter.
func (s *ReferenceService) ListUsers(ctx context.Context, filter models.UserFilter) ([]models.User, *models.Pagination, error) {
	users, total, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, nil, storeError(err, "failed to list users")
	}
	return users, newPagination(filter.Page, filter.PageSize, total), nil
}

// CreateResource registers a new resource.
func (s *ReferenceService) CreateResource(ctx context.Context, req dto.CreateResourceRequest) (*models.Resource, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid resource payload")
	}
	if !req.Type.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported resource type")
	}
	availability := req.AvailabilityStatus
	if availability == "" {
		availability = models.AvailabilityAvailable
	}
	if !availability.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported availability status")
	}
	resource := &models.Resource{
		Name:               req.Name,
		Type:               req.Type,
		BranchCode:         req.BranchCode,
		Capacity:           req.Capacity,
		AvailabilityStatus: availability,
	}
	if err := s.resources.Create(ctx, resource); err != nil {
		return nil, storeError(err, "failed to create resource")
	}
	return resource, nil
}

// ListResources returns resources matching the filter.
func (s *ReferenceService) ListResources(ctx context.Context, filter models.ResourceFilter) ([]models.Resource, *models.Pagination, error) {
	resources, total, err := s.resources.List(ctx, filter)
	if err != nil {
		return nil, nil, storeError(err, "failed to list resources")
	}
	return resources, newPagination(filter.Page, filter.PageSize, total), nil
}
