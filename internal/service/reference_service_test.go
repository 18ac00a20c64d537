package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unifiedhq/usp-api/internal/dto"
	"github.com/unifiedhq/usp-api/internal/models"
	appErrors "github.com/unifiedhq/usp-api/pkg/errors"
)

type branchRepoStub struct {
	branches map[string]models.Branch
}

func (s *branchRepoStub) Create(ctx context.Context, branch *models.Branch) error {
	branch.ID = "br-1"
	if s.branches == nil {
		s.branches = map[string]models.Branch{}
	}
	s.branches[branch.Code] = *branch
	return nil
}

func (s *branchRepoStub) List(ctx context.Context, page, pageSize int) ([]models.Branch, int, error) {
	result := []models.Branch{}
	for _, branch := range s.branches {
		result = append(result, branch)
	}
	return result, len(result), nil
}

func (s *branchRepoStub) ExistsByCode(ctx context.Context, code string) (bool, error) {
	_, ok := s.branches[code]
	return ok, nil
}

type roleRepoStub struct {
	roles []models.Role
}

func (s *roleRepoStub) Create(ctx context.Context, role *models.Role) error {
	role.ID = "role-1"
	s.roles = append(s.roles, *role)
	return nil
}

func (s *roleRepoStub) List(ctx context.Context, page, pageSize int) ([]models.Role, int, error) {
	return s.roles, len(s.roles), nil
}

type userRepoStub struct {
	users map[string]models.User
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	user.ID = "user-1"
	if s.users == nil {
		s.users = map[string]models.User{}
	}
	s.users[user.Email] = *user
	return nil
}

func (s *userRepoStub) List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error) {
	result := []models.User{}
	for _, user := range s.users {
		result = append(result, user)
	}
	return result, len(result), nil
}

func (s *userRepoStub) Exists(ctx context.Context, identifier string) (bool, error) {
	_, ok := s.users[identifier]
	return ok, nil
}

type resourceRepoStub struct {
	resources map[string]models.Resource
}

func (s *resourceRepoStub) Create(ctx context.Context, resource *models.Resource) error {
	resource.ID = "res-1"
	if s.resources == nil {
		s.resources = map[string]models.Resource{}
	}
	s.resources[resource.ID] = *resource
	return nil
}

func (s *resourceRepoStub) List(ctx context.Context, filter models.ResourceFilter) ([]models.Resource, int, error) {
	result := []models.Resource{}
	for _, resource := range s.resources {
		result = append(result, resource)
	}
	return result, len(result), nil
}

func (s *resourceRepoStub) Exists(ctx context.Context, id string) (bool, error) {
	_, ok := s.resources[id]
	return ok, nil
}

func newReferenceFixture() *ReferenceService {
	return NewReferenceService(&branchRepoStub{}, &roleRepoStub{}, &userRepoStub{}, &resourceRepoStub{}, nil)
}

func TestReferenceServiceBranchExistsWithoutCache(t *testing.T) {
	branches := &branchRepoStub{branches: map[string]models.Branch{"BR-01": {Code: "BR-01"}}}
	svc := NewReferenceService(branches, &roleRepoStub{}, &userRepoStub{}, &resourceRepoStub{}, nil)

	exists, err := svc.BranchExists(context.Background(), "BR-01")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = svc.BranchExists(context.Background(), "BR-99")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestReferenceServiceCreateBranch(t *testing.T) {
	svc := newReferenceFixture()

	branch, err := svc.CreateBranch(context.Background(), dto.CreateBranchRequest{Code: "BR-01", Name: "North"})
	require.NoError(t, err)
	assert.Equal(t, "br-1", branch.ID)

	exists, err := svc.BranchExists(context.Background(), "BR-01")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestReferenceServiceCreateBranchRejectsMissingCode(t *testing.T) {
	svc := newReferenceFixture()

	_, err := svc.CreateBranch(context.Background(), dto.CreateBranchRequest{Name: "North"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestReferenceServiceCreateRoleRejectsUnknownName(t *testing.T) {
	svc := newReferenceFixture()

	_, err := svc.CreateRole(context.Background(), dto.CreateRoleRequest{Name: models.RoleName("warlord")})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestReferenceServiceCreateUserDefaultsActive(t *testing.T) {
	svc := newReferenceFixture()

	user, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		FullName: "Dana Reyes",
		Email:    "dana@example.com",
		Role:     "coordinator",
	})
	require.NoError(t, err)
	assert.True(t, user.IsActive)

	exists, err := svc.UserExists(context.Background(), "dana@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestReferenceServiceCreateResourceDefaultsAvailability(t *testing.T) {
	svc := newReferenceFixture()

	resource, err := svc.CreateResource(context.Background(), dto.CreateResourceRequest{
		Name: "Main hall",
		Type: models.ResourceVenue,
	})
	require.NoError(t, err)
	assert.Equal(t, models.AvailabilityAvailable, resource.AvailabilityStatus)
}

func TestReferenceServiceCreateResourceRejectsUnknownType(t *testing.T) {
	svc := newReferenceFixture()

	_, err := svc.CreateResource(context.Background(), dto.CreateResourceRequest{
		Name: "Hovercraft",
		Type: models.ResourceType("hovercraft"),
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
