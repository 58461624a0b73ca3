package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/splitmate/splitmate_backend/internal/apperrors"
	"github.com/splitmate/splitmate_backend/internal/core/domain"
	portsrepo "github.com/splitmate/splitmate_backend/internal/core/ports/repositories"
	portssvc "github.com/splitmate/splitmate_backend/internal/core/ports/services"
	"github.com/splitmate/splitmate_backend/internal/core/services"
	"github.com/splitmate/splitmate_backend/internal/dto"
)

// --- Mock GroupRepository ---
type MockGroupRepository struct {
	mock.Mock
}

// Ensure MockGroupRepository implements portsrepo.GroupRepositoryFacade
var _ portsrepo.GroupRepositoryFacade = (*MockGroupRepository)(nil)

func (m *MockGroupRepository) SaveGroup(ctx context.Context, group domain.Group, adminMembership domain.GroupMember) error {
	args := m.Called(ctx, group, adminMembership)
	return args.Error(0)
}

func (m *MockGroupRepository) FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}

func (m *MockGroupRepository) FindGroupByInviteCode(ctx context.Context, inviteCode string) (*domain.Group, error) {
	args := m.Called(ctx, inviteCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}

func (m *MockGroupRepository) ListGroupsByUserID(ctx context.Context, userID string) ([]domain.Group, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Group), args.Error(1)
}

func (m *MockGroupRepository) UpdateGroup(ctx context.Context, group domain.Group) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockGroupRepository) AddUserToGroup(ctx context.Context, membership domain.GroupMember) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockGroupRepository) RemoveUserFromGroup(ctx context.Context, groupID, userID string) error {
	args := m.Called(ctx, groupID, userID)
	return args.Error(0)
}

func (m *MockGroupRepository) FindUserGroupRole(ctx context.Context, userID, groupID string) (*domain.GroupMember, error) {
	args := m.Called(ctx, userID, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GroupMember), args.Error(1)
}

func (m *MockGroupRepository) ListGroupMembers(ctx context.Context, groupID string) ([]domain.GroupMember, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GroupMember), args.Error(1)
}

// --- Test Suite Setup ---
type GroupServiceTestSuite struct {
	suite.Suite
	mockGroupRepo *MockGroupRepository
	service       portssvc.GroupSvcFacade
	adminID       string
	memberID      string
	groupID       string
	group         *domain.Group
}

func (suite *GroupServiceTestSuite) SetupTest() {
	suite.mockGroupRepo = new(MockGroupRepository)
	suite.service = services.NewGroupService(suite.mockGroupRepo)

	suite.adminID = "admin-user"
	suite.memberID = "member-user"
	suite.groupID = uuid.NewString()
	suite.group = &domain.Group{
		GroupID:    suite.groupID,
		Name:       "Flat 4B",
		InviteCode: "AB12CD34",
		AdminID:    suite.adminID,
		IsActive:   true,
	}
}

func (suite *GroupServiceTestSuite) adminMembership() *domain.GroupMember {
	return &domain.GroupMember{UserID: suite.adminID, GroupID: suite.groupID, Role: domain.RoleAdmin}
}

func (suite *GroupServiceTestSuite) memberMembership() *domain.GroupMember {
	return &domain.GroupMember{UserID: suite.memberID, GroupID: suite.groupID, Role: domain.RoleMember}
}

// --- Test Cases ---

func (suite *GroupServiceTestSuite) TestCreateGroup_Success() {
	ctx := context.Background()
	req := dto.CreateGroupRequest{Name: "Flat 4B", Emoji: "🏠"}

	var savedMembership domain.GroupMember
	suite.mockGroupRepo.On("SaveGroup", ctx, mock.AnythingOfType("domain.Group"), mock.AnythingOfType("domain.GroupMember")).
		Run(func(args mock.Arguments) {
			savedMembership = args.Get(2).(domain.GroupMember)
		}).Return(nil).Once()

	group, err := suite.service.CreateGroup(ctx, req, suite.adminID)

	suite.Require().NoError(err)
	suite.Require().NotNil(group)
	suite.NotEmpty(group.GroupID)
	suite.Len(group.InviteCode, 8)
	suite.Equal(suite.adminID, group.AdminID)
	suite.True(group.IsActive)
	suite.Equal(domain.RoleAdmin, savedMembership.Role)
	suite.Equal(group.GroupID, savedMembership.GroupID)
	suite.mockGroupRepo.AssertExpectations(suite.T())
}

func (suite *GroupServiceTestSuite) TestGetGroupByID_NonMemberForbidden() {
	ctx := context.Background()

	suite.mockGroupRepo.On("FindUserGroupRole", ctx, "stranger", suite.groupID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetGroupByID(ctx, suite.groupID, "stranger")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockGroupRepo.AssertNotCalled(suite.T(), "FindGroupByID", mock.Anything, mock.Anything)
}

func (suite *GroupServiceTestSuite) TestUpdateGroup_MemberForbidden() {
	ctx := context.Background()
	newName := "Renamed"

	suite.mockGroupRepo.On("FindUserGroupRole", ctx, suite.memberID, suite.groupID).Return(suite.memberMembership(), nil).Once()

	_, err := suite.service.UpdateGroup(ctx, suite.groupID, dto.UpdateGroupRequest{Name: &newName}, suite.memberID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockGroupRepo.AssertNotCalled(suite.T(), "UpdateGroup", mock.Anything, mock.Anything)
}

func (suite *GroupServiceTestSuite) TestRegenerateInviteCode_ReplacesCode() {
	ctx := context.Background()

	suite.mockGroupRepo.On("FindUserGroupRole", ctx, suite.adminID, suite.groupID).Return(suite.adminMembership(), nil).Once()
	groupCopy := *suite.group
	suite.mockGroupRepo.On("FindGroupByID", ctx, suite.groupID).Return(&groupCopy, nil).Once()
	suite.mockGroupRepo.On("UpdateGroup", ctx, mock.MatchedBy(func(g domain.Group) bool {
		return g.InviteCode != "AB12CD34" && len(g.InviteCode) == 8
	})).Return(nil).Once()

	updated, err := suite.service.RegenerateInviteCode(ctx, suite.groupID, suite.adminID)

	suite.Require().NoError(err)
	suite.NotEqual("AB12CD34", updated.InviteCode)
	suite.mockGroupRepo.AssertExpectations(suite.T())
}

func (suite *GroupServiceTestSuite) TestJoinGroupByInviteCode_Success() {
	ctx := context.Background()

	suite.mockGroupRepo.On("FindGroupByInviteCode", ctx, "AB12CD34").Return(suite.group, nil).Once()
	suite.mockGroupRepo.On("FindUserGroupRole", ctx, suite.memberID, suite.groupID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockGroupRepo.On("AddUserToGroup", ctx, mock.MatchedBy(func(m domain.GroupMember) bool {
		return m.UserID == suite.memberID && m.Role == domain.RoleMember
	})).Return(nil).Once()

	group, err := suite.service.JoinGroupByInviteCode(ctx, "AB12CD34", suite.memberID)

	suite.Require().NoError(err)
	suite.Equal(suite.groupID, group.GroupID)
	suite.mockGroupRepo.AssertExpectations(suite.T())
}

func (suite *GroupServiceTestSuite) TestJoinGroupByInviteCode_AlreadyMemberIsNoOp() {
	ctx := context.Background()

	suite.mockGroupRepo.On("FindGroupByInviteCode", ctx, "AB12CD34").Return(suite.group, nil).Once()
	suite.mockGroupRepo.On("FindUserGroupRole", ctx, suite.memberID, suite.groupID).Return(suite.memberMembership(), nil).Once()

	group, err := suite.service.JoinGroupByInviteCode(ctx, "AB12CD34", suite.memberID)

	suite.Require().NoError(err)
	suite.Equal(suite.groupID, group.GroupID)
	suite.mockGroupRepo.AssertNotCalled(suite.T(), "AddUserToGroup", mock.Anything, mock.Anything)
}

func (suite *GroupServiceTestSuite) TestJoinGroupByInviteCode_UnknownCode() {
	ctx := context.Background()

	suite.mockGroupRepo.On("FindGroupByInviteCode", ctx, "ZZZZZZZZ").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.JoinGroupByInviteCode(ctx, "ZZZZZZZZ", suite.memberID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *GroupServiceTestSuite) TestRemoveUserFromGroup_SelfLeave() {
	ctx := context.Background()

	suite.mockGroupRepo.On("FindUserGroupRole", ctx, suite.memberID, suite.groupID).Return(suite.memberMembership(), nil).Once()
	suite.mockGroupRepo.On("FindGroupByID", ctx, suite.groupID).Return(suite.group, nil).Once()
	suite.mockGroupRepo.On("RemoveUserFromGroup", ctx, suite.groupID, suite.memberID).Return(nil).Once()

	err := suite.service.RemoveUserFromGroup(ctx, suite.memberID, suite.memberID, suite.groupID)

	suite.Require().NoError(err)
	suite.mockGroupRepo.AssertExpectations(suite.T())
}

func (suite *GroupServiceTestSuite) TestRemoveUserFromGroup_MemberCannotRemoveOthers() {
	ctx := context.Background()

	suite.mockGroupRepo.On("FindUserGroupRole", ctx, suite.memberID, suite.groupID).Return(suite.memberMembership(), nil).Once()

	err := suite.service.RemoveUserFromGroup(ctx, suite.memberID, "someone-else", suite.groupID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockGroupRepo.AssertNotCalled(suite.T(), "RemoveUserFromGroup", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *GroupServiceTestSuite) TestRemoveUserFromGroup_AdminNotRemovable() {
	ctx := context.Background()

	suite.mockGroupRepo.On("FindUserGroupRole", ctx, suite.adminID, suite.groupID).Return(suite.adminMembership(), nil).Once()
	suite.mockGroupRepo.On("FindGroupByID", ctx, suite.groupID).Return(suite.group, nil).Once()

	err := suite.service.RemoveUserFromGroup(ctx, suite.adminID, suite.adminID, suite.groupID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockGroupRepo.AssertNotCalled(suite.T(), "RemoveUserFromGroup", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *GroupServiceTestSuite) TestAuthorizeUserAction_RoleHierarchy() {
	ctx := context.Background()

	// Admin satisfies a member-level requirement.
	suite.mockGroupRepo.On("FindUserGroupRole", ctx, suite.adminID, suite.groupID).Return(suite.adminMembership(), nil).Once()
	err := suite.service.AuthorizeUserAction(ctx, suite.adminID, suite.groupID, domain.RoleMember)
	suite.NoError(err)

	// Member does not satisfy an admin-level requirement.
	suite.mockGroupRepo.On("FindUserGroupRole", ctx, suite.memberID, suite.groupID).Return(suite.memberMembership(), nil).Once()
	err = suite.service.AuthorizeUserAction(ctx, suite.memberID, suite.groupID, domain.RoleAdmin)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *GroupServiceTestSuite) TestDeactivateGroup_Success() {
	ctx := context.Background()

	suite.mockGroupRepo.On("FindUserGroupRole", ctx, suite.adminID, suite.groupID).Return(suite.adminMembership(), nil).Once()
	groupCopy := *suite.group
	suite.mockGroupRepo.On("FindGroupByID", ctx, suite.groupID).Return(&groupCopy, nil).Once()
	suite.mockGroupRepo.On("UpdateGroup", ctx, mock.MatchedBy(func(g domain.Group) bool {
		return !g.IsActive
	})).Return(nil).Once()

	err := suite.service.DeactivateGroup(ctx, suite.groupID, suite.adminID)

	suite.Require().NoError(err)
	suite.mockGroupRepo.AssertExpectations(suite.T())
}

func TestGroupServiceTestSuite(t *testing.T) {
	suite.Run(t, new(GroupServiceTestSuite))
}
