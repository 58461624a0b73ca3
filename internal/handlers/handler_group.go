package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/splitmate/splitmate_backend/internal/core/ports/services"
	"github.com/splitmate/splitmate_backend/internal/dto"
	"github.com/splitmate/splitmate_backend/internal/middleware"
)

// groupHandler handles HTTP requests related to groups and their membership.
type groupHandler struct {
	groupService portssvc.GroupSvcFacade
}

func newGroupHandler(gs portssvc.GroupSvcFacade) *groupHandler {
	return &groupHandler{groupService: gs}
}

// registerGroupRoutes registers all group-related routes.
func registerGroupRoutes(rg *gin.RouterGroup, groupService portssvc.GroupSvcFacade) {
	h := newGroupHandler(groupService)

	groups := rg.Group("/groups")
	{
		groups.POST("", h.createGroup)
		groups.GET("", h.listMyGroups)
		groups.POST("/join", h.joinGroup)
		groups.GET("/:id", h.getGroup)
		groups.PUT("/:id", h.updateGroup)
		groups.DELETE("/:id", h.deactivateGroup)
		groups.POST("/:id/regenerate-invite", h.regenerateInviteCode)
		groups.GET("/:id/members", h.listGroupMembers)
		groups.DELETE("/:id/members/:userID", h.removeGroupMember)
	}
}

// createGroup godoc
// @Summary Create a group
// @Description Creates a new group with the authenticated user as its admin. An invite code is generated.
// @Tags groups
// @Accept json
// @Produce json
// @Param group body dto.CreateGroupRequest true "Group details"
// @Success 201 {object} dto.GroupResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups [post]
func (h *groupHandler) createGroup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for create group request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	group, err := h.groupService.CreateGroup(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create group")
		return
	}

	logger.Info("Group created", slog.String("group_id", group.GroupID))
	c.JSON(http.StatusCreated, dto.ToGroupResponse(group))
}

// listMyGroups godoc
// @Summary List the signed-in user's groups
// @Description Retrieves all active groups the authenticated user belongs to.
// @Tags groups
// @Produce json
// @Success 200 {object} dto.ListGroupsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups [get]
func (h *groupHandler) listMyGroups(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	groups, err := h.groupService.ListUserGroups(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list groups")
		return
	}

	c.JSON(http.StatusOK, dto.ToListGroupsResponse(groups))
}

// getGroup godoc
// @Summary Get a group
// @Description Retrieves a group's details. The caller must be a member.
// @Tags groups
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} dto.GroupResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{id} [get]
func (h *groupHandler) getGroup(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	group, err := h.groupService.GetGroupByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve group")
		return
	}

	c.JSON(http.StatusOK, dto.ToGroupResponse(group))
}

// updateGroup godoc
// @Summary Update a group
// @Description Updates a group's details. Admin only.
// @Tags groups
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param group body dto.UpdateGroupRequest true "Fields to update"
// @Success 200 {object} dto.GroupResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{id} [put]
func (h *groupHandler) updateGroup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for update group request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	group, err := h.groupService.UpdateGroup(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update group")
		return
	}

	c.JSON(http.StatusOK, dto.ToGroupResponse(group))
}

// deactivateGroup godoc
// @Summary Deactivate a group
// @Description Marks a group inactive; its invite code stops working. Admin only.
// @Tags groups
// @Produce json
// @Param id path string true "Group ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{id} [delete]
func (h *groupHandler) deactivateGroup(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.groupService.DeactivateGroup(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err, "Failed to deactivate group")
		return
	}

	c.Status(http.StatusNoContent)
}

// joinGroup godoc
// @Summary Join a group by invite code
// @Description Adds the authenticated user to the group matching the invite code. Joining twice is a no-op.
// @Tags groups
// @Accept json
// @Produce json
// @Param request body dto.JoinGroupRequest true "Invite code"
// @Success 200 {object} dto.GroupResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Unknown or inactive invite code"
// @Security BearerAuth
// @Router /groups/join [post]
func (h *groupHandler) joinGroup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.JoinGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for join group request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	group, err := h.groupService.JoinGroupByInviteCode(c.Request.Context(), req.InviteCode, userID)
	if err != nil {
		respondError(c, err, "Failed to join group")
		return
	}

	logger.Info("User joined group", slog.String("group_id", group.GroupID))
	c.JSON(http.StatusOK, dto.ToGroupResponse(group))
}

// regenerateInviteCode godoc
// @Summary Regenerate a group's invite code
// @Description Replaces the invite code, invalidating the old one. Admin only.
// @Tags groups
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} dto.GroupResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{id}/regenerate-invite [post]
func (h *groupHandler) regenerateInviteCode(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	group, err := h.groupService.RegenerateInviteCode(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to regenerate invite code")
		return
	}

	c.JSON(http.StatusOK, dto.ToGroupResponse(group))
}

// listGroupMembers godoc
// @Summary List a group's members
// @Description Retrieves the members of a group. The caller must be a member.
// @Tags groups
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} dto.ListGroupMembersResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{id}/members [get]
func (h *groupHandler) listGroupMembers(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	members, err := h.groupService.ListGroupMembers(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to list group members")
		return
	}

	c.JSON(http.StatusOK, dto.ToListGroupMembersResponse(members))
}

// removeGroupMember godoc
// @Summary Remove a member from a group
// @Description Admins can remove any member; members can remove themselves. The admin cannot be removed.
// @Tags groups
// @Produce json
// @Param id path string true "Group ID"
// @Param userID path string true "User ID to remove"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Admin cannot be removed"
// @Security BearerAuth
// @Router /groups/{id}/members/{userID} [delete]
func (h *groupHandler) removeGroupMember(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	err := h.groupService.RemoveUserFromGroup(c.Request.Context(), userID, c.Param("userID"), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to remove group member")
		return
	}

	c.Status(http.StatusNoContent)
}
