package mapping

import (
	"github.com/splitmate/splitmate_backend/internal/core/domain"
	"github.com/splitmate/splitmate_backend/internal/models"
)

// ToModelGroup converts a domain Group to a model Group
func ToModelGroup(d domain.Group) models.Group {
	return models.Group{
		GroupID:     d.GroupID,
		Name:        d.Name,
		Emoji:       d.Emoji,
		Description: d.Description,
		InviteCode:  d.InviteCode,
		AdminID:     d.AdminID,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainGroup converts a model Group to a domain Group
func ToDomainGroup(m models.Group) domain.Group {
	return domain.Group{
		GroupID:     m.GroupID,
		Name:        m.Name,
		Emoji:       m.Emoji,
		Description: m.Description,
		InviteCode:  m.InviteCode,
		AdminID:     m.AdminID,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainGroupSlice converts a slice of model Groups to a slice of domain Groups
func ToDomainGroupSlice(ms []models.Group) []domain.Group {
	ds := make([]domain.Group, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainGroup(m)
	}
	return ds
}

// ToDomainGroupMember converts a model GroupMember to a domain GroupMember
func ToDomainGroupMember(m models.GroupMember) domain.GroupMember {
	return domain.GroupMember{
		UserID:   m.UserID,
		UserName: m.UserName,
		GroupID:  m.GroupID,
		Role:     domain.GroupRole(m.Role),
		JoinedAt: m.JoinedAt,
	}
}

// ToDomainGroupMemberSlice converts a slice of model GroupMembers to domain GroupMembers
func ToDomainGroupMemberSlice(ms []models.GroupMember) []domain.GroupMember {
	ds := make([]domain.GroupMember, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainGroupMember(m)
	}
	return ds
}
