package authroles

import (
	domainauth "github.com/gameforge/ui-api/internal/domain/auth"
)

// StaticRoleMapper maps IdP groups to application roles by simple string
// membership, highest role wins.
type StaticRoleMapper struct {
	AdminGroup   string
	CreatorGroup string
	MemberGroup  string
}

func (m StaticRoleMapper) Map(groups []string) domainauth.Role {
	role := domainauth.RoleGuest
	for _, g := range groups {
		switch {
		case m.AdminGroup != "" && g == m.AdminGroup:
			return domainauth.RoleAdmin
		case m.CreatorGroup != "" && g == m.CreatorGroup:
			role = domainauth.RoleCreator
		case m.MemberGroup != "" && g == m.MemberGroup && !role.AtLeast(domainauth.RoleCreator):
			role = domainauth.RoleMember
		}
	}
	return role
}
