package authroles

import (
	"strings"

	domainauth "github.com/brightmath/campus-api/internal/domain/auth"
)

// StaticRoleMapper assigns roles from configured email allowlists.
// Emails are compared case-insensitively; anyone not listed is a student,
// which is the default role for a signed-in user.
type StaticRoleMapper struct {
	AdminEmails   []string
	TeacherEmails []string
}

func (m StaticRoleMapper) Map(email string) domainauth.Role {
	if email == "" {
		return domainauth.RoleGuest
	}
	for _, e := range m.AdminEmails {
		if strings.EqualFold(e, email) {
			return domainauth.RoleAdmin
		}
	}
	for _, e := range m.TeacherEmails {
		if strings.EqualFold(e, email) {
			return domainauth.RoleTeacher
		}
	}
	return domainauth.RoleStudent
}
