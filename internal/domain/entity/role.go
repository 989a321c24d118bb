package entity

// Role names as stored in the identity provider's role claim
const (
	RoleHospitalAdmin = "hospital_admin"
	RoleMember        = "Member"
)

// IsValidRole reports whether role is one the directory accepts.
func IsValidRole(role string) bool {
	return role == RoleHospitalAdmin || role == RoleMember
}
