package dto

type SetRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=hospital_admin Member"`
}

type RoleResponse struct {
	ExternalID string  `json:"external_id"`
	Role       *string `json:"role"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int            `json:"total"`
}
