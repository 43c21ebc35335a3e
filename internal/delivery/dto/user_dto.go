package dto

// Request DTOs

type UpdateProfileRequest struct {
	FirstName string `json:"first_name" validate:"omitempty,max=40"`
	LastName  string `json:"last_name" validate:"omitempty,max=40"`
	City      string `json:"city" validate:"omitempty,max=80"`
	State     string `json:"state" validate:"omitempty,max=40"`
	Country   string `json:"country" validate:"omitempty,max=40"`
	Timezone  string `json:"timezone" validate:"omitempty,timezone"`
}

// Response DTOs

type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int            `json:"total"`
}
