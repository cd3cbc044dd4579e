package auth

// ===== Request =====

type LoginRequest struct {
	Email    string `json:"email" validate:"required,min=5,max=255,email"`
	Password string `json:"password" validate:"required,min=5,max=1024"`
}

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=5,max=50"`
	Email    string `json:"email" validate:"required,min=5,max=255,email"`
	Password string `json:"password" validate:"required,min=5,max=1024"`
	Phone    *int64 `json:"phone" validate:"required"`
	IsAdmin  *bool  `json:"isAdmin"`
}

// UpdateUserRequest replaces the profile. An omitted or empty password keeps
// the current one, an omitted isAdmin keeps the current role.
type UpdateUserRequest struct {
	Name     string  `json:"name" validate:"required,min=5,max=50"`
	Email    string  `json:"email" validate:"required,min=5,max=255,email"`
	Password *string `json:"password" validate:"omitempty,min=5,max=1024"`
	Phone    *int64  `json:"phone" validate:"required"`
	IsAdmin  *bool   `json:"isAdmin"`
}

// ===== Response =====

type LoginResponse struct {
	Token string `json:"token"`
}

type UserResponse struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   int64  `json:"phone"`
	IsAdmin bool   `json:"isAdmin"`
}

// UserSummary is the projection embedded in other resources.
type UserSummary struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

func toResponse(u *User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone, IsAdmin: u.IsAdmin}
}

func toIdentity(u *User) Identity {
	return Identity{ID: u.ID, IsAdmin: u.IsAdmin, Name: u.Name, Email: u.Email, Phone: u.Phone}
}
