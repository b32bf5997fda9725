package dto

// CreateUserRequest is the create-user payload.
type CreateUserRequest struct {
	Name            string `json:"name" binding:"required,max=30"`
	PaternalSurname string `json:"paternal_surname" binding:"required,max=30"`
	MaternalSurname string `json:"maternal_surname" binding:"max=30"`
	Email           string `json:"email" binding:"required,email,max=150"`
	Password        string `json:"password" binding:"required"`
	Role            string `json:"role" binding:"required"`
	Area            string `json:"area" binding:"max=50"`
}

// UpdateUserRequest is the partial-update payload; nil fields keep their value.
type UpdateUserRequest struct {
	Name            *string `json:"name" binding:"omitempty,max=30"`
	PaternalSurname *string `json:"paternal_surname" binding:"omitempty,max=30"`
	MaternalSurname *string `json:"maternal_surname" binding:"omitempty,max=30"`
	Email           *string `json:"email" binding:"omitempty,email,max=150"`
	Password        *string `json:"password"`
	Role            *string `json:"role"`
	Area            *string `json:"area" binding:"omitempty,max=50"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	PaternalSurname string `json:"paternal_surname"`
	MaternalSurname string `json:"maternal_surname"`
	Email           string `json:"email"`
	Role            string `json:"role"`
	Area            string `json:"area"`
	CreatedAt       string `json:"created_at"`
}
