// file: model/request.go

package model

// RegisterRequest defines the payload for creating a new user.
// It includes validation tags to ensure data integrity at the entry point.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=7"`
}

// LoginRequest defines the payload for user authentication.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ChangeUsernameRequest defines the payload for renaming the current account.
type ChangeUsernameRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
}

// ChangePasswordRequest defines the payload for replacing the current
// account's password. The old password must be re-verified.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=7"`
}

// CreateFurnitureRequest defines the payload for adding a catalog item.
type CreateFurnitureRequest struct {
	Name        string  `json:"name" validate:"required,min=3,max=50"`
	Description string  `json:"description" validate:"max=1000"`
	Color       string  `json:"color" validate:"required,oneof=natural brown white black gray"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Featured    bool    `json:"featured"`
	Stock       int     `json:"stock" validate:"gte=0"`
	ImageURL    *string `json:"image_url" validate:"omitempty,url,max=256"`
}

// UpdateFurnitureRequest defines the payload for editing a catalog item.
// Nil fields are left untouched.
type UpdateFurnitureRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=3,max=50"`
	Description *string  `json:"description" validate:"omitempty,max=1000"`
	Color       *string  `json:"color" validate:"omitempty,oneof=natural brown white black gray"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	Featured    *bool    `json:"featured"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	ImageURL    *string  `json:"image_url" validate:"omitempty,url,max=256"`
}
