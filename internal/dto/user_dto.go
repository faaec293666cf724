package dto

import "time"

type SignupRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	Username  string `json:"username" binding:"required,min=3"`
	FullName  string `json:"full_name" binding:"required,min=3"`
	StudentID string `json:"student_id" binding:"required,len=10"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserCreateRequest is the admin variant of signup; admins may also create
// other admins.
type UserCreateRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	Username  string `json:"username" binding:"required,min=3"`
	FullName  string `json:"full_name" binding:"required,min=3"`
	StudentID string `json:"student_id" binding:"required,len=10"`
	Role      string `json:"role" binding:"required,oneof=student admin"`
}

type UserResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	StudentID string    `json:"student_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
