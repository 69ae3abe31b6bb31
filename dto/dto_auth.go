package dto

import "agrisathi/model"

type RegisterReq struct {
	Name     string `json:"name"     validate:"required,min=2,max=100"`
	Phone    string `json:"phone"    validate:"required,e164"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	District string `json:"district" validate:"omitempty,max=100"`
	// Officer accounts need the signup code handed out by the admin team.
	Role       string `json:"role"       validate:"omitempty,oneof=farmer officer"`
	SignupCode string `json:"signupCode" validate:"omitempty"`
}

type LoginReq struct {
	Phone    string `json:"phone"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResp struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}
