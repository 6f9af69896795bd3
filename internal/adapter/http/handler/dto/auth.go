package dto

import "github.com/Daniyar8k/park-ledger-system/pkg/validator"

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func ValidateLogin(v *validator.Validator, req *LoginRequest) {
	v.Check(req.Username != "", "username", "must be provided")
	v.Check(req.Password != "", "password", "must be provided")
}
