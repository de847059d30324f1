package users_models

import "github.com/google/uuid"

type UsersSettings struct {
	ID uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	// means that anyone can register via the sign up form; when disabled,
	// accounts are only created by coordinators
	IsAllowSelfRegistration bool `json:"isAllowSelfRegistration" gorm:"column:is_allow_self_registration"`
}

func (UsersSettings) TableName() string {
	return "users_settings"
}
