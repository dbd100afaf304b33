package auth

import (
	"github.com/frahmantamala/timeclock/internal/core/common/validation"
)

// LoginForm is what the login page posts.
type LoginForm struct {
	Username string
	Password string
}

func (f LoginForm) Validate() error {
	v := validation.NewValidator()
	v.Field("username", f.Username).Required()
	v.Field("password", f.Password).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}
