package kernel

import (
	"fmt"

	"github.com/smaikl/GLG-bot/internal/pkg/errs"
)

// Role is the part a user plays on the platform. It is chosen once at
// registration and never changes afterwards.
type Role string

const (
	RoleSender  Role = "sender"
	RoleCarrier Role = "carrier"
)

// ParseRole converts the persisted or callback representation into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

func (r Role) Validate() error {
	switch r {
	case RoleSender, RoleCarrier:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", string(r)))
	}
}

func (r Role) String() string {
	return string(r)
}
