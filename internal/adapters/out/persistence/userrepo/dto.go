package userrepo

import (
	"time"

	"github.com/smaikl/GLG-bot/internal/core/domain/model/kernel"
	"github.com/smaikl/GLG-bot/internal/core/domain/model/user"
)

// UserDTO is the row layout of the users table. The primary key is the
// Telegram user id, so it is never generated by the database.
type UserDTO struct {
	ID               int64     `gorm:"column:user_id;primaryKey;autoIncrement:false"`
	Username         *string   `gorm:"column:username"`
	FullName         string    `gorm:"column:full_name;not null"`
	Phone            string    `gorm:"column:phone;not null"`
	Email            *string   `gorm:"column:email"`
	Company          *string   `gorm:"column:company"`
	Role             string    `gorm:"column:role;not null"`
	RegistrationDate time.Time `gorm:"column:registration_date;not null"`
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	var username *string
	if u.Username() != "" {
		v := u.Username()
		username = &v
	}

	var email *string
	if e := u.Email(); e != nil {
		v := e.String()
		email = &v
	}

	return UserDTO{
		ID:               u.ID(),
		Username:         username,
		FullName:         u.FullName(),
		Phone:            u.Phone().String(),
		Email:            email,
		Company:          u.Company(),
		Role:             u.Role().String(),
		RegistrationDate: u.RegisteredAt(),
	}
}

// profileColumns lists what Update may overwrite. Role and registration date are not among them.
func (dto UserDTO) profileColumns() map[string]any {
	return map[string]any{
		"username":  dto.Username,
		"full_name": dto.FullName,
		"phone":     dto.Phone,
		"email":     dto.Email,
		"company":   dto.Company,
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	role, err := kernel.ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}

	phone, err := kernel.NewPhone(dto.Phone)
	if err != nil {
		return nil, err
	}

	var email *kernel.Email
	if dto.Email != nil {
		e, emailErr := kernel.NewEmail(*dto.Email)
		if emailErr != nil {
			return nil, emailErr
		}
		email = &e
	}

	var username string
	if dto.Username != nil {
		username = *dto.Username
	}

	return user.RestoreUser(dto.ID, role, user.Profile{
		Username: username,
		FullName: dto.FullName,
		Phone:    phone,
		Email:    email,
		Company:  dto.Company,
	}, dto.RegistrationDate)
}
