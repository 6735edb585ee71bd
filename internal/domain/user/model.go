package user

import "time"

// User is a staff account: clinicians, faculty, admins and front-desk staff
type User struct {
	UserID     uint      `gorm:"column:user_id;primaryKey;autoIncrement"`
	Username   string    `gorm:"column:username;unique;not null"`
	Email      string    `gorm:"column:email;unique;not null"`
	Password   string    `gorm:"column:password;not null"`
	FirstName  string    `gorm:"column:first_name;not null"`
	MiddleName string    `gorm:"column:middle_name"`
	LastName   string    `gorm:"column:last_name;not null"`
	Role       Role      `gorm:"column:role;type:varchar(20);not null"`
	CreatedAt  time.Time `gorm:"column:created_date"`
	UpdatedAt  time.Time `gorm:"column:updated_date"`
	IsActive   bool      `gorm:"column:is_active;default:true"`
}

func (User) TableName() string {
	return "users"
}

// Response is the wire representation of a user profile
type Response struct {
	UserID     uint      `json:"userId"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FirstName  string    `json:"firstName"`
	MiddleName string    `json:"middleName,omitempty"`
	LastName   string    `json:"lastName"`
	Role       Role      `json:"role"`
	CreatedAt  time.Time `json:"createdDate"`
	UpdatedAt  time.Time `json:"updatedDate"`
	IsActive   bool      `json:"isActive"`
}

// ToResponse converts a user entity to its wire representation,
// dropping the password hash
func (u *User) ToResponse() *Response {
	return &Response{
		UserID:     u.UserID,
		Username:   u.Username,
		Email:      u.Email,
		FirstName:  u.FirstName,
		MiddleName: u.MiddleName,
		LastName:   u.LastName,
		Role:       u.Role,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
		IsActive:   u.IsActive,
	}
}
