package model

import (
	"time"
)

type Role string

const (
	RoleFieldRep Role = "field_rep"
	RoleVendor   Role = "vendor"
	RoleAdmin    Role = "admin"
)

type User struct {
	ID            int64     `json:"id" db:"id"`
	Email         string    `json:"email" db:"email"`
	PasswordHash  string    `json:"-" db:"password_hash"`
	DisplayName   string    `json:"display_name" db:"display_name"`
	Role          Role      `json:"role" db:"role"`
	ContactEmail  *string   `json:"contact_email,omitempty" db:"contact_email"`
	ContactPhone  *string   `json:"contact_phone,omitempty" db:"contact_phone"`
	CreditBalance int       `json:"credit_balance" db:"credit_balance"` // cached fold of credit_transactions
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// ContactInfo is the gated slice of a profile revealed after an unlock.
type ContactInfo struct {
	UserID      int64   `json:"user_id"`
	DisplayName string  `json:"display_name"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
}
