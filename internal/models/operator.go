package models

import (
	"time"

	"github.com/google/uuid"
)

// Operator is a person allowed to record settlements.
type Operator struct {
	// ID is the unique identifier for the operator (UUID format).
	ID string `json:"id"`

	// Email is used for login (unique).
	Email string `json:"email"`

	// DisplayName is shown in the settlement history.
	DisplayName string `json:"displayName"`

	// PasswordHash is the bcrypt hash of the operator's password.
	PasswordHash string `json:"-"`

	CreatedAt int64 `json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt"`
}

// NewOperator builds an operator with a fresh ID and timestamps.
func NewOperator(email, displayName, passwordHash string) *Operator {
	now := time.Now().Unix()
	return &Operator{
		ID:           uuid.New().String(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Preferences holds an operator's "last used" choices in the settlement editor.
// It is passed around explicitly instead of living in global state.
type Preferences struct {
	OperatorID      string `json:"operatorId"`
	LastAssociateID string `json:"lastAssociateId,omitempty"`
	LastContractID  string `json:"lastContractId,omitempty"`
	UpdatedAt       int64  `json:"updatedAt"`
}
