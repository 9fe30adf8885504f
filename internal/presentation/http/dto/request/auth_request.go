package request

// LoginRequest represents a PIN login request
type LoginRequest struct {
	StaffID string `json:"staff_id" binding:"required,uuid"`
	PIN     string `json:"pin" binding:"required,min=4,max=12"`
}

// UpdatePINRequest represents a PIN rotation request
type UpdatePINRequest struct {
	CurrentPIN string `json:"current_pin"`
	NewPIN     string `json:"new_pin" binding:"required,min=4,max=12"`
	ConfirmPIN string `json:"confirm_pin" binding:"required,eqfield=NewPIN"`
}
