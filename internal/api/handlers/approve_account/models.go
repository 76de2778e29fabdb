package approve_account

// SetApprovalRequest HTTP request model
type SetApprovalRequest struct {
	IsApproved bool `json:"isApproved"`
}
