package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// Request bodies use the camelCase field names of the dashboard clients;
// responses carry the domain's snake_case representation.

type createOrderRequest struct {
	ServiceType string `json:"serviceType" validate:"required"`
	Description string `json:"description"`
}

// patchOrderRequest carries an admin transition. Status membership and the
// notes requirement are enforced by the service layer, not here, so the
// stored order is provably untouched when they fail.
type patchOrderRequest struct {
	OrderID    string `json:"orderId"    validate:"required"`
	Status     string `json:"status"     validate:"required"`
	AdminNotes string `json:"adminNotes"`
	Action     string `json:"action"     validate:"omitempty,oneof=accept reject update"`
}
