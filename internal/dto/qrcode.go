package dto

// CreateQRCodeRequest creates a new entry. A blank shortCode asks the
// server to generate one; a nil active defaults to true.
type CreateQRCodeRequest struct {
	Name      string `json:"name"`
	ShortCode string `json:"shortCode"`
	TargetURL string `json:"targetUrl" binding:"required" msg:"targetUrl is required"`
	OneYear   bool   `json:"oneYear"`
	Active    *bool  `json:"active"`
}

// UpdateQRCodeRequest patches an entry. Nil fields are left untouched.
// OneYear true (re)arms the one-year window anchored to createdAt,
// false clears the expiry; ResetOneYear forces recomputation from
// createdAt.
type UpdateQRCodeRequest struct {
	Name         *string `json:"name"`
	TargetURL    *string `json:"targetUrl"`
	Active       *bool   `json:"active"`
	OneYear      *bool   `json:"oneYear"`
	ResetOneYear *bool   `json:"resetOneYear"`
}

// RotateCodeResponse is returned by the rotate-code operation.
type RotateCodeResponse struct {
	ID        uint   `json:"id"`
	ShortCode string `json:"shortCode"`
}
