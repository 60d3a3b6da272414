package response

import (
	"github.com/cerebrexia/fest-backend/internal/domain"
)

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}
