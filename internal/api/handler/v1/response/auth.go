package response

import (
	"github.com/andescode/event-registration-api/internal/domain"
)

type LoginResponse struct {
	Token string       `json:"token"`
	Admin domain.Admin `json:"admin"`
}
