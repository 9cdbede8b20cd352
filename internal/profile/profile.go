package profile

import (
	"net/http"

	auth "MixLab/internal/auth"
	"MixLab/internal/handlers"
)

type ProfileHandler struct{}

type Profile struct {
	ID    int    `json:"id"`
	Login string `json:"login"`
}

// GetProfile returns the identity carried by the session token.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		handlers.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	handlers.WriteJSON(w, http.StatusOK, Profile{ID: userID, Login: auth.UserLoginFromContext(r.Context())})
}
