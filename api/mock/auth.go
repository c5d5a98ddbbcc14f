package mock

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/viant/crmsession/identity"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type userResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type tokenResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	TokenType    string        `json:"token_type"`
	User         *userResponse `json:"user"`
}

func newUserResponse(user *User) *userResponse {
	return &userResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt.Format(naiveLayout),
		UpdatedAt: user.UpdatedAt.Format(naiveLayout),
	}
}

func writeJSON(w http.ResponseWriter, status int, value interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func (s *AuthService) writeTokens(w http.ResponseWriter, status int, user *User) {
	access, refresh, err := s.issuePair(user)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, status, &tokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		User:         newUserResponse(user),
	})
}

// defaultLoginHandler handles login requests
func (s *AuthService) defaultLoginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	request := &loginRequest{}
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}
	user, ok := s.users.Get(request.Email)
	if !ok || user.Password != request.Password {
		writeDetail(w, http.StatusUnauthorized, "Incorrect email or password")
		return
	}
	s.writeTokens(w, http.StatusOK, user)
}

// defaultRegisterHandler handles registration requests, new accounts get viewer role
func (s *AuthService) defaultRegisterHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	request := &registerRequest{}
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}
	if !strings.Contains(request.Email, "@") || len(request.Password) < 8 || request.FullName == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"detail": []map[string]interface{}{
				{"loc": []interface{}{"body", "password"}, "msg": "ensure this value has at least 8 characters"},
			},
		})
		return
	}
	user, created := s.addUser(request.Email, request.Password, request.FullName, identity.RoleViewer)
	if !created {
		writeDetail(w, http.StatusBadRequest, "Email already registered")
		return
	}
	s.writeTokens(w, http.StatusCreated, user)
}

// defaultMeHandler returns identity for bearer credential
func (s *AuthService) defaultMeHandler(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeDetail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	email, err := s.subject(parts[1])
	if err != nil {
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}
	user, ok := s.users.Get(email)
	if !ok {
		writeDetail(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, newUserResponse(user))
}

// defaultTokenHandler handles password grant requests
func (s *AuthService) defaultTokenHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_request"})
		return
	}
	if r.FormValue("grant_type") != "password" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unsupported_grant_type"})
		return
	}
	clientID, clientSecret, ok := r.BasicAuth()
	if !ok {
		clientID = r.FormValue("client_id")
		clientSecret = r.FormValue("client_secret")
	}
	if clientID != s.ClientID || clientSecret != s.ClientSecret {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid_client"})
		return
	}
	user, ok := s.users.Get(r.FormValue("username"))
	if !ok || user.Password != r.FormValue("password") {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":             "invalid_grant",
			"error_description": "Incorrect email or password",
		})
		return
	}
	access, refresh, err := s.issuePair(user)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "server_error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"access_token":  access,
		"refresh_token": refresh,
		"token_type":    "Bearer",
		"expires_in":    int(s.AccessTTL.Seconds()),
	})
}
