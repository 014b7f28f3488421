package transport

import (
	"encoding/json"
	"net/http"

	"github.com/raihanuddin561/skyzonebd-sub000/internal/user"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/utils"
)

type UserHandler struct {
	svc user.Service
}

func NewUserHandler(svc user.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

type registerRequest struct {
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	Name        string  `json:"name"`
	UserType    string  `json:"user_type"`
	CompanyName *string `json:"company_name,omitempty"`
	Mobile      *string `json:"mobile,omitempty"`
}

type authResponse struct {
	Token string `json:"token"`
	User  struct {
		ID       uint   `json:"id"`
		Email    string `json:"email"`
		Name     string `json:"name"`
		Role     string `json:"role"`
		UserType string `json:"user_type"`
	} `json:"user"`
}

func newAuthResponse(token string, u user.User) authResponse {
	var resp authResponse
	resp.Token = token
	resp.User.ID = u.ID
	resp.User.Email = u.Email
	resp.User.Name = u.Name
	resp.User.Role = string(u.Role)
	resp.User.UserType = string(u.UserType)
	return resp
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	token, u, err := h.svc.Register(r.Context(), user.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		Name:        req.Name,
		UserType:    user.UserType(req.UserType),
		CompanyName: req.CompanyName,
		Mobile:      req.Mobile,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, newAuthResponse(token, u), http.StatusCreated)
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	token, u, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, newAuthResponse(token, u), http.StatusOK)
}

// ListUsers is the admin user directory.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit, offset := paginationParams(r)

	users, err := h.svc.ListUsers(r.Context(), limit, offset)
	if err != nil {
		respondError(w, err)
		return
	}

	type userView struct {
		ID          uint    `json:"id"`
		Email       string  `json:"email"`
		Name        string  `json:"name"`
		Role        string  `json:"role"`
		UserType    string  `json:"user_type"`
		CompanyName *string `json:"company_name,omitempty"`
	}

	views := make([]userView, 0, len(users))
	for _, u := range users {
		views = append(views, userView{
			ID: u.ID, Email: u.Email, Name: u.Name,
			Role: string(u.Role), UserType: string(u.UserType),
			CompanyName: u.CompanyName,
		})
	}

	respondJSON(w, map[string]any{"users": views}, http.StatusOK)
}
