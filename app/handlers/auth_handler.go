package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"
	"golang.org/x/crypto/bcrypt"

	"github.com/hatim/makmanager/app/helpers"
	"github.com/hatim/makmanager/app/models"
	"github.com/hatim/makmanager/app/repositories"
	"github.com/hatim/makmanager/app/utils/sessions"
)

type AuthHandler struct {
	render       *render.Render
	userRepo     repositories.UserRepositoryImpl
	sessionStore sessions.SessionStore
	validator    *validator.Validate
}

func NewAuthHandler(r *render.Render, userRepo repositories.UserRepositoryImpl, sessionStore sessions.SessionStore, validator *validator.Validate) *AuthHandler {
	return &AuthHandler{
		render:       r,
		userRepo:     userRepo,
		sessionStore: sessionStore,
		validator:    validator,
	}
}

type RegisterForm struct {
	Name      string `json:"name" validate:"required,min=2,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,min=10,max=15"`
	Password  string `json:"password" validate:"required,min=6"`
	Address   string `json:"address" validate:"max=255"`
	City      string `json:"city" validate:"max=100"`
	GSTNumber string `json:"gst_number" validate:"omitempty,max=20"`
}

type LoginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ProfileForm struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Address string `json:"address" validate:"max=255"`
	City    string `json:"city" validate:"max=100"`
}

// RegisterPost creates a dealer account. New dealers start unapproved and
// cannot transact until an admin lifts the gate.
func (h *AuthHandler) RegisterPost(w http.ResponseWriter, r *http.Request) {
	var form RegisterForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := h.validator.Struct(&form); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		_ = h.render.JSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":  "validation failed",
			"fields": helpers.FormatValidationErrors(validationErrors),
		})
		return
	}

	existing, err := h.userRepo.FindByEmail(r.Context(), form.Email)
	if err != nil {
		log.Printf("RegisterPost: failed to check email %s: %v", form.Email, err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "registration failed"})
		return
	}
	if existing != nil {
		_ = h.render.JSON(w, http.StatusConflict, map[string]string{"error": "email already registered"})
		return
	}

	user := &models.User{
		Name:      form.Name,
		Email:     form.Email,
		Phone:     form.Phone,
		Password:  form.Password,
		Address:   form.Address,
		City:      form.City,
		GSTNumber: form.GSTNumber,
		Role:      models.RoleDealer,
	}
	if err := h.userRepo.Create(r.Context(), user); err != nil {
		log.Printf("RegisterPost: failed to create user %s: %v", form.Email, err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "registration failed"})
		return
	}

	_ = h.render.JSON(w, http.StatusCreated, map[string]interface{}{
		"user":    user,
		"message": "registered. Account pending admin approval.",
	})
}

func (h *AuthHandler) LoginPost(w http.ResponseWriter, r *http.Request) {
	var form LoginForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := h.validator.Struct(&form); err != nil {
		_ = h.render.JSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "email and password are required"})
		return
	}

	user, err := h.userRepo.FindByEmail(r.Context(), form.Email)
	if err != nil {
		log.Printf("LoginPost: failed to get user by email %s: %v", form.Email, err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "login failed"})
		return
	}
	if user == nil {
		_ = h.render.JSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid email or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(form.Password)); err != nil {
		_ = h.render.JSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid email or password"})
		return
	}

	if err := h.sessionStore.SetUserID(w, r, user.ID); err != nil {
		log.Printf("LoginPost: failed to set session for user %s: %v", user.ID, err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create session"})
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

func (h *AuthHandler) LogoutPost(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionStore.ClearSession(w, r); err != nil {
		log.Printf("LogoutPost: failed to clear session: %v", err)
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"user": helpers.CurrentUser(r)})
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := helpers.CurrentUser(r)

	var form ProfileForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := h.validator.Struct(&form); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		_ = h.render.JSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":  "validation failed",
			"fields": helpers.FormatValidationErrors(validationErrors),
		})
		return
	}

	if err := h.userRepo.UpdateProfile(r.Context(), user.ID, form.Name, form.Address, form.City); err != nil {
		log.Printf("UpdateProfile: failed for user %s: %v", user.ID, err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update profile"})
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]string{"message": "profile updated"})
}
