package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"tcm-webshop/models"
	"tcm-webshop/store"
	"tcm-webshop/utils"
)

// UserController handles registration, login and session queries
type UserController struct {
	Store  store.Store
	Logger *zap.Logger
}

// NewUserController creates a new UserController
func NewUserController(s store.Store, logger *zap.Logger) *UserController {
	return &UserController{Store: s, Logger: logger}
}

// Register handles user registration. A duplicate email is reported with the
// structured code "duplicate_email" alongside the legacy message.
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var draft models.RegistrationDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		respondError(w, http.StatusBadRequest, "invalid", "Ungültige Eingabe")
		return
	}

	email := strings.ToLower(strings.TrimSpace(draft.Email))
	if email == "" || draft.Password == "" {
		respondError(w, http.StatusBadRequest, "invalid", "Email und Passwort benötigt")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(draft.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal", "Fehler beim Hashen des Passworts")
		return
	}

	user := models.User{
		Email:      email,
		Password:   string(hashed),
		FullName:   strings.TrimSpace(draft.FullName),
		Address:    strings.TrimSpace(draft.Address),
		City:       strings.TrimSpace(draft.City),
		PostalCode: strings.TrimSpace(draft.PostalCode),
	}

	userID, err := uc.Store.CreateUser(r.Context(), &user)
	if errors.Is(err, store.ErrDuplicateEmail) {
		respondError(w, http.StatusBadRequest, "duplicate_email", "Email bereits registriert")
		return
	}
	if err != nil {
		uc.Logger.Error("register: create user failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal", "Fehler beim Anlegen des Benutzers")
		return
	}

	// registration logs the user straight in
	token, err := utils.GenerateJWT(userID, email, false)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal", "Fehler beim Erstellen der Session")
		return
	}
	utils.SetSessionCookie(w, token)

	uc.Logger.Info("user registered", zap.String("user_id", userID))
	respondJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "user_id": userID})
}

// Login handles user authentication and sets the session cookie
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		respondError(w, http.StatusBadRequest, "invalid", "Ungültige Eingabe")
		return
	}
	if creds.Email == "" || creds.Password == "" {
		respondError(w, http.StatusBadRequest, "invalid", "Email und Passwort benötigt")
		return
	}

	// the same failure shape for unknown user and wrong password
	user, err := uc.Store.UserByEmail(r.Context(), creds.Email)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_credentials", "Ungültige Anmeldedaten")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_credentials", "Ungültige Anmeldedaten")
		return
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal", "Fehler beim Erstellen der Session")
		return
	}
	utils.SetSessionCookie(w, token)

	uc.Logger.Info("user logged in", zap.String("user_id", user.ID))
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Logout clears the session cookie unconditionally
func (uc *UserController) Logout(w http.ResponseWriter, r *http.Request) {
	utils.ClearSessionCookie(w)
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Me returns the current user, or {"user": null} when nobody is logged in.
// Never an error: the client uses this as its page-entry gate.
func (uc *UserController) Me(w http.ResponseWriter, r *http.Request) {
	user := uc.currentUser(r)
	respondJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// Status reports API liveness and whether the caller is logged in
func (uc *UserController) Status(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"ok":        true,
		"logged_in": uc.currentUser(r) != nil,
	})
}

func (uc *UserController) currentUser(r *http.Request) *models.User {
	cookie, err := r.Cookie(utils.SessionCookie)
	if err != nil {
		return nil
	}
	claims, err := utils.ParseToken(cookie.Value)
	if err != nil {
		return nil
	}
	user, err := uc.Store.UserByID(r.Context(), claims.UserID)
	if err != nil {
		return nil
	}
	user.Password = ""
	return user
}
