package server

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Skufu/GlucoRisk/internal/accounts"
	"github.com/Skufu/GlucoRisk/internal/session"
)

type signUpRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

type signInRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *handlers) createAccount(c *gin.Context) {
	if !h.accountsEnabled(c) {
		return
	}
	var payload signUpRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and a valid email are required"})
		return
	}

	acc, err := h.accounts.Create(c.Request.Context(), payload.Name, payload.Email)
	switch {
	case errors.Is(err, accounts.ErrAccountExists):
		c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists. Please sign in instead."})
		return
	case errors.Is(err, accounts.ErrInvalidAccount):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		log.Printf("create account: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create account"})
		return
	}

	token, err := h.sessions.Issue(acc.Email, acc.Name)
	if err != nil {
		log.Printf("issue session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start session"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"account": acc, "token": token})
}

func (h *handlers) signIn(c *gin.Context) {
	if !h.accountsEnabled(c) {
		return
	}
	var payload signInRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter your email"})
		return
	}

	name, ok, err := h.accounts.DisplayName(c.Request.Context(), payload.Email)
	if err != nil {
		log.Printf("lookup account: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not sign in"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No account found with this email. Please create an account first."})
		return
	}

	email := accounts.NormalizeEmail(payload.Email)
	token, err := h.sessions.Issue(email, name)
	if err != nil {
		log.Printf("issue session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": name, "email": email, "token": token})
}

func (h *handlers) me(c *gin.Context) {
	claims := h.bearerClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid bearer token"})
		return
	}
	if !h.accountsEnabled(c) {
		return
	}

	name, ok, err := h.accounts.DisplayName(c.Request.Context(), claims.Email())
	if err != nil {
		log.Printf("lookup account: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load account"})
		return
	}
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "account no longer exists"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": name, "email": claims.Email()})
}

func (h *handlers) accountsEnabled(c *gin.Context) bool {
	if h.accounts == nil || h.sessions == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "accounts are disabled"})
		return false
	}
	return true
}

// bearerClaims returns the session claims of the request, or nil when no
// valid bearer token was sent.
func (h *handlers) bearerClaims(c *gin.Context) *session.Claims {
	if h.sessions == nil {
		return nil
	}
	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return nil
	}
	claims, err := h.sessions.Parse(strings.TrimPrefix(auth, "Bearer "))
	if err != nil {
		return nil
	}
	return claims
}
