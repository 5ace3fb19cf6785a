package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adnanmouslli/trip-manager/internal/services"
)

type AuthHandler struct {
	Auth services.AuthService
}

type signupRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

func (h AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	user, err := h.Auth.Signup(c.Request.Context(), req.Name, req.Phone, req.Role, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

type loginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (h AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	token, user, err := h.Auth.Login(c.Request.Context(), req.Name, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}
