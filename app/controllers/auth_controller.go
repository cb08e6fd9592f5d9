package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/bind"
	"github.com/shashiranjanraj/storefront/pkg/response"
)

type AuthController struct {
	service *services.AccountService
}

func NewAuthController(service *services.AccountService) *AuthController {
	return &AuthController{service: service}
}

// Register handles POST /register.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if err := bind.JSON(w, r, &in); err != nil {
		response.Fail(w, err)
		return
	}

	msg, err := c.service.Register(r.Context(), in)
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.OK(w, map[string]interface{}{
		"success": true,
		"message": msg,
	})
}

// Login handles POST /login.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in services.LoginInput
	if err := bind.JSON(w, r, &in); err != nil {
		response.Fail(w, err)
		return
	}

	name, err := c.service.Login(r.Context(), in)
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.OK(w, map[string]interface{}{
		"success": true,
		"name":    name,
		"message": services.MsgLoggedIn,
	})
}
