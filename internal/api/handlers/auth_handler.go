package handlers

import (
	"time"

	"tmm-backend/domain"
	"tmm-backend/internal/api/presenters"
	"tmm-backend/internal/utils"
	"tmm-backend/pkg/user"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	AuthHandler interface {
		Login(c *fiber.Ctx) error
		Logout(c *fiber.Ctx) error
		Me(c *fiber.Ctx) error
	}

	authHandler struct {
		userService  user.UserService
		validator    *validator.Validate
		sessionTTL   time.Duration
		secureCookie bool
	}
)

func NewAuthHandler(userService user.UserService, validator *validator.Validate, sessionTTL time.Duration, secureCookie bool) AuthHandler {
	return &authHandler{
		userService:  userService,
		validator:    validator,
		sessionTTL:   sessionTTL,
		secureCookie: secureCookie,
	}
}

func (h *authHandler) Login(c *fiber.Ctx) error {
	req := new(domain.LoginRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.Fail(c, domain.MessageFailedLogin, utils.ToValidationError(err))
	}

	res, err := h.userService.Login(c.UserContext(), *req)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedLogin, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     domain.SessionCookieName,
		Value:    res.Token,
		Path:     "/",
		Expires:  time.Now().Add(h.sessionTTL),
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessLogin)
}

func (h *authHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     domain.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessLogout)
}

func (h *authHandler) Me(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	res, err := h.userService.Me(c.UserContext(), userID)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetToken, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessMe)
}
