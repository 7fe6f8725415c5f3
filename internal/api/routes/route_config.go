package routes

import (
	"tmm-backend/internal/api/handlers"
	"tmm-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App          *fiber.App
	MenuHandler  handlers.MenuHandler
	OrderHandler handlers.OrderHandler
	AuthHandler  handlers.AuthHandler
	Middleware   middleware.Middleware
	Sessions     middleware.SessionValidator
	UploadDir    string
	UploadPath   string
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.Menu()
	c.Cart()
	c.Orders()
	c.Auth()
	c.AdminOrders()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	if c.UploadDir != "" {
		c.App.Static(c.UploadPath, c.UploadDir)
	}
}

func (c *Config) Menu() {
	menu := c.App.Group("/api/v1/menu")
	{
		menu.Get("", c.MenuHandler.GetMenuItems)
		menu.Get("/:id", c.MenuHandler.GetMenuItem)
		menu.Post("", c.Middleware.AuthMiddleware(c.Sessions), c.MenuHandler.CreateMenuItem)
		menu.Put("/:id", c.Middleware.AuthMiddleware(c.Sessions), c.MenuHandler.UpdateMenuItem)
		menu.Delete("/:id", c.Middleware.AuthMiddleware(c.Sessions), c.MenuHandler.DeleteMenuItem)
	}
}

func (c *Config) Cart() {
	c.App.Post("/api/v1/cart/quote", c.MenuHandler.QuoteCart)
}

func (c *Config) Orders() {
	c.App.Post("/api/v1/orders", c.OrderHandler.SubmitOrder)
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/v1/auth")
	{
		auth.Post("/login", c.AuthHandler.Login)
		auth.Delete("/logout", c.AuthHandler.Logout)
		auth.Get("/me", c.Middleware.AuthMiddleware(c.Sessions), c.AuthHandler.Me)
	}
}

func (c *Config) AdminOrders() {
	orders := c.App.Group("/api/v1/admin/orders", c.Middleware.AuthMiddleware(c.Sessions))
	orders.Get("", c.OrderHandler.GetOrders)
	orders.Get("/stats", c.OrderHandler.GetOrderStats)
	orders.Get("/:id", c.OrderHandler.GetOrder)
	orders.Patch("/:id/status", c.OrderHandler.UpdateOrderStatus)
}
