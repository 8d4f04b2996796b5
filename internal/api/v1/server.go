package apiv1

import (
	"github.com/gofiber/fiber/v2"

	// Delegate to existing controllers to keep behavior consistent
	"github.com/ManuelReschke/payu-starter/app/controllers"
)

// Pong is the response of the ping endpoint
type Pong struct {
	Ping string `json:"ping"`
}

// ServerInterface lists the operations documented in public/docs/v1/openapi.yml
type ServerInterface interface {
	GetPing(c *fiber.Ctx) error
	GetTransactions(c *fiber.Ctx) error
}

// RegisterHandlers mounts the v1 operations on the router
func RegisterHandlers(router fiber.Router, si ServerInterface) {
	router.Get("/ping", si.GetPing)
	router.Get("/transactions", si.GetTransactions)
}

// APIServer implements the ServerInterface
type APIServer struct{}

// NewAPIServer creates a new API server instance
func NewAPIServer() *APIServer {
	return &APIServer{}
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(Pong{Ping: "pong"})
}

// GetTransactions returns one page of the payment ledger
func (s *APIServer) GetTransactions(c *fiber.Ctx) error {
	return controllers.HandleAPITransactions(c)
}
