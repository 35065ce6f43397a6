package server

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"github.com/lgbarn/pgn-turns-go/internal/diagram"
	"github.com/lgbarn/pgn-turns-go/internal/errors"
)

// GameController handles the game routes.
type GameController struct {
	service *Service
}

// NewGameController creates a controller backed by service.
func NewGameController(service *Service) *GameController {
	return &GameController{service: service}
}

// Parse resolves every game in the request body.
func (gc *GameController) Parse(c *fiber.Ctx) error {
	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "empty request body",
		})
	}

	resp, err := gc.service.Parse(c.UserContext(), string(body))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(resp)
}

// Diagram renders one position of the first game in the body as SVG.
func (gc *GameController) Diagram(c *fiber.Ctx) error {
	opts := diagram.DefaultOptions(c.QueryInt("size", 45))
	opts.Flip = c.QueryBool("flip", false)
	if opts.SquareSize < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "size must be at least 8",
		})
	}

	svg, err := gc.service.Diagram(string(c.Body()), c.Query("ply"), opts)
	if err != nil {
		return errorResponse(c, err)
	}
	c.Set(fiber.HeaderContentType, "image/svg+xml")
	return c.Send(svg)
}

// Health reports the running totals.
func (gc *GameController) Health(c *fiber.Ctx) error {
	games, duplicates := gc.service.Stats()
	return c.JSON(fiber.Map{
		"status":     "ok",
		"games":      games,
		"duplicates": duplicates,
	})
}

func errorResponse(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, ErrTurnNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, errors.ErrUnresolvedMove),
		errors.Is(err, errors.ErrParseFailure),
		errors.Is(err, errors.ErrVariationDepth),
		errors.Is(err, errors.ErrEmptyMovetext),
		errors.Is(err, errors.ErrInvalidFEN):
		status = fiber.StatusUnprocessableEntity
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
