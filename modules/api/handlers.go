package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	domain "github.com/example/game-save-demo/domain/gamesave"
	"github.com/example/game-save-demo/modules/gamesave"
)

// setupRoutes configures all HTTP routes.
func (m *APIModule) setupRoutes(app *fiber.App) {
	// Health check endpoint
	app.Get("/health", m.healthHandler)

	// API v1 routes
	api := app.Group("/api/v1")

	players := api.Group("/players")
	players.Post("/sign-in", m.signIn)
	players.Post("/:player/provider", BearerToken(), m.initProvider)

	containers := api.Group("/containers", BearerToken())
	containers.Put("/:container/blobs", m.putBlobs)
	containers.Get("/:container/blobs", m.getBlobs)
	containers.Delete("/:container/blobs", m.deleteContainer)

	api.Put("/profile", BearerToken(), m.saveProfile)
	api.Get("/profile", BearerToken(), m.loadProfile)

	api.Get("/activity", BearerToken(), m.listActivity)
}

// healthHandler handles GET /health.
func (m *APIModule) healthHandler(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status: "healthy",
		Details: map[string]any{
			"module": "api",
			"port":   m.port,
		},
	})
}

// serviceError writes the HTTP response for a game save service error code.
func serviceError(c *fiber.Ctx, code string, outcome domain.Outcome) error {
	switch code {
	case gamesave.ErrCodeInvalidToken:
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   code,
			Message: "Invalid or expired token",
			Outcome: outcome,
		})
	case gamesave.ErrCodeProviderNotInitialized:
		return c.Status(fiber.StatusPreconditionFailed).JSON(ErrorResponse{
			Error:   code,
			Message: "Please initialize the game save provider first",
			Outcome: outcome,
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   code,
			Message: "Game save service failed",
			Outcome: outcome,
		})
	}
}

// callFailed writes the HTTP response for a failed service call.
func callFailed(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
		Error:   "service_unavailable",
		Message: err.Error(),
	})
}

// signIn handles POST /api/v1/players/sign-in.
func (m *APIModule) signIn(c *fiber.Ctx) error {
	var req SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}

	resp, err := m.players.SignIn(c.UserContext(), req.PlayerCode)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "sign_in_failed",
			Message: err.Error(),
		})
	}

	return c.JSON(SignInResponse{
		PlayerID:  resp.PlayerID,
		Token:     resp.Token,
		TokenType: resp.TokenType,
		ExpiresIn: resp.ExpiresIn,
		ExpiresAt: resp.ExpiresAt,
	})
}

// initProvider handles POST /api/v1/players/:player/provider. The token must
// belong to :player before the provider is touched.
func (m *APIModule) initProvider(c *fiber.Ctx) error {
	token := tokenFrom(c)
	claims, err := m.players.ValidateToken(c.UserContext(), token)
	if err != nil {
		return callFailed(c, err)
	}
	if !claims.Valid {
		return serviceError(c, gamesave.ErrCodeInvalidToken, domain.OutcomeUserHasNoAccountInfo)
	}
	if claims.PlayerID != c.Params("player") {
		return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
			Error:   "player_mismatch",
			Message: "Token does not belong to this player",
		})
	}

	resp, err := m.saves.InitProvider(c.UserContext(), &gamesave.InitProviderRequest{Token: token})
	if err != nil {
		return callFailed(c, err)
	}
	if resp.Error != "" {
		return serviceError(c, resp.Error, resp.Outcome)
	}

	return c.Status(resp.Outcome.HTTPStatus()).JSON(ProviderResponse{
		PlayerID: resp.PlayerID,
		Outcome:  resp.Outcome,
	})
}

// putBlobs handles PUT /api/v1/containers/:container/blobs.
func (m *APIModule) putBlobs(c *fiber.Ctx) error {
	var req PutBlobsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}

	resp, err := m.saves.SubmitBlobs(c.UserContext(), &gamesave.SubmitBlobsRequest{
		Token:       tokenFrom(c),
		Container:   c.Params("container"),
		DisplayName: req.DisplayName,
		Blobs:       req.Blobs,
	})
	if err != nil {
		return callFailed(c, err)
	}
	if resp.Error != "" {
		return serviceError(c, resp.Error, resp.Outcome)
	}

	return c.Status(resp.Outcome.HTTPStatus()).JSON(OutcomeResponse{Outcome: resp.Outcome})
}

// getBlobs handles GET /api/v1/containers/:container/blobs?keys=a,b.
func (m *APIModule) getBlobs(c *fiber.Ctx) error {
	keys := splitKeys(c.Query("keys"))
	if len(keys) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "validation_error",
			Message: "At least one key is required",
		})
	}

	container := c.Params("container")
	resp, err := m.saves.FetchBlobs(c.UserContext(), &gamesave.FetchBlobsRequest{
		Token:     tokenFrom(c),
		Container: container,
		Keys:      keys,
	})
	if err != nil {
		return callFailed(c, err)
	}
	if resp.Error != "" {
		return serviceError(c, resp.Error, resp.Outcome)
	}

	blobs := resp.Blobs
	if blobs == nil {
		blobs = map[string][]byte{}
	}
	return c.Status(resp.Outcome.HTTPStatus()).JSON(BlobsResponse{
		Container: container,
		Blobs:     blobs,
		Outcome:   resp.Outcome,
	})
}

// deleteContainer handles DELETE /api/v1/containers/:container/blobs.
func (m *APIModule) deleteContainer(c *fiber.Ctx) error {
	resp, err := m.saves.DeleteContainer(c.UserContext(), &gamesave.DeleteContainerRequest{
		Token:     tokenFrom(c),
		Container: c.Params("container"),
	})
	if err != nil {
		return callFailed(c, err)
	}
	if resp.Error != "" {
		return serviceError(c, resp.Error, resp.Outcome)
	}

	return c.Status(resp.Outcome.HTTPStatus()).JSON(OutcomeResponse{Outcome: resp.Outcome})
}

// saveProfile handles PUT /api/v1/profile.
func (m *APIModule) saveProfile(c *fiber.Ctx) error {
	var req gamesave.SaveProfileRequest
	if err := c.BodyParser(&req.Profile); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}
	req.Token = tokenFrom(c)

	resp, err := m.saves.SaveProfile(c.UserContext(), &req)
	if err != nil {
		return callFailed(c, err)
	}
	if resp.Error != "" {
		return serviceError(c, resp.Error, resp.Outcome)
	}

	return c.Status(resp.Outcome.HTTPStatus()).JSON(OutcomeResponse{Outcome: resp.Outcome})
}

// loadProfile handles GET /api/v1/profile.
func (m *APIModule) loadProfile(c *fiber.Ctx) error {
	resp, err := m.saves.LoadProfile(c.UserContext(), &gamesave.LoadProfileRequest{Token: tokenFrom(c)})
	if err != nil {
		return callFailed(c, err)
	}
	if resp.Error != "" {
		return serviceError(c, resp.Error, resp.Outcome)
	}

	return c.Status(resp.Outcome.HTTPStatus()).JSON(ProfileResponse{
		Profile:  resp.Profile,
		Assigned: resp.Assigned,
		Outcome:  resp.Outcome,
	})
}

// listActivity handles GET /api/v1/activity?limit=N. Only the caller's
// entries are returned.
func (m *APIModule) listActivity(c *fiber.Ctx) error {
	claims, err := m.players.ValidateToken(c.UserContext(), tokenFrom(c))
	if err != nil {
		return callFailed(c, err)
	}
	if !claims.Valid {
		return serviceError(c, gamesave.ErrCodeInvalidToken, domain.OutcomeUserHasNoAccountInfo)
	}

	limit := c.QueryInt("limit", 50)
	resp, err := m.activity.ListActivity(c.UserContext(), claims.PlayerID, limit)
	if err != nil {
		return callFailed(c, err)
	}

	return c.JSON(ActivityResponse{
		Entries: resp.Entries,
		Total:   resp.Total,
	})
}

// splitKeys parses a comma-separated key list, dropping empty items.
func splitKeys(raw string) []string {
	var keys []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
