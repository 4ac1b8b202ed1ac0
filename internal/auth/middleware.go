package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/bloodbridge/internal/domain"
	"github.com/spec-kit/bloodbridge/pkg/util"
)

const claimsKey = "auth_claims"

// bearer scheme is case-sensitive with exactly one space before the token.
const bearerPrefix = "Bearer "

// Guard gates protected requests. It is constructed once and injected into
// every route group; handlers never verify tokens themselves.
type Guard struct {
	tokens *TokenManager
	logger *zap.Logger
}

// NewGuard builds the access guard.
func NewGuard(tokens *TokenManager, logger *zap.Logger) *Guard {
	return &Guard{tokens: tokens, logger: logger}
}

// Authenticate extracts and verifies the bearer credential, returning the
// caller's claims. The header is checked before the codec runs, and every
// verification failure collapses to one 401 so clients cannot probe which
// kind applied.
func (g *Guard) Authenticate(c *fiber.Ctx) (*Claims, error) {
	token, ok := extractBearer(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return nil, util.NewMissingCredential()
	}

	claims, err := g.tokens.Verify(token)
	if err != nil {
		g.logger.Debug("token rejected", zap.String("reason", err.Error()))
		return nil, util.NewInvalidCredential()
	}

	c.Locals(claimsKey, claims)
	return claims, nil
}

// Authorize authenticates and then requires the given role.
func (g *Guard) Authorize(c *fiber.Ctx, required domain.Role) (*Claims, error) {
	claims, err := g.Authenticate(c)
	if err != nil {
		return nil, err
	}
	if claims.UserType != required {
		return nil, util.NewForbidden(string(required) + " access required")
	}
	return claims, nil
}

// ClaimsFromContext retrieves the authenticated claims stored by the guard.
func ClaimsFromContext(c *fiber.Ctx) (*Claims, bool) {
	val := c.Locals(claimsKey)
	if val == nil {
		return nil, false
	}
	claims, ok := val.(*Claims)
	return claims, ok
}

func extractBearer(header string) (string, bool) {
	token, found := strings.CutPrefix(header, bearerPrefix)
	if !found || token == "" || strings.IndexFunc(token, isSpace) >= 0 {
		return "", false
	}
	return token, true
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t'
}
