package utils

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/linskybing/programhub/pkg/types"
)

var ErrInvalidID = errors.New("invalid application id")

var GetClaimsFromContext = func(c *gin.Context) (*types.Claims, error) {
	claimsVal, exists := c.Get("claims")
	if !exists {
		return nil, errors.New("user claims not found in context")
	}

	claims, ok := claimsVal.(*types.Claims)
	if !ok {
		return nil, errors.New("invalid user claims type")
	}

	return claims, nil
}

var GetUserIDFromContext = func(c *gin.Context) (uint, error) {
	claims, err := GetClaimsFromContext(c)
	if err != nil {
		return 0, err
	}
	if claims.UserID == 0 {
		return 0, errors.New("user id missing from claims")
	}
	return claims.UserID, nil
}

// ParseUUIDParam reads a UUID path parameter and returns it in canonical form.
func ParseUUIDParam(c *gin.Context, param string) (string, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(c.Param(param)))
	if err != nil {
		return "", ErrInvalidID
	}
	return parsed.String(), nil
}
