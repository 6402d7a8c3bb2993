package handler

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Recent checks limit bounds
const (
	DefaultCheckLimit = 5
	MaxCheckLimit     = 100
)

var errEmptyBody = errors.New("request body is empty")

// ParseLimit reads the "limit" query parameter. Missing, malformed or
// non-positive values fall back to DefaultCheckLimit; values above
// MaxCheckLimit are clamped.
func ParseLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultCheckLimit)))
	if err != nil || limit < 1 {
		return DefaultCheckLimit
	}
	if limit > MaxCheckLimit {
		return MaxCheckLimit
	}
	return limit
}

// ExtractUUIDParam extracts and parses a UUID parameter from the URL path.
// Returns the parsed UUID or an error if the parameter is invalid.
func ExtractUUIDParam(c *gin.Context, param string) (uuid.UUID, error) {
	idStr := c.Param(param)
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s: %w", param, err)
	}
	return id, nil
}

// isPlainText reports whether the request carries a raw text body
func isPlainText(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "text/plain")
}

// readPlainText reads at most limit+1 bytes of a text/plain body so an
// oversized body is still detected as too long without reading it fully.
func readPlainText(c *gin.Context, limit int) (string, error) {
	if c.Request.Body == nil {
		return "", errEmptyBody
	}
	b, err := io.ReadAll(io.LimitReader(c.Request.Body, int64(limit)+1))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(b), nil
}
