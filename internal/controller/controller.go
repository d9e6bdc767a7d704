package controller

import (
	"encoding/json"
	"errors"
	"strconv"

	"edu_portfolio_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// marshalStringList encodes a string slice for a json column. nil slices
// become an empty array, never SQL NULL.
func marshalStringList(values []string) json.RawMessage {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return json.RawMessage("[]")
	}
	return data
}

// parseIDParam reads a numeric path parameter, writing a 400 on failure.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		util.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// respondError maps service errors onto HTTP responses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrUserNotFound),
		errors.Is(err, util.ErrCourseNotFound),
		errors.Is(err, util.ErrSectionNotFound),
		errors.Is(err, util.ErrVideoNotFound),
		errors.Is(err, util.ErrBlogNotFound),
		errors.Is(err, util.ErrInquiryNotFound),
		errors.Is(err, util.ErrStoryNotFound),
		errors.Is(err, util.ErrSubscriberNotFound):
		util.NotFound(c, err.Error())
	case errors.Is(err, util.ErrPermissionDenied),
		errors.Is(err, util.ErrOwnRoleChange):
		util.Forbidden(c)
	case errors.Is(err, util.ErrEmailRegistered),
		errors.Is(err, util.ErrAlreadyEnrolled),
		errors.Is(err, util.ErrAlreadySubscribed):
		util.Conflict(c, err.Error())
	case errors.Is(err, util.ErrTokenInvalid),
		errors.Is(err, util.ErrAlreadyVerified),
		errors.Is(err, util.ErrInvalidRole):
		util.BadRequest(c, err.Error())
	case errors.Is(err, util.ErrInvalidCredentials):
		util.Unauthorized(c, err.Error())
	default:
		util.LogInternalError(c, err)
	}
}
