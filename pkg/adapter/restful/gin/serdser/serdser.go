package serdser

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/momeni/dealer-web/pkg/core/cerr"
)

// Bind deserializes the request payload into req using the b binding
// and reports whether it succeeded. On failure, a {message} error
// response is serialized and false is returned, so the caller handler
// should return without further actions.
func Bind(c *gin.Context, req any, b binding.Binding) bool {
	switch err := c.ShouldBindWith(req, b).(type) {
	case *validator.InvalidValidationError:
		Err(c, http.StatusInternalServerError, err.Error())
	case validator.ValidationErrors:
		msgs := make([]string, len(err))
		for i, ferr := range err {
			msgs[i] = ferr.Error()
		}
		Err(c, http.StatusBadRequest, strings.Join(msgs, "; "))
	default:
		if err == nil {
			return true
		}
		Err(c, http.StatusBadRequest, err.Error())
	}
	return false
}

// Err serializes msg as a {message} error response with the given
// HTTP status code.
func Err(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{
		"message": msg,
	})
}

// SerErr serializes err as a {message} error response, taking the
// HTTP status code from its wrapped *cerr.Error (if any) and falling
// back to an internal server error otherwise.
func SerErr(c *gin.Context, err error) {
	var ce *cerr.Error
	if errors.As(err, &ce) {
		Err(c, ce.HTTPStatusCode, ce.Err.Error())
		return
	}
	Err(c, http.StatusInternalServerError, err.Error())
}
