package util

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AndrianinaH/cyberzone-finance/internal/ledger"
)

// Response is the data payload of a successful reply.
type Response map[string]interface{}

// Business error codes.
const (
	CodeOK           = 0
	CodeInvalidParam = 40001
	CodeAuth         = 40101
	CodeNotFound     = 40401
	CodeInvariant    = 40901
	CodeServerErr    = 50001
)

// Success writes the unified success envelope.
func Success(c *gin.Context, data Response) {
	c.JSON(http.StatusOK, gin.H{
		"code": CodeOK,
		"data": data,
	})
}

// Error writes the unified error envelope.
func Error(c *gin.Context, httpStatus int, code int, msg string) {
	c.JSON(httpStatus, gin.H{
		"code":    code,
		"message": msg,
	})
}

// LedgerError maps a typed core error to the HTTP envelope. Falls back to
// 500 for anything the taxonomy doesn't cover.
func LedgerError(c *gin.Context, err error) {
	var (
		validationErr ledger.ValidationError
		invariantErr  ledger.InvariantError
		notFoundErr   ledger.NotFoundError
	)
	switch {
	case errors.As(err, &validationErr):
		Error(c, http.StatusBadRequest, CodeInvalidParam, validationErr.Error())
	case errors.As(err, &invariantErr):
		Error(c, http.StatusConflict, CodeInvariant, invariantErr.Error())
	case errors.As(err, &notFoundErr):
		Error(c, http.StatusNotFound, CodeNotFound, notFoundErr.Error())
	default:
		Error(c, http.StatusInternalServerError, CodeServerErr, "internal error")
	}
}
