package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Err is the error envelope. Data optionally carries a payload, e.g. the
// existing record on a duplicate-key failure.
type Err struct {
	StatusCode int    `json:"-"`
	Success    bool   `json:"success"`
	ErrorMsg   string `json:"error"`
	Data       any    `json:"data,omitempty"`
}

func (e *Err) Error() string {
	return e.ErrorMsg
}

func RenderErr(ctx *gin.Context, err *Err) {
	if err.StatusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("path", ctx.FullPath()),
			zap.String("error", err.ErrorMsg))
	}

	ctx.AbortWithStatusJSON(err.StatusCode, err)
}

func ErrNotFound(what, key string, value any) *Err {
	return &Err{
		StatusCode: http.StatusNotFound,
		ErrorMsg:   what + " not found",
		Data:       gin.H{key: value},
	}
}

func ErrBadRequest(err error) *Err {
	return &Err{
		StatusCode: http.StatusBadRequest,
		ErrorMsg:   err.Error(),
	}
}

// ErrDuplicate reports a business-key collision along with the record that
// already holds the key.
func ErrDuplicate(err error, existing any) *Err {
	return &Err{
		StatusCode: http.StatusBadRequest,
		ErrorMsg:   err.Error(),
		Data:       existing,
	}
}

func ErrWrongCredentials(err error) *Err {
	return &Err{
		StatusCode: http.StatusUnauthorized,
		ErrorMsg:   err.Error(),
	}
}

func ErrInternalServerError(err error) *Err {
	return &Err{
		StatusCode: http.StatusInternalServerError,
		ErrorMsg:   err.Error(),
	}
}
