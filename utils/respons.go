package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
		Data:    nil,
	})
}

// StatusMapper menerjemahkan error domain ke HTTP status code
type StatusMapper func(err error) (int, bool)

// RespondDomainError memilih status code lewat mapper, default 500
func RespondDomainError(c *gin.Context, err error, mappers ...StatusMapper) {
	for _, m := range mappers {
		if code, ok := m(err); ok {
			RespondError(c, code, err)
			return
		}
	}
	RespondError(c, http.StatusInternalServerError, err)
}

// MapTo membuat StatusMapper untuk satu sentinel error
func MapTo(target error, code int) StatusMapper {
	return func(err error) (int, bool) {
		if errors.Is(err, target) {
			return code, true
		}
		return 0, false
	}
}
