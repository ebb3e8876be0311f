package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookhaven/backend/internal/apperr"
)

// Every response uses the same envelope:
// {"status":"success"|"error","code":<int>,"message":...,"data":...}

func respondSuccess(c *gin.Context, message string, data interface{}) {
	body := gin.H{
		"status":  "success",
		"code":    http.StatusOK,
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(http.StatusOK, body)
}

func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := err.Error()
	if e := apperr.As(err); e != nil {
		status = e.HTTPStatus()
		message = e.Message
		if e.Cause != nil {
			message = e.Error()
		}
	}
	c.JSON(status, gin.H{
		"status":  "error",
		"code":    status,
		"message": message,
	})
}
