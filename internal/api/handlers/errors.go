package handlers

import (
	"errors"

	"ost-panel/internal/services"

	"github.com/gin-gonic/gin"
)

// errStatus maps service errors onto HTTP status codes.
func errStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrEquipoNotFound),
		errors.Is(err, services.ErrSolicitudNotFound),
		errors.Is(err, services.ErrUserNotFound):
		return 404
	case errors.Is(err, services.ErrRequiredField),
		errors.Is(err, services.ErrInvalidDate),
		errors.Is(err, services.ErrNoFields),
		errors.Is(err, services.ErrInvalidCategoria),
		errors.Is(err, services.ErrInvalidPeriod),
		errors.Is(err, services.ErrUserExists),
		errors.Is(err, services.ErrInvalidRole):
		return 400
	case errors.Is(err, services.ErrWrongPassword):
		return 403
	case errors.Is(err, services.ErrInvalidCredentials):
		return 401
	}
	return 500
}

func abortWithError(c *gin.Context, err error) {
	status := errStatus(err)
	if status == 500 {
		c.JSON(500, gin.H{"error": "Error interno"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
