package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-billing/services"
	"github.com/yeremiapane/restaurant-billing/utils"
)

func validationStatus(err error) (int, bool) {
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, true
	}
	return 0, false
}

// respondServiceError memetakan error service ke status HTTP
func respondServiceError(c *gin.Context, err error) {
	utils.RespondDomainError(c, err,
		validationStatus,
		utils.MapTo(services.ErrDuplicateItem, http.StatusConflict),
		utils.MapTo(services.ErrNotFound, http.StatusNotFound),
		utils.MapTo(services.ErrOrderNotFound, http.StatusNotFound),
		utils.MapTo(services.ErrNoSalesData, http.StatusNotFound),
	)
}
