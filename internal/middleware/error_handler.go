package middleware

import (
	"errors"
	apiError "signature-builder/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next() // Execute the handler first

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var appErr *apiError.AppError
		if !errors.As(err, &appErr) {
			// a raw error we didn't wrap is treated as internal
			appErr = apiError.Internal(err)
		}

		if appErr.Code >= 500 {
			log.Error().Err(appErr.Err).Str("path", c.FullPath()).Msg(appErr.Message)
		} else {
			log.Info().Err(appErr.Err).Int("status", appErr.Code).Msg(appErr.Message)
		}

		c.AbortWithStatusJSON(appErr.Code, appErr)
	}
}
