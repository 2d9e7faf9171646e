package middleware

import (
	stderrors "errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"stt-relay/internal/api/errors"
)

// DefaultErrorMessage is returned for unexpected failures outside a more
// specific route group
const DefaultErrorMessage = "Internal server error"

// ErrorHandler recovers panics and answers with a generic 500 carrying
// message. The recovered value is logged and never sent to the client.
func ErrorHandler(logger *zap.Logger, message string) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		requestID := c.GetString(RequestIDKey)

		var apiErr *errors.APIError

		switch err := recovered.(type) {
		case *errors.APIError:
			apiErr = err
		case error:
			logger.Error("Internal server error",
				zap.Error(err),
				zap.String("request_id", requestID),
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			)
			apiErr = errors.NewInternalError(message)
		default:
			logger.Error("Unknown panic occurred",
				zap.String("recovered", fmt.Sprint(recovered)),
				zap.String("request_id", requestID),
				zap.String("path", c.Request.URL.Path),
			)
			apiErr = errors.NewInternalError(message)
		}

		apiErr.RequestID = requestID
		c.AbortWithStatusJSON(apiErr.HTTPStatus(), apiErr)
	})
}

// HandleError aborts the request with err. APIErrors are answered directly
// and their cause is logged; anything else panics into ErrorHandler.
func HandleError(c *gin.Context, logger *zap.Logger, err error) {
	if err == nil {
		return
	}

	var apiErr *errors.APIError
	if !stderrors.As(err, &apiErr) {
		panic(err)
	}

	requestID := c.GetString(RequestIDKey)
	if cause := apiErr.Unwrap(); cause != nil && logger != nil {
		logger.Error(apiErr.Message,
			zap.Error(cause),
			zap.String("request_id", requestID),
			zap.String("path", c.Request.URL.Path),
		)
	}
	_ = c.Error(err)

	apiErr.RequestID = requestID
	c.AbortWithStatusJSON(apiErr.HTTPStatus(), apiErr)
}
