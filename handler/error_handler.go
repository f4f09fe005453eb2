package handler

import (
	"fmt"
	"go-ledger-api/common"
	"go-ledger-api/logger"
	"go-ledger-api/middleware"
	"net/http"

	"github.com/sirupsen/logrus"
)

// ErrorHandlingMiddleware adapts a handler returning *common.AppError to http.HandlerFunc.
// A panic in next is answered with a 500 instead of dropping the connection.
func ErrorHandlingMiddleware(next func(http.ResponseWriter, *http.Request) *common.AppError) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				common.NewInternalError("An unexpected error occurred", fmt.Errorf("panic: %v", rec)).Send(w)
			}
		}()

		appErr := next(w, r)
		if appErr == nil {
			return
		}
		if appErr.Code < http.StatusInternalServerError {
			logger.Log.WithFields(logrus.Fields{
				"method":      r.Method,
				"path":        r.URL.Path,
				"request_id":  middleware.RequestIDFromContext(r.Context()),
				"status_code": appErr.Code,
			}).Info(appErr.Message)
		}
		appErr.Send(w)
	}
}
