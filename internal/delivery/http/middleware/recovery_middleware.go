package middleware

import (
	"fmt"
	"net/http"
	"runtime"

	"doctor-directory/pkg/response"

	"github.com/sirupsen/logrus"
)

type RecoveryMiddleware struct {
	log *logrus.Logger
}

func NewRecoveryMiddleware(log *logrus.Logger) *RecoveryMiddleware {
	return &RecoveryMiddleware{log: log}
}

func (m *RecoveryMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				var stack [4096]byte
				n := runtime.Stack(stack[:], false)

				requestID, _ := GetRequestIDFromContext(r.Context())
				m.log.WithFields(logrus.Fields{
					"request_id": requestID,
					"panic":      fmt.Sprintf("%v", rec),
					"stack":      string(stack[:n]),
				}).Error("panic recovered")

				response.InternalServerError(w, "")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
