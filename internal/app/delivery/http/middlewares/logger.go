package middlewares

import (
	"net/http"
	"sleepclinic-service/internal/app/config"
	"time"

	"github.com/sirupsen/logrus"
)

// RequestLogger prints a one-line access log, used outside production next
// to the structured zap request logs.
func (m *Middlewares) RequestLogger(appConfig config.App, log *logrus.Logger) func(next http.Handler) http.Handler {
	tz, err := time.LoadLocation(appConfig.Timezone)
	if err != nil {
		log.Warnf("Invalid time zone %q, falling back to UTC: %v", appConfig.Timezone, err)
		tz = time.UTC
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rec, r)

			log.Printf("%s | %s | %s ==> %s | %d | %s", time.Now().In(tz).Format(time.RFC850), r.RemoteAddr, r.Method, r.RequestURI, rec.statusCode, time.Since(start))
		})
	}
}
