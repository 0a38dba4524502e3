package middleware

import (
	"net/http"

	log "github.com/sirupsen/logrus"
)

// LogRequest trace-logs every incoming request line.
func LogRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Tracef("=> %s %s [ua: %s]", r.Method, r.URL.Path, r.UserAgent())
			next.ServeHTTP(w, r)
		})
	}
}
