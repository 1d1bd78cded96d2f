package middleware

import (
	"log"
	"net/http"
	"time"

	"tokenbot/core"
)

const RequestIDHeader = "X-Request-ID"

// RequestLogging tags every request with an id, echoes it in the response
// headers and logs the outcome. Query strings are not logged since the OAuth
// callback carries the authorization code there.
func RequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := core.NewID("req")
		w.Header().Set(RequestIDHeader, requestID)

		start := time.Now()
		log.Printf("📨 [%s] %s %s", requestID, r.Method, r.URL.Path)

		recorder := newStatusRecorder(w)
		next.ServeHTTP(recorder, r)

		elapsed := time.Since(start).Round(time.Millisecond)
		if recorder.status >= http.StatusInternalServerError {
			log.Printf("❌ [%s] %s %s -> %d in %s", requestID, r.Method, r.URL.Path, recorder.status, elapsed)
			return
		}
		log.Printf("✅ [%s] %s %s -> %d in %s", requestID, r.Method, r.URL.Path, recorder.status, elapsed)
	})
}
