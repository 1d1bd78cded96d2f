package middleware

import (
	"bytes"
	"io"
	"log"
	"net/http"

	"github.com/slack-go/slack"
)

// SlackSignatureMiddleware rejects requests that are not signed with the
// app's signing secret. With an empty secret requests pass through unchecked.
func SlackSignatureMiddleware(signingSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if signingSecret == "" {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var buf bytes.Buffer
			tee := io.TeeReader(r.Body, &buf)

			verifier, err := slack.NewSecretsVerifier(r.Header, signingSecret)
			if err != nil {
				log.Printf("❌ Invalid Slack signature headers: %v", err)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			if _, err := io.Copy(&verifier, tee); err != nil {
				log.Printf("❌ Failed to read request body: %v", err)
				http.Error(w, "failed to read body", http.StatusBadRequest)
				return
			}

			if err := verifier.Ensure(); err != nil {
				log.Printf("❌ Slack signature verification failed: %v", err)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			r.Body = io.NopCloser(&buf)
			next.ServeHTTP(w, r)
		})
	}
}
