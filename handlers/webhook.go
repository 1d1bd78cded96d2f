package handlers

import (
	"io"
	"log"
	"mime"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"tokenbot/models"
	"tokenbot/usecases"
)

const maxWebhookBodyBytes = 1 << 20

type WebhookHandler struct {
	tokensUseCase usecases.TokensUseCaseInterface
}

func NewWebhookHandler(tokensUseCase usecases.TokensUseCaseInterface) *WebhookHandler {
	return &WebhookHandler{tokensUseCase: tokensUseCase}
}

// HandleWebhook serves both the Events API and interactivity requests.
// Everything except url_verification is acknowledged with an empty body.
func (h *WebhookHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	log.Printf("📨 Slack webhook received from %s", r.RemoteAddr)

	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBodyBytes))
	if err != nil {
		log.Printf("❌ Failed to read request body: %v", err)
		writeText(w, http.StatusBadRequest, "failed to read body")
		return
	}

	ctx := r.Context()
	switch request := models.ClassifyWebhook(payloadField(r, body), body).(type) {
	case models.URLVerification:
		log.Printf("🔐 Responding to Slack URL verification challenge")
		writeText(w, http.StatusOK, request.Challenge)
		return
	case models.HomeOpened:
		log.Printf("🏠 App home opened by user %s", request.UserID)
		err = h.tokensUseCase.ProcessHomeOpened(ctx, request.UserID)
	case models.Interaction:
		log.Printf("🖱️ Interaction received with %d actions", len(request.Payload.Actions))
		err = h.tokensUseCase.ProcessInteraction(ctx, request.Payload)
	case models.Ignored:
		log.Printf("⏭️ Ignoring webhook: %s", request.Reason)
	default:
		log.Printf("⚠️ Unexpected webhook request %T - ignoring", request)
	}

	if err != nil {
		log.Printf("❌ Failed to process webhook: %v", err)
		writeText(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeText(w, http.StatusOK, "")
}

// payloadField returns the interactive payload form field, if the request has one
func payloadField(r *http.Request, body []byte) string {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		if form, err := url.ParseQuery(string(body)); err == nil && form.Get("payload") != "" {
			return form.Get("payload")
		}
	}

	return r.URL.Query().Get("payload")
}

// SetupEndpoints registers the webhook behind the given signature check
func (h *WebhookHandler) SetupEndpoints(router *mux.Router, verifySignature func(http.Handler) http.Handler) {
	log.Printf("🚀 Registering Slack webhook endpoints")

	router.Handle("/slack/events", verifySignature(http.HandlerFunc(h.HandleWebhook))).Methods("POST")
	log.Printf("✅ POST /slack/events endpoint registered")
}
