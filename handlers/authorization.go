package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"tokenbot/usecases"
)

type AuthorizationHandler struct {
	tokensUseCase usecases.TokensUseCaseInterface
}

func NewAuthorizationHandler(tokensUseCase usecases.TokensUseCaseInterface) *AuthorizationHandler {
	return &AuthorizationHandler{tokensUseCase: tokensUseCase}
}

// HandleOAuthCallback finishes the OAuth flow Slack redirects the browser to
func (h *AuthorizationHandler) HandleOAuthCallback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	code := query.Get("code")
	if code == "" {
		if slackErr := query.Get("error"); slackErr != "" {
			log.Printf("⚠️ OAuth callback without code, Slack reported: %s", slackErr)
		} else {
			log.Printf("⏭️ OAuth callback without code - nothing to do")
		}
		writeText(w, http.StatusOK, "")
		return
	}

	result, err := h.tokensUseCase.Authorize(r.Context(), code)
	if err != nil {
		log.Printf("❌ Failed to authorize: %v", err)
		writeText(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if result.AuthorizedUser().IsAbsent() {
		writeText(w, http.StatusOK, result.Error)
		return
	}

	writeHTML(w, http.StatusOK, successPage)
}

// HandleInstall sends the browser to Slack's authorize page
func (h *AuthorizationHandler) HandleInstall(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.tokensUseCase.InstallURL(), http.StatusFound)
}

func (h *AuthorizationHandler) SetupEndpoints(router *mux.Router, callbackPath string) {
	log.Printf("🚀 Registering OAuth endpoints")

	router.HandleFunc(callbackPath, h.HandleOAuthCallback).Methods("GET")
	log.Printf("✅ GET %s endpoint registered", callbackPath)

	router.HandleFunc("/slack/install", h.HandleInstall).Methods("GET")
	log.Printf("✅ GET /slack/install endpoint registered")
}
