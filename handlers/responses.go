package handlers

import (
	"log"
	"net/http"
)

const successPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Token issued</title>
</head>
<body>
<h1>Done!</h1>
<p>Your token is waiting in the app's direct messages in Slack. You can revoke it from there.</p>
</body>
</html>
`

func writeText(w http.ResponseWriter, statusCode int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(statusCode)
	if _, err := w.Write([]byte(text)); err != nil {
		log.Printf("❌ Failed to write response: %v", err)
	}
}

func writeHTML(w http.ResponseWriter, statusCode int, html string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	if _, err := w.Write([]byte(html)); err != nil {
		log.Printf("❌ Failed to write response: %v", err)
	}
}
