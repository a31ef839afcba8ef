package handlers

import "net/http"

// Welcome answers the root route with a friendly greeting.
func Welcome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to the REST API project!"})
}
