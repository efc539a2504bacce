package remotestore

import (
	"encoding/json"
	"net/http"
	"strings"
)

// EmulatorHandler serves the Realtime Database REST protocol on top of a
// MemoryStore. Run by --mode emulator and by the Firebase store tests.
func EmulatorHandler(store *MemoryStore, authToken string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if authToken != "" && r.URL.Query().Get("auth") != authToken {
			writeEmulatorError(w, http.StatusUnauthorized, "Permission denied")
			return
		}
		if !strings.HasSuffix(r.URL.Path, ".json") {
			writeEmulatorError(w, http.StatusBadRequest, "path must end with .json")
			return
		}
		path := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/"), ".json")
		ctx := r.Context()

		switch r.Method {
		case http.MethodGet:
			snap, err := store.Get(ctx, path)
			if err != nil {
				writeEmulatorError(w, http.StatusBadRequest, err.Error())
				return
			}
			w.Write(snap.Value)

		case http.MethodPost:
			var value any
			if err := json.NewDecoder(r.Body).Decode(&value); err != nil {
				writeEmulatorError(w, http.StatusBadRequest, "Invalid data; couldn't parse JSON object.")
				return
			}
			key, err := store.Push(ctx, path, value)
			if err != nil {
				writeEmulatorError(w, http.StatusBadRequest, err.Error())
				return
			}
			json.NewEncoder(w).Encode(map[string]string{"name": key})

		case http.MethodPatch:
			var fields map[string]any
			if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
				writeEmulatorError(w, http.StatusBadRequest, "Invalid data; couldn't parse JSON object.")
				return
			}
			if err := store.Update(ctx, path, fields); err != nil {
				writeEmulatorError(w, http.StatusBadRequest, err.Error())
				return
			}
			json.NewEncoder(w).Encode(fields)

		case http.MethodDelete:
			if err := store.Remove(ctx, path); err != nil {
				writeEmulatorError(w, http.StatusBadRequest, err.Error())
				return
			}
			w.Write([]byte("null"))

		default:
			writeEmulatorError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	})
}

func writeEmulatorError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
