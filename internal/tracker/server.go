package tracker

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

// Handler exposes the tracking api over HTTP, backed by the given store.
// Routes:
//   POST /api/runs            begin a run
//   GET  /api/runs            list appended records
//   POST /api/runs/{id}/log   attach params, metrics and artifact
//   POST /api/runs/{id}/end   close the run with a status
func Handler(mem *Memory) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/runs", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			var req beginRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			rc, err := mem.BeginRun(r.Context(), req.Experiment, req.RunName)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			log.Info().Str("run", rc.ID).Str("name", req.RunName).Msg("run started")
			respond(w, beginResponse{RunID: rc.ID})
		case http.MethodGet:
			respond(w, mem.Records())
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/api/runs/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/api/runs/"), "/")
		if len(parts) != 2 {
			http.NotFound(w, r)
			return
		}
		id, action := parts[0], parts[1]
		rc := RunContext{ID: id}

		switch action {
		case "log":
			var sub Submission
			if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			if err := mem.LogRun(r.Context(), rc, sub); err != nil {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			respond(w, struct{}{})
		case "end":
			var req endRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			if err := mem.EndRun(r.Context(), rc, req.Status); err != nil {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			log.Info().Str("run", id).Str("status", req.Status).Msg("run ended")
			respond(w, struct{}{})
		default:
			http.NotFound(w, r)
		}
	})

	return mux
}

func respond(w http.ResponseWriter, value interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(value); err != nil {
		log.Warn().Err(err).Msg("could not write response")
	}
}
