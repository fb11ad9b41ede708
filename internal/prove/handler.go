package prove

import (
	"encoding/json"
	"log"
	"net/http"
)

// Handler serves POST /prove-score.
func Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		resp := Prove(req)
		log.Printf("proved score: rounds=%d perfects=%d iq=%d",
			resp.Result.Rounds, req.TotalPerfects, resp.Result.IQScore)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}
