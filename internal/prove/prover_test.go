package prove

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestEvaluateEmptySession(t *testing.T) {
	got := Evaluate(nil, 0)
	want := Result{AvgReaction: 0, IQScore: 70, Consistency: 0, Rounds: 0}
	if got != want {
		t.Errorf("empty session: got %+v, want %+v", got, want)
	}
}

func TestEvaluateUniformTimes(t *testing.T) {
	// Identical reaction times have zero deviation, so consistency is 100.
	got := Evaluate([]int{400, 400, 400}, 0)

	if got.Consistency != 100 {
		t.Errorf("consistency = %d, want 100", got.Consistency)
	}
	if got.AvgReaction != 400 {
		t.Errorf("avg = %v, want 400", got.AvgReaction)
	}
	if got.Rounds != 3 {
		t.Errorf("rounds = %d, want 3", got.Rounds)
	}

	// speed = 100*(1-(400-150)/500) = 50; iq = round(80+50+40+0) = 170.
	if got.IQScore != 170 {
		t.Errorf("iq = %d, want 170", got.IQScore)
	}
}

func TestEvaluateClamping(t *testing.T) {
	tests := []struct {
		name     string
		times    []int
		perfects int
		wantIQ   int
	}{
		{"FastAndPerfect", []int{150, 150, 150}, 50, 180},
		{"VerySlow", []int{5000}, 0, 120}, // speed clamps to 0; single round is fully consistent
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.times, tt.perfects)
			if got.IQScore != tt.wantIQ {
				t.Errorf("iq = %d, want %d", got.IQScore, tt.wantIQ)
			}
			if got.IQScore < 70 || got.IQScore > 180 {
				t.Errorf("iq %d outside [70,180]", got.IQScore)
			}
		})
	}
}

func TestEvaluateConsistency(t *testing.T) {
	times := []int{300, 500}
	got := Evaluate(times, 0)

	avg := 400.0
	stdDev := 100.0
	want := int(math.Max(0, 100*(1-stdDev/avg)))
	if got.Consistency != want {
		t.Errorf("consistency = %d, want %d", got.Consistency, want)
	}
}

func TestHandler(t *testing.T) {
	body, _ := json.Marshal(Request{ReactionTimes: []int{400, 450, 500}, TotalPerfects: 2})

	req := httptest.NewRequest(http.MethodPost, "/prove-score", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	Handler()(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.HasPrefix(resp.Proof, "proof_") {
		t.Errorf("proof token %q missing prefix", resp.Proof)
	}
	if resp.Result.Rounds != 3 {
		t.Errorf("rounds = %d, want 3", resp.Result.Rounds)
	}
}

func TestHandlerBadBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/prove-score", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	Handler()(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
