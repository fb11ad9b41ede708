// Package prove implements the score-proving service: it turns raw reaction
// data into a result summary and an opaque proof token. Proof generation is
// mocked; the result math is the real scoring model.
package prove

import (
	"fmt"
	"math"
	"time"
)

// Request is the /prove-score request body.
type Request struct {
	ReactionTimes []int `json:"reaction_times"`
	TotalPerfects int   `json:"total_perfects"`
}

// Result is the derived score summary committed alongside the proof.
type Result struct {
	AvgReaction float64 `json:"avgReaction"`
	IQScore     int     `json:"iqScore"`
	Consistency int     `json:"consistency"`
	Rounds      int     `json:"rounds"`
}

// Response is the /prove-score response body.
type Response struct {
	Proof  string `json:"proof"`
	Result Result `json:"result"`
}

const (
	baseIQ  = 80.0
	minIQ   = 70
	maxIQ   = 180
	emptyIQ = 70
)

// Evaluate derives the score summary from reaction times (milliseconds) and
// the perfect count. The score blends average speed, consistency (standard
// deviation relative to the mean), and perfects.
func Evaluate(reactionTimes []int, perfects int) Result {
	rounds := len(reactionTimes)
	if rounds == 0 {
		return Result{AvgReaction: 0, IQScore: emptyIQ, Consistency: 0, Rounds: 0}
	}

	sum := 0.0
	for _, rt := range reactionTimes {
		sum += float64(rt)
	}
	avg := sum / float64(rounds)

	stdDev := 0.0
	if rounds > 1 {
		variance := 0.0
		for _, rt := range reactionTimes {
			diff := avg - float64(rt)
			variance += diff * diff
		}
		variance /= float64(rounds)
		stdDev = math.Sqrt(variance)
	}

	consistency := 0
	if avg > 0 {
		consistency = int(math.Max(0, 100*(1-stdDev/avg)))
	}

	speed := math.Max(0, 100*(1-(avg-150)/500))
	iq := math.Round(baseIQ + speed + float64(consistency)*0.4 + float64(perfects*2))
	if iq > maxIQ {
		iq = maxIQ
	}
	if iq < minIQ {
		iq = minIQ
	}

	return Result{
		AvgReaction: avg,
		IQScore:     int(iq),
		Consistency: consistency,
		Rounds:      rounds,
	}
}

// Prove evaluates the request and attaches a mock proof token.
func Prove(req Request) Response {
	return Response{
		Proof:  fmt.Sprintf("proof_%d", time.Now().UnixMilli()),
		Result: Evaluate(req.ReactionTimes, req.TotalPerfects),
	}
}
