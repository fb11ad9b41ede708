package client

import (
	"context"
	"fmt"
	"log"

	"github.com/emoji-rain/emojirain/internal/game"
	"github.com/emoji-rain/emojirain/internal/prove"
)

// ChainSubmitter accepts a proof token tied to a connected identity. The
// actual chain integration lives behind this interface; it may fail
// independently of proving.
type ChainSubmitter interface {
	Submit(ctx context.Context, wallet, proof string) error
}

// LogSubmitter is the default submitter: it records the submission locally.
type LogSubmitter struct{}

func (LogSubmitter) Submit(ctx context.Context, wallet, proof string) error {
	log.Printf("submitting proof for %s: %s", wallet, proof)
	return nil
}

// ReportOutcome is what the UI shows after a submission attempt. Every path
// produces one; a failed report is a message, never an error escaping into
// the session flow.
type ReportOutcome struct {
	Submitted bool
	Message   string
	Result    *prove.Result
}

// Reporter drives the end-of-session reporting flow: prove, then submit.
type Reporter struct {
	http      *HTTPClient
	submitter ChainSubmitter
	wallet    string
}

// NewReporter creates a reporter. wallet may be empty, in which case every
// report short-circuits with a connect prompt.
func NewReporter(http *HTTPClient, submitter ChainSubmitter, wallet string) *Reporter {
	return &Reporter{http: http, submitter: submitter, wallet: wallet}
}

// Report runs once per ended session. It never returns an error: failures
// at either network call are logged and folded into the outcome message, so
// the caller's restart path is unconditional.
func (r *Reporter) Report(ctx context.Context, summary game.Summary) ReportOutcome {
	if r.wallet == "" {
		return ReportOutcome{Message: "Connect wallet to submit score."}
	}

	resp, err := r.http.ProveScore(summary.ReactionTimes, summary.Perfects)
	if err != nil {
		log.Printf("prove failed: %v", err)
		return ReportOutcome{Message: "Failed to submit score: proving service unavailable."}
	}

	if err := r.submitter.Submit(ctx, r.wallet, resp.Proof); err != nil {
		log.Printf("chain submission failed: %v", err)
		return ReportOutcome{
			Message: "Proof generated, but chain submission failed.",
			Result:  &resp.Result,
		}
	}

	return ReportOutcome{
		Submitted: true,
		Message: fmt.Sprintf("Score verified and submitted! IQ %d, consistency %d%%.",
			resp.Result.IQScore, resp.Result.Consistency),
		Result: &resp.Result,
	}
}
