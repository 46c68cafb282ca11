package ledger

import (
	"context"
	"encoding/json"
	"fmt"
)

// SubmitAck is the reply to a successful SUBMIT_SURVEY.
type SubmitAck struct {
	Status string `json:"status"`
}

// Dispatch decodes a raw endpoint body, routes it by its action field, and
// returns the JSON-ready reply. It lets the service act as its own logging
// endpoint with the same wire contract as the external one.
func Dispatch(ctx context.Context, l Ledger, body []byte) (any, error) {
	var env struct {
		Action Action `json:"action"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}

	switch env.Action {
	case ActionCheckOrRegister:
		var req RegistrationRequest
		if err := json.Unmarshal(body, &req); err != nil {
			return nil, fmt.Errorf("%w: registration: %v", ErrBadPayload, err)
		}
		return l.CheckOrRegister(ctx, req)
	case ActionSubmitSurvey:
		var sub SurveySubmission
		if err := json.Unmarshal(body, &sub); err != nil {
			return nil, fmt.Errorf("%w: submission: %v", ErrBadPayload, err)
		}
		if err := l.SubmitSurvey(ctx, sub); err != nil {
			return nil, err
		}
		return SubmitAck{Status: "ok"}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, env.Action)
	}
}
