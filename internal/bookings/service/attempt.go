package service

import (
	"fmt"

	"sportsclub/pkg/model"
)

var transitions = map[model.AttemptState][]model.AttemptState{
	model.AttemptDraft:     {model.AttemptValidated, model.AttemptRejected},
	model.AttemptValidated: {model.AttemptSubmitted, model.AttemptRejected},
	model.AttemptSubmitted: {model.AttemptConfirmed, model.AttemptRejected},
}

// attempt tracks one booking request from draft to a terminal state.
type attempt struct {
	state model.AttemptState
}

func newAttempt() *attempt {
	return &attempt{state: model.AttemptDraft}
}

func (a *attempt) advance(to model.AttemptState) error {
	for _, next := range transitions[a.state] {
		if next == to {
			a.state = to
			return nil
		}
	}
	return fmt.Errorf("illegal booking attempt transition %s -> %s", a.state, to)
}

// reject moves any non-terminal attempt to rejected and passes err through.
func (a *attempt) reject(err error) error {
	if a.state != model.AttemptConfirmed {
		a.state = model.AttemptRejected
	}
	return err
}
