package usecase

import "errors"

var (
	// ErrSubmitInProgress is returned (inside an Ignored result) when a submit is triggered
	// while another one is still validating or in flight.
	ErrSubmitInProgress = errors.New("submission already in progress")

	// ErrFlowFinished is returned (inside an Ignored result) once the flow reached Success.
	ErrFlowFinished = errors.New("submission flow already finished")
)
