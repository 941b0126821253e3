package contracts

import "errors"

var (
	ErrAnalysisNotFound = errors.New("analysis not found")
	ErrEmptyAnalysis    = errors.New("analysis returned no content")
	ErrInvalidAnalysis  = errors.New("analysis is not a JSON object or array")
	ErrNoProvider       = errors.New("no contract analysis provider configured")
)

var ErrForbidden = errors.New("sign in to analyse contracts")
