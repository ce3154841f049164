package srs

import "errors"

// Sentinel errors for the srs package. Check with errors.Is.
var (
	ErrInvalidRating               = errors.New("srs: rating must be between 1 and 5")
	ErrInvalidReviewCount          = errors.New("srs: review count must be at least 1")
	ErrInvalidFrequencyCoefficient = errors.New("srs: frequency coefficient must be between 0.5 and 1.5")
)
