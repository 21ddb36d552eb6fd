package assessments

import "errors"

// Common store and construction errors.
var (
	// ErrAssessmentNotFound is returned when a requested assessment does not
	// exist.
	ErrAssessmentNotFound = errors.New("assessment not found")

	// ErrNilGateway is returned when a service is constructed without a
	// project gateway.
	ErrNilGateway = errors.New("project gateway cannot be nil")
)
