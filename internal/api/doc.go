// Package api contains the HTTP handlers, request/response models, and error
// mapping for the schoolforge API. Handlers stay thin: they decode and
// validate input, resolve the authenticated user, delegate authorization to
// the assessments access service, and translate domain errors to safe HTTP
// responses.
package api
