// File: internal/services/vision/interface.go

// Package vision classifies an uploaded image into one of the known
// location labels.
package vision

import "context"

// Classifier maps raw image bytes to a location label. Handlers depend on
// this interface only, so a real model can replace the random stub without
// touching request logic.
type Classifier interface {
	Classify(ctx context.Context, image []byte) (string, error)
}
