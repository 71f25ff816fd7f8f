// File: internal/services/vision/random_classifier.go
package vision

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/tunegen/tunegen/internal/services/tags"
)

// RandomClassifier is the placeholder for a real vision model: it ignores
// the image content entirely and picks a location label uniformly at random.
type RandomClassifier struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewRandomClassifier() *RandomClassifier {
	return &RandomClassifier{
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *RandomClassifier) Classify(ctx context.Context, image []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	locations := tags.Locations()
	if len(locations) == 0 {
		return "", errors.New("no location labels configured")
	}

	// rand.Rand is not safe for concurrent use.
	c.mu.Lock()
	label := locations[c.rnd.Intn(len(locations))]
	c.mu.Unlock()
	return label, nil
}
