package integrations

import (
	"time"

	"github.com/kerbaras/rmwiki/pkg/data"
)

// Guide is the content of a published wiki export.
type Guide struct {
	Characters  []data.Character
	Episodes    []data.Episode
	GeneratedAt time.Time
}

type Publisher interface {
	Publish(guide Guide) (string, error)
}
