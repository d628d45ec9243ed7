// Package source defines where question lists come from.
//
// A Source is push-based: it re-emits the full list whenever the underlying
// data changes. Emissions are compared by value, so a provider that reloads an
// unchanged deck produces no downstream traffic.
package source

import (
	"context"

	"github.com/vk/quizgridgo/internal/model"
)

// Source is an upstream provider of the ordered question list.
type Source interface {
	// Subscribe starts delivering list emissions. A subscriber registered
	// after the first emission immediately receives the latest list. The
	// channel is closed when ctx is cancelled.
	Subscribe(ctx context.Context) (<-chan model.List, error)
}
