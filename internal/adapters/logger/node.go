package logger

import (
	"context"
	"os"
	"strconv"

	"github.com/grindlemire/graft"
	"go.trai.ch/lessbuild/internal/core/domain"
	"go.trai.ch/lessbuild/internal/core/ports"
)

// NodeID is the unique identifier for the logger Graft node.
const NodeID graft.ID = "adapter.logger"

// JSONEnv switches the process logger to JSON output when true.
const JSONEnv = domain.EnvPrefix + "LOG_JSON"

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Logger, error) {
			l := New()
			if on, err := strconv.ParseBool(os.Getenv(JSONEnv)); err == nil {
				l.SetJSON(on)
			}
			return l, nil
		},
	})
}
