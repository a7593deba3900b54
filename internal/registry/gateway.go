// internal/registry/gateway.go
package registry

import (
	"context"
	"errors"
	"net"

	commonerrors "compliance-engine/internal/common/errors"
)

// Record is one raw row returned by a registry, keyed by the registry's own
// field names. Values keep whatever JSON type the registry used.
type Record map[string]interface{}

// Gateway executes a filtered query against one named dataset. Zero matching
// rows yield an empty slice and a nil error; transport and API failures yield
// a typed error so callers can distinguish "nothing there" from "could not
// ask".
type Gateway interface {
	Query(ctx context.Context, datasetKey string, filter Filter, limit, offset int) ([]Record, error)
	Dialect() string
}

// classifyTransportError maps a transport failure onto the error taxonomy,
// separating timeouts from other query failures.
func classifyTransportError(dataset string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return commonerrors.NewGatewayTimeoutError(dataset)
	}
	return commonerrors.NewGatewayQueryFailedError(dataset, err)
}
