package client

import (
	"encoding/json"

	"catalogadmin/internal/types"
)

type listEnvelope struct {
	Data json.RawMessage `json:"data"`
	Meta *types.PageMeta `json:"meta"`
}

type HealthResponse struct {
	OK      bool   `json:"ok"`
	Version string `json:"version,omitempty"`
}
