// Package synapse is the miner-validator transport: a fiber server with
// zstd and signature middleware on the miner side, and a signing resty
// client on the validator side.
package synapse

import (
	"github.com/gofiber/fiber/v2"

	"github.com/storynet-labs/storynet/internal/generator"
)

const (
	SignatureHeader = "x-signature"
	HotkeyHeader    = "x-hotkey"
	MessageHeader   = "x-message"

	DefaultServerHost = "0.0.0.0"
	DefaultBodyLimit  = 4 * 1024 * 1024 // 4MB

	GenerateRoute  = "/generate"
	HeartbeatRoute = "/heartbeat"
	HealthRoute    = "/health"
)

// ServerConfig configures the axon server.
type ServerConfig struct {
	Host      string
	Port      int
	BodyLimit int
}

// Server wraps the fiber app serving miner routes.
type Server struct {
	App    *fiber.App
	config *ServerConfig
}

// StdResponse is the envelope every route answers with.
type StdResponse[T any] struct {
	Body  T       `json:"body"`
	Error *string `json:"error,omitempty"`
}

// AuthParams carries the signed identity headers of a request.
type AuthParams struct {
	Hotkey    string `validate:"required,len=48"`
	Message   string `validate:"required,min=1"`
	Signature string `validate:"required,startswith=0x,len=130"`
}

// GenerateRequest asks a miner to produce story content.
type GenerateRequest struct {
	Input generator.GenerationInput `json:"input"`
}

// GenerateResponse returns the generated content with provenance.
type GenerateResponse struct {
	Result generator.GenerationResult `json:"result"`
}

// HeartbeatRequest is a validator liveness probe.
type HeartbeatRequest struct {
	ValidatorHotkey string `json:"validator_hotkey"`
	Timestamp       int64  `json:"timestamp"`
}

// HeartbeatResponse acknowledges a probe.
type HeartbeatResponse struct {
	MinerHotkey string `json:"miner_hotkey"`
	Timestamp   int64  `json:"timestamp"`
}

// HealthResponse reports generator status on the unsigned health route.
type HealthResponse struct {
	Status  string `json:"status"`
	Mode    string `json:"mode"`
	Model   string `json:"model"`
	Healthy bool   `json:"healthy"`
}
