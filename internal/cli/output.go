package cli

import (
	"encoding/json"

	"secretary-cli/internal/api"

	"github.com/spf13/cobra"
)

// writeEnvelope passes the backend's data through. fallback is used when the
// server sends no message of its own.
func writeEnvelope(cmd *cobra.Command, app *App, env api.Envelope, fallback string) error {
	data := env.Data
	if len(data) == 0 {
		data = json.RawMessage("null")
	}
	msg := env.Message
	if msg == "" {
		msg = fallback
	}
	return writeOut(cmd, app, map[string]any{"data": data, "message": msg})
}
