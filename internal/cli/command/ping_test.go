package command

import (
	"testing"
)

func TestPingCommand(t *testing.T) {
	srv := envelopeServer(t, "GET /healthz", 200, map[string]string{
		"status": "alive",
	})

	if err := runApp(t, "--server", srv.URL, "ping"); err != nil {
		t.Errorf("ping error = %v", err)
	}
}

func TestPingCommand_ServerDown(t *testing.T) {
	err := runApp(t, "--server", "http://127.0.0.1:1", "ping")
	if err == nil {
		t.Error("expected error for unreachable server")
	}
}

func TestPingCommand_ErrorStatus(t *testing.T) {
	srv := envelopeServer(t, "GET /healthz", 500, nil)

	err := runApp(t, "--server", srv.URL, "ping")
	if err == nil {
		t.Error("expected error for 500 response")
	}
}
