package ipc

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/atelierlabs/atelier-go/internal/server/args"
)

const requestTimeout = 10 * time.Second

// Request is one management command, sent to the socket as a single
// JSON line. The server answers with a single Response line.
type Request struct {
	Command string       `json:"command"`
	Args    []string     `json:"args,omitempty"`
	Open    *OpenRequest `json:"open,omitempty"`
}

// Response is the reply to a Request.
type Response struct {
	OK    bool            `json:"ok"`
	Error string          `json:"error,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// OpenRequest carries the open targets of a delegated invocation.
type OpenRequest struct {
	Folders     []string `json:"folders"`
	Files       []string `json:"files"`
	NewWindow   bool     `json:"newWindow,omitempty"`
	ReuseWindow bool     `json:"reuseWindow,omitempty"`
}

// NewOpenRequest classifies the set's open targets into folders and
// files by what exists on disk; anything unreadable is passed along as
// a file and left for the instance to report.
func NewOpenRequest(set *args.ArgSet) (*OpenRequest, error) {
	req := &OpenRequest{
		Folders:     []string{},
		Files:       []string{},
		NewWindow:   set.NewWindow,
		ReuseWindow: set.ReuseWindow,
	}

	if set.Workspace != "" {
		req.Files = append(req.Files, set.Workspace)
	}
	for _, target := range set.Positional {
		abs, err := filepath.Abs(target)
		if err != nil {
			abs = target
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			req.Folders = append(req.Folders, abs)
		} else {
			req.Files = append(req.Files, abs)
		}
	}

	if req.NewWindow && len(req.Files) > 0 {
		return nil, errors.New("ipc: --new-window can only be used with folder paths")
	}
	if len(req.Folders) == 0 && len(req.Files) == 0 {
		return nil, errors.New("ipc: no file or folder to open")
	}
	return req, nil
}

// Send delivers one request over the socket behind handle and decodes
// the reply.
func Send(handle string, req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", handle, dialTimeout)
	if err != nil {
		return nil, fmt.Errorf("ipc: connect %s: %w", handle, err)
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(requestTimeout))

	if err := json.NewEncoder(conn).Encode(req); err != nil {
		return nil, fmt.Errorf("ipc: send request: %w", err)
	}

	var resp Response
	if err := json.NewDecoder(bufio.NewReader(conn)).Decode(&resp); err != nil {
		return nil, fmt.Errorf("ipc: read response: %w", err)
	}
	return &resp, nil
}
