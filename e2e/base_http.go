package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gookit/color"
	"github.com/stretchr/testify/suite"
)

type BaseHTTPSuite struct {
	suite.Suite
	Config Config
	client *http.Client
}

// SetupSuite loads the environment configuration before running tests
func (s *BaseHTTPSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	s.client = &http.Client{Timeout: 30 * time.Second}

	// Quick reachability probe so a missing server skips instead of
	// failing every step with connection errors.
	resp, err := s.client.Get(s.Config.ServerAddr + "/health")
	if err != nil {
		s.T().Skipf("Server unreachable at %s: %v", s.Config.ServerAddr, err)
	}
	_ = resp.Body.Close()
}

// StepHeader prints a colorized header for the test step in logs
func (s *BaseHTTPSuite) StepHeader(name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)
}

// Call sends one JSON request and decodes the JSON response into out
// (when out is non-nil), logging method, path, status, and latency.
func (s *BaseHTTPSuite) Call(method, path string, body any, token string, out any) int {
	var reader io.Reader
	var requestJSON []byte
	if body != nil {
		var err error
		requestJSON, err = json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(requestJSON)
	}

	req, err := http.NewRequest(method, s.Config.ServerAddr+path, reader)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	s.Require().NoError(err, "Failed to reach server at "+s.Config.ServerAddr)
	defer resp.Body.Close()

	responseJSON, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)

	logBuilder := strings.Builder{}
	fmt.Fprintf(&logBuilder, "HTTP %s %s [%d] in %v", method, path, resp.StatusCode, time.Since(start))

	// Log full JSON request/response bodies if E2E_DEBUG_JSON is enabled
	if s.Config.DebugJSON {
		fmt.Fprintln(&logBuilder, "\nREQUEST:")
		fmt.Fprintln(&logBuilder, string(requestJSON))
		fmt.Fprintln(&logBuilder, "RESPONSE:")
		fmt.Fprintln(&logBuilder, string(responseJSON))
	}
	s.T().Log(logBuilder.String())

	if out != nil && len(responseJSON) > 0 {
		s.Require().NoError(json.Unmarshal(responseJSON, out),
			"Failed to decode response of %s %s", method, path)
	}
	return resp.StatusCode
}
