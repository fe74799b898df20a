//go:build integration
// +build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/fivetwenty-io/webmaster-client/pkg/webmaster"
	"github.com/fivetwenty-io/webmaster-client/pkg/wmclient"
	"github.com/stretchr/testify/require"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	Token   string
	API     string
	YwmPath string
	Verbose bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		Token:   os.Getenv("YWM_TOKEN"),
		API:     os.Getenv("YWM_API"),
		YwmPath: getEnvOrDefault("YWM_BINARY", "../../bin/ywm"),
		Verbose: os.Getenv("VERBOSE") == "true",
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// SkipIfMissingConfig skips test if required config is missing
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.Token == "" {
		t.Skip("YWM_TOKEN not set, skipping integration test")
	}
}

// SkipIfMissingBinary skips test if the ywm binary has not been built
func (config *TestConfig) SkipIfMissingBinary(t *testing.T) {
	t.Helper()
	config.SkipIfMissingConfig(t)

	if _, err := os.Stat(config.YwmPath); os.IsNotExist(err) {
		t.Skipf("ywm binary not found at %s, skipping integration test", config.YwmPath)
	}
}

// NewClient creates a client from YWM_* environment variables
func NewClient(t *testing.T) webmaster.Client {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := wmclient.NewFromEnv(ctx)
	require.NoError(t, err)

	return client
}

// FirstVerifiedHost returns the first verified host of the account or skips the test
func FirstVerifiedHost(t *testing.T, client webmaster.Client) webmaster.HostInfo {
	t.Helper()

	hosts, err := client.Hosts().List(context.Background())
	require.NoError(t, err)

	for _, host := range hosts {
		if host.Verified {
			return host
		}
	}

	t.Skip("account has no verified hosts")

	return webmaster.HostInfo{}
}

// CommandRunner provides utilities for running ywm commands
type CommandRunner struct {
	config *TestConfig
	t      *testing.T
}

// NewCommandRunner creates a new command runner
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	return &CommandRunner{
		config: config,
		t:      t,
	}
}

// Run executes a ywm command and returns output
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	cmd := exec.Command(runner.config.YwmPath, args...)
	cmd.Env = append(os.Environ(), "YWM_TOKEN="+runner.config.Token)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.YwmPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// AssertJSONOutput verifies command output is valid JSON
func AssertJSONOutput(t *testing.T, output string) {
	t.Helper()

	require.True(t, json.Valid([]byte(strings.TrimSpace(output))), "Output is not JSON: %s", output)
}
