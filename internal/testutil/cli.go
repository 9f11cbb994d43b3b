package testutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
)

// The binary is built once per test process.
var (
	buildOnce sync.Once
	builtPath string
	buildErr  error
)

// CLIResult is the parsed JSON envelope of one zk invocation.
type CLIResult struct {
	OK       bool                   `json:"ok"`
	Data     map[string]interface{} `json:"data"`
	Error    *CLIError              `json:"error"`
	Warnings []CLIWarning           `json:"warnings"`
	Meta     struct {
		Count int `json:"count"`
	} `json:"meta"`

	RawJSON  string `json:"-"`
	ExitCode int    `json:"-"`
}

// CLIError is the error object of the envelope.
type CLIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion"`
}

// CLIWarning is one warning of the envelope.
type CLIWarning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BuildCLI compiles ./cmd/zk into a temporary directory and returns the
// binary path.
func BuildCLI(t *testing.T) string {
	t.Helper()
	buildOnce.Do(func() {
		builtPath, buildErr = build()
	})
	if buildErr != nil {
		t.Fatalf("build zk: %v", buildErr)
	}
	return builtPath
}

func build() (string, error) {
	root, err := moduleRoot()
	if err != nil {
		return "", err
	}
	dir, err := os.MkdirTemp("", "zk-bin-*")
	if err != nil {
		return "", err
	}
	name := "zk"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	out := filepath.Join(dir, name)

	cmd := exec.Command("go", "build", "-o", out, "./cmd/zk")
	cmd.Dir = root
	if msg, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("%w\n%s", err, msg)
	}
	return out, nil
}

// moduleRoot walks up from the working directory to the go.mod.
func moduleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("go.mod not found above working directory")
		}
		dir = parent
	}
}

// RunCLI runs zk against the vault with --json and parses the envelope. The
// user's config file, ZK_* variables and editor are kept out of the run.
func (v *TestVault) RunCLI(args ...string) *CLIResult {
	v.t.Helper()

	cmd := exec.Command(BuildCLI(v.t), append([]string{"--path", v.Path, "--json"}, args...)...)
	cmd.Dir = v.Path
	cmd.Stdin = strings.NewReader("")
	cmd.Env = append(isolatedEnv(),
		"ZK_CONFIG="+filepath.Join(v.t.TempDir(), "config.toml"),
		"EDITOR=true",
	)
	out, err := cmd.Output()

	r := &CLIResult{}
	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		r.ExitCode = exitErr.ExitCode()
	default:
		r.ExitCode = -1
	}

	if jsonErr := json.Unmarshal(out, r); jsonErr != nil {
		r.OK = false
		r.Error = &CLIError{Code: "PARSE_ERROR", Message: jsonErr.Error()}
	}
	r.RawJSON = string(out)
	return r
}

func isolatedEnv() []string {
	var env []string
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "ZK_") || strings.HasPrefix(kv, "EDITOR=") {
			continue
		}
		env = append(env, kv)
	}
	return env
}

// MustSucceed fails the test unless the envelope reports success.
func (r *CLIResult) MustSucceed(t *testing.T) *CLIResult {
	t.Helper()
	if !r.OK {
		msg := "no error object"
		if r.Error != nil {
			msg = r.Error.Code + ": " + r.Error.Message
		}
		t.Fatalf("command failed (exit %d): %s\n%s", r.ExitCode, msg, r.RawJSON)
	}
	return r
}

// MustFail fails the test unless the envelope reports the error code.
func (r *CLIResult) MustFail(t *testing.T, code string) *CLIResult {
	t.Helper()
	switch {
	case r.OK:
		t.Fatalf("command succeeded, want %s\n%s", code, r.RawJSON)
	case r.Error == nil:
		t.Fatalf("no error object, want %s\n%s", code, r.RawJSON)
	case r.Error.Code != code:
		t.Fatalf("error %s (%s), want %s", r.Error.Code, r.Error.Message, code)
	}
	return r
}

// DataList returns data[key] as a list, or nil.
func (r *CLIResult) DataList(key string) []interface{} {
	list, _ := r.Data[key].([]interface{})
	return list
}

// DataString returns data[key] as a string, or "".
func (r *CLIResult) DataString(key string) string {
	s, _ := r.Data[key].(string)
	return s
}
