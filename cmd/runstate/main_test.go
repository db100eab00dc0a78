// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirseerhq/runstate/internal/config"
	rserrors "github.com/sirseerhq/runstate/internal/errors"
	"github.com/sirseerhq/runstate/internal/state"
)

const defaultStateFile = "runs: 0\nlast_run: 0\nlast_duration: 0\nlast_version: 0.0.0\nlast_command\n"

// isolate runs the test from an empty working and home directory so no
// configuration from the machine leaks in.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", dir)
	for _, name := range []string{
		config.EnvStatePath, config.EnvLogLevel, config.EnvLogFormat,
		config.EnvLocale, config.EnvGranularity, config.EnvTranslate,
	} {
		t.Setenv(name, "")
	}
	return dir
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(append([]string{"--no-color"}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func readState(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read state file: %v", err)
	}
	return string(data)
}

func TestMapErrorToExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{
			name:     "nil error",
			err:      nil,
			wantCode: 0,
		},
		{
			name:     "general error",
			err:      os.ErrClosed,
			wantCode: 1,
		},
		{
			name:     "invalid argument",
			err:      fmt.Errorf("bad flag: %w", rserrors.ErrInvalidArgument),
			wantCode: 2,
		},
		{
			name:     "invalid config",
			err:      fmt.Errorf("load: %w", rserrors.ErrInvalidConfig),
			wantCode: 2,
		},
		{
			name:     "invalid schema",
			err:      rserrors.ErrInvalidSchema,
			wantCode: 2,
		},
		{
			name:     "no data",
			err:      fmt.Errorf("show: %w", rserrors.ErrNoData),
			wantCode: 3,
		},
		{
			name:     "storage",
			err:      fmt.Errorf("write: %w", rserrors.ErrStorage),
			wantCode: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapErrorToExitCode(tt.err)
			if got != tt.wantCode {
				t.Errorf("mapErrorToExitCode(%v) = %d, want %d", tt.err, got, tt.wantCode)
			}
		})
	}
}

func TestRun_Check(t *testing.T) {
	dir := isolate(t)
	statePath := filepath.Join(dir, "state")

	code, stdout, stderr := runCLI(t, "--state", statePath, "check")
	if code != 0 {
		t.Fatalf("check exit code = %d, stderr: %s", code, stderr)
	}
	if want := "created " + statePath + " (created from defaults)\n"; stdout != want {
		t.Errorf("check output = %q, want %q", stdout, want)
	}
	if got := readState(t, statePath); got != defaultStateFile {
		t.Errorf("state file = %q, want %q", got, defaultStateFile)
	}

	_, stdout, _ = runCLI(t, "--state", statePath, "check")
	if !strings.HasPrefix(stdout, "ok ") {
		t.Errorf("second check output = %q, want ok", stdout)
	}
}

func TestRun_CheckRepairs(t *testing.T) {
	dir := isolate(t)
	statePath := filepath.Join(dir, "state")
	content := "# edited by hand\nlast_command: make\nruns: 2\ngarbage line\n"
	if err := os.WriteFile(statePath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	code, stdout, stderr := runCLI(t, "--state", statePath, "check", "--format", "ndjson")
	if code != 0 {
		t.Fatalf("check exit code = %d, stderr: %s", code, stderr)
	}

	var report state.Report
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("check output is not JSON: %v: %q", err, stdout)
	}
	if report.Path != statePath {
		t.Errorf("report.Path = %q, want %q", report.Path, statePath)
	}
	if !report.Rewritten || report.Created {
		t.Errorf("report = %+v, want rewritten and not created", report)
	}

	got := readState(t, statePath)
	if !strings.HasPrefix(got, "# edited by hand\nruns: 2\n") {
		t.Errorf("repaired file = %q", got)
	}
	if strings.Contains(got, "garbage") {
		t.Errorf("repaired file kept a malformed line: %q", got)
	}
}

func TestRun_SetAndShow(t *testing.T) {
	dir := isolate(t)
	statePath := filepath.Join(dir, "state")

	code, stdout, stderr := runCLI(t, "--state", statePath, "set", "runs=5", "last_command=make test")
	if code != 0 {
		t.Fatalf("set exit code = %d, stderr: %s", code, stderr)
	}
	if want := "updated " + statePath + "\n"; stdout != want {
		t.Errorf("set output = %q, want %q", stdout, want)
	}

	_, stdout, _ = runCLI(t, "--state", statePath, "set", "runs=5")
	if !strings.HasPrefix(stdout, "unchanged ") {
		t.Errorf("repeated set output = %q, want unchanged", stdout)
	}

	_, stdout, _ = runCLI(t, "--state", statePath, "show", "last_command", "runs")
	if want := "runs: 5\nlast_command: make test\n"; stdout != want {
		t.Errorf("show output = %q, want %q", stdout, want)
	}

	_, stdout, _ = runCLI(t, "--state", statePath, "show", "--format", "ndjson", "runs")
	var rec struct {
		Name    string `json:"name"`
		Kind    string `json:"kind"`
		Value   any    `json:"value"`
		Default bool   `json:"default"`
	}
	if err := json.Unmarshal([]byte(stdout), &rec); err != nil {
		t.Fatalf("show output is not JSON: %v: %q", err, stdout)
	}
	if rec.Name != "runs" || rec.Kind != "int" || rec.Value != float64(5) || rec.Default {
		t.Errorf("show record = %+v", rec)
	}
}

func TestRun_ShowToFile(t *testing.T) {
	dir := isolate(t)
	statePath := filepath.Join(dir, "state")

	tests := []struct {
		format    string
		wantFirst string
	}{
		{"text", "runs: 0"},
		{"ndjson", `{"name":"runs","kind":"int","value":0,"default":true}`},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			outPath := filepath.Join(dir, "values."+tt.format)

			code, stdout, stderr := runCLI(t, "--state", statePath, "show", "--format", tt.format, "--output", outPath)
			if code != 0 {
				t.Fatalf("show exit code = %d, stderr: %s", code, stderr)
			}
			if stdout != "" {
				t.Errorf("show wrote to stdout with --output: %q", stdout)
			}

			data, err := os.ReadFile(outPath)
			if err != nil {
				t.Fatal(err)
			}
			lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
			if len(lines) != 5 {
				t.Errorf("output file has %d lines, want 5", len(lines))
			}
			if lines[0] != tt.wantFirst {
				t.Errorf("first line = %q, want %q", lines[0], tt.wantFirst)
			}
		})
	}

	if got := readState(t, statePath); got != defaultStateFile {
		t.Errorf("state file = %q, want %q", got, defaultStateFile)
	}
}

func TestRun_ShowToFileRejectsUnknownFormat(t *testing.T) {
	dir := isolate(t)
	outPath := filepath.Join(dir, "values.csv")

	code, _, stderr := runCLI(t, "--state", filepath.Join(dir, "state"), "show", "--format", "csv", "--output", outPath)
	if code != 2 {
		t.Errorf("exit code = %d, want 2 (stderr: %s)", code, stderr)
	}
	if _, err := os.Stat(outPath); !os.IsNotExist(err) {
		t.Errorf("output file was created for an unknown format")
	}
}

func TestRun_Errors(t *testing.T) {
	dir := isolate(t)
	statePath := filepath.Join(dir, "state")
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantErr  string
	}{
		{"set wrong kind", []string{"--state", statePath, "set", "runs=abc"}, 2, "not a valid int"},
		{"set unknown option", []string{"--state", statePath, "set", "nope=1"}, 2, "unknown option"},
		{"set without equals", []string{"--state", statePath, "set", "runs"}, 2, "expected <option>=<value>"},
		{"set without arguments", []string{"--state", statePath, "set"}, 2, "requires at least 1 arg"},
		{"unknown flag", []string{"--state", statePath, "check", "--bogus"}, 2, "unknown flag"},
		{"extra argument", []string{"--state", statePath, "check", "extra"}, 2, "accepts 0 arg"},
		{"show missing option", []string{"--state", statePath, "show", "missing"}, 3, ""},
		{"humanize non-integer", []string{"humanize", "soon"}, 2, "seconds must be an integer"},
		{"humanize bad locale", []string{"humanize", "-t", "--locale", "!!", "60"}, 2, "locale"},
		{"record negative duration", []string{"--state", statePath, "record", "--duration", "-1"}, 2, "must not be negative"},
		{"record bad version", []string{"--state", statePath, "record", "--app-version", "beta"}, 2, "not a valid version"},
		{"unwritable state", []string{"--state", filepath.Join(blocker, "state"), "check"}, 4, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, tt.args...)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, tt.wantCode, stderr)
			}
			if !strings.Contains(stderr, "Error:") {
				t.Errorf("stderr = %q, want an error message", stderr)
			}
			if tt.wantErr != "" && !strings.Contains(stderr, tt.wantErr) {
				t.Errorf("stderr = %q, want it to contain %q", stderr, tt.wantErr)
			}
		})
	}
}

func TestRun_Humanize(t *testing.T) {
	isolate(t)

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"3661"}, "1 hour"},
		{[]string{"90000"}, "1 day and 1 hour"},
		{[]string{"30"}, "less than a minute"},
		{[]string{"--", "-5"}, "any time now"},
		{[]string{"--exact", "90061"}, "1 day and 1 hour"},
		{[]string{"-g", "3", "--exact", "90061"}, "1 day, 1 hour and 1 minute"},
		{[]string{"--translate", "--locale", "de", "90000"}, "1 Tag und 1 Stunde"},
		{[]string{"--locale", "de", "90000"}, "1 day and 1 hour"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			code, stdout, stderr := runCLI(t, append([]string{"humanize"}, tt.args...)...)
			if code != 0 {
				t.Fatalf("exit code = %d, stderr: %s", code, stderr)
			}
			if got := strings.TrimSuffix(stdout, "\n"); got != tt.want {
				t.Errorf("humanize %v = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}

func TestRun_Reset(t *testing.T) {
	dir := isolate(t)
	statePath := filepath.Join(dir, "state")
	if err := os.WriteFile(statePath, []byte("# old notes\nruns: 40\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	code, stdout, stderr := runCLI(t, "--state", statePath, "reset")
	if code != 0 {
		t.Fatalf("reset exit code = %d, stderr: %s", code, stderr)
	}
	if want := "reset " + statePath + " (5 options)\n"; stdout != want {
		t.Errorf("reset output = %q, want %q", stdout, want)
	}
	if got := readState(t, statePath); got != defaultStateFile {
		t.Errorf("state file = %q, want %q", got, defaultStateFile)
	}
}

func TestRun_RecordAndStatus(t *testing.T) {
	dir := isolate(t)
	statePath := filepath.Join(dir, "state")

	_, stdout, _ := runCLI(t, "--state", statePath, "status")
	if !strings.Contains(stdout, "never") {
		t.Errorf("status before any run = %q, want never", stdout)
	}

	for i := 1; i <= 2; i++ {
		code, _, stderr := runCLI(t, "--state", statePath, "record", "--duration", "42", "--app-version", "1.2.0")
		if code != 0 {
			t.Fatalf("record exit code = %d, stderr: %s", code, stderr)
		}
		if want := fmt.Sprintf("Recorded run %d (less than a minute)", i); !strings.Contains(stderr, want) {
			t.Errorf("record stderr = %q, want %q", stderr, want)
		}
	}

	_, stdout, _ = runCLI(t, "--state", statePath, "show", "runs", "last_duration", "last_version")
	if want := "runs: 2\nlast_duration: 42\nlast_version: 1.2.0\n"; stdout != want {
		t.Errorf("show after record = %q, want %q", stdout, want)
	}

	code, stdout, stderr := runCLI(t, "--state", statePath, "status")
	if code != 0 {
		t.Fatalf("status exit code = %d, stderr: %s", code, stderr)
	}
	for _, want := range []string{"runs:", "2", "took:", "less than a minute", "version:", "1.2.0"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("status output = %q, want it to contain %q", stdout, want)
		}
	}
}

func TestRun_ConfigFileSchema(t *testing.T) {
	dir := isolate(t)
	statePath := filepath.Join(dir, "builds.state")
	cfg := fmt.Sprintf(`state:
  path: %q
  options:
    - name: builds
      kind: int
      default: "7"
    - name: channel
      default: stable
display:
  granularity: 1
`, statePath)
	if err := os.WriteFile(filepath.Join(dir, ".runstate.yaml"), []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	code, _, stderr := runCLI(t, "check")
	if code != 0 {
		t.Fatalf("check exit code = %d, stderr: %s", code, stderr)
	}
	if got, want := readState(t, statePath), "builds: 7\nchannel: stable\n"; got != want {
		t.Errorf("state file = %q, want %q", got, want)
	}

	_, stdout, _ := runCLI(t, "humanize", "90000")
	if got := strings.TrimSpace(stdout); got != "1 day" {
		t.Errorf("humanize with granularity 1 = %q, want 1 day", got)
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	dir := isolate(t)

	tests := []struct {
		name    string
		content string
	}{
		{"malformed yaml", "state: [\n"},
		{"unknown kind", "state:\n  options:\n    - name: ratio\n      kind: float\n"},
		{"granularity out of range", "display:\n  granularity: 9\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			code, _, stderr := runCLI(t, "--config", path, "check")
			if code != 2 {
				t.Errorf("exit code = %d, want 2 (stderr: %s)", code, stderr)
			}
		})
	}
}

func TestParseAssignments(t *testing.T) {
	updates, err := parseAssignments([]string{"runs=3", "last_command=a=b", "runs=4", "last_version="})
	if err != nil {
		t.Fatalf("parseAssignments() error = %v", err)
	}

	want := []state.Update{
		state.Set("runs", "4"),
		state.Set("last_command", "a=b"),
		state.Set("last_version", ""),
	}
	if len(updates) != len(want) {
		t.Fatalf("parseAssignments() returned %d updates, want %d", len(updates), len(want))
	}
	for i := range want {
		if updates[i] != want[i] {
			t.Errorf("update %d = %+v, want %+v", i, updates[i], want[i])
		}
	}

	for _, bad := range [][]string{{"runs"}, {"=3"}, {" =3"}} {
		if _, err := parseAssignments(bad); !errors.Is(err, rserrors.ErrInvalidArgument) {
			t.Errorf("parseAssignments(%q) error = %v, want ErrInvalidArgument", bad, err)
		}
	}
}

func TestCheckUpdates(t *testing.T) {
	schema, err := config.DefaultConfig().Schema()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		update  state.Update
		wantErr bool
	}{
		{"integer", state.Set("runs", "12"), false},
		{"version", state.Set("last_version", "2.1"), false},
		{"free text", state.Set("last_command", "go test ./..."), false},
		{"empty text", state.Set("last_command", ""), false},
		{"not an integer", state.Set("runs", "twelve"), true},
		{"not a version", state.Set("last_version", "v2"), true},
		{"line break", state.Set("last_command", "a\nb"), true},
		{"unknown option", state.Set("colour", "red"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkUpdates(schema, []state.Update{tt.update})
			if (err != nil) != tt.wantErr {
				t.Errorf("checkUpdates(%+v) error = %v, wantErr %v", tt.update, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, rserrors.ErrInvalidArgument) {
				t.Errorf("checkUpdates(%+v) error = %v, want ErrInvalidArgument", tt.update, err)
			}
		})
	}
}
