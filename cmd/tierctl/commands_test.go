package main

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
)

func TestDetectCommand(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantErr     bool
		wantContain []string
		wantJSON    bool
	}{
		{
			name:        "mem default",
			args:        []string{"detect"},
			wantContain: []string{"Banks: 16 of 256", "1.0 MB", "1,048,576 bytes"},
		},
		{
			name:        "mem full range",
			args:        []string{"detect", "--banks", "256"},
			wantContain: []string{"Banks: 256 of 256"},
		},
		{
			name:        "json",
			args:        []string{"detect", "--banks", "3", "--json"},
			wantContain: []string{`"banks": 3`, `"bytes": 196608`},
			wantJSON:    true,
		},
		{
			name:    "mem without banks",
			args:    []string{"detect", "--banks", "0"},
			wantErr: true,
		},
		{
			name:    "mmap without path",
			args:    []string{"detect", "--backend", "mmap"},
			wantErr: true,
		},
		{
			name:    "unknown backend",
			args:    []string{"detect", "--backend", "floppy"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := runCommand(t, tt.args...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if tt.wantJSON {
				assertJSON(t, output)
			}
			assertContains(t, output, tt.wantContain)
		})
	}
}

func TestDetectCommand_FileBackends(t *testing.T) {
	for _, b := range []string{backendMmap, backendLevelDB} {
		t.Run(b, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tier")
			output, err := runCommand(t, "detect", "--backend", b, "--path", path, "--banks", "2", "--json")
			if err != nil {
				t.Fatalf("detect: %v", err)
			}
			var res detectResult
			if err := json.Unmarshal([]byte(output), &res); err != nil {
				t.Fatalf("bad JSON: %v\n%s", err, output)
			}
			if res.Banks != 2 || res.Backend != b {
				t.Errorf("got %+v", res)
			}

			// Reopening adopts the existing size.
			output, err = runCommand(t, "detect", "--backend", b, "--path", path, "--banks", "0")
			if err != nil {
				t.Fatalf("reopen: %v", err)
			}
			assertContains(t, output, []string{"Banks: 2 of 256"})
		})
	}
}

func TestClearCommand(t *testing.T) {
	output, err := runCommand(t, "clear", "--banks", "4", "--json")
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	var res clearResult
	if err := json.Unmarshal([]byte(output), &res); err != nil {
		t.Fatalf("bad JSON: %v\n%s", err, output)
	}
	if res.Banks != 4 || res.Transfers != 4 || res.Bytes != 4*65536 {
		t.Errorf("got %+v", res)
	}

	output, err = runCommand(t, "clear", "--banks", "4", "--count", "2")
	if err != nil {
		t.Fatalf("clear --count: %v", err)
	}
	assertContains(t, output, []string{"Cleared 2 banks", "128.0 KB", "2 transfers"})

	if _, err := runCommand(t, "clear", "--banks", "4", "--count", "300"); err == nil {
		t.Error("expected error clearing more banks than the address space holds")
	}
}

func TestSelftestCommand(t *testing.T) {
	for _, b := range []string{backendMem, backendMmap, backendLevelDB} {
		t.Run(b, func(t *testing.T) {
			args := []string{"selftest", "--backend", b, "--banks", "1", "--json"}
			if b != backendMem {
				args = append(args, "--path", filepath.Join(t.TempDir(), "tier"))
			}
			output, err := runCommand(t, args...)
			if err != nil {
				t.Fatalf("selftest: %v\n%s", err, output)
			}
			var results []checkResult
			if err := json.Unmarshal([]byte(output), &results); err != nil {
				t.Fatalf("bad JSON: %v\n%s", err, output)
			}
			if len(results) != len(checks) {
				t.Fatalf("got %d results, want %d", len(results), len(checks))
			}
			for _, r := range results {
				if !r.Passed || r.Transfers == 0 {
					t.Errorf("%s: %+v", r.Name, r)
				}
			}
		})
	}
}

func TestSelftestCommand_Text(t *testing.T) {
	output, err := runCommand(t, "selftest")
	if err != nil {
		t.Fatalf("selftest: %v", err)
	}
	assertContains(t, output, []string{"Self-test (mem)", "✓ queue-wraparound", "✓ set-tombstone-reuse"})
}

func TestBenchCommand(t *testing.T) {
	output, err := runCommand(t, "bench", "--ops", "500", "--json")
	if err != nil {
		t.Fatalf("bench: %v", err)
	}
	var results []benchResult
	if err := json.Unmarshal([]byte(output), &results); err != nil {
		t.Fatalf("bad JSON: %v\n%s", err, output)
	}
	if len(results) != 4 {
		t.Fatalf("got %d workloads", len(results))
	}
	for _, r := range results {
		if r.Ops != 500 || r.TransfersPer < 1 {
			t.Errorf("%s: %+v", r.Workload, r)
		}
	}

	if _, err := runCommand(t, "bench", "--banks", "1", "--ops", "100000"); err == nil {
		t.Error("expected error for a workload larger than the tier")
	}
	if _, err := runCommand(t, "bench", "--ops", "0"); err == nil {
		t.Error("expected error for zero ops")
	}
}

func TestVersionFlagAndLogging(t *testing.T) {
	if _, err := runCommand(t, "detect", "--log-level", "loud"); err == nil {
		t.Error("expected error for unknown log level")
	}
	if _, err := runCommand(t, "detect", "--quiet", "--log-level", "debug"); err != nil {
		t.Errorf("detect with logging: %v", err)
	}
}

func TestVersionCommand(t *testing.T) {
	output, err := runCommand(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	assertContains(t, output, []string{"tierctl dev", "commit: none", "tier: 256 banks of 65,536 bytes"})

	output, err = runCommand(t, "version", "--json")
	if err != nil {
		t.Fatalf("version --json: %v", err)
	}
	var info versionInfo
	if err := json.Unmarshal([]byte(output), &info); err != nil {
		t.Fatalf("invalid JSON output: %v\nOutput: %s", err, output)
	}
	if info.AddrSpace != 1<<24 || info.BankSize != 1<<16 || info.Version != "dev" {
		t.Errorf("version info = %+v", info)
	}
}

func TestSessionCloseInto(t *testing.T) {
	errClose := errors.New("msync failed")
	errRun := errors.New("detect failed")

	tests := []struct {
		name    string
		runErr  error
		close   func() error
		wantErr error
	}{
		{name: "clean", close: func() error { return nil }},
		{name: "no closer"},
		{name: "close error surfaces", close: func() error { return errClose }, wantErr: errClose},
		{name: "command error wins", runErr: errRun, close: func() error { return errClose }, wantErr: errRun},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			closed := false
			s := &session{}
			if tt.close != nil {
				s.close = func() error {
					closed = true
					return tt.close()
				}
			}

			err := tt.runErr
			s.closeInto(&err)
			if tt.close != nil && !closed {
				t.Error("store not closed")
			}
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("err = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
