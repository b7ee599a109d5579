package main

import (
	"context"
	"testing"
)

func TestRunCommand(t *testing.T) {
	tests := []struct {
		name           string
		traces         []string
		chunk          int
		verify         bool
		wantErr        bool
		wantContain    []string
		wantNotContain []string
		wantJSON       bool
	}{
		{
			name:        "single trace",
			traces:      []string{"short1.rep"},
			wantContain: []string{"trace", "util", "short1.rep"},
			// No summary for a single trace
			wantNotContain: []string{"total"},
		},
		{
			name:        "two traces with summary",
			traces:      []string{"short1.rep", "realloc.rep"},
			verify:      true,
			wantContain: []string{"short1.rep", "realloc.rep", "total (2)"},
		},
		{
			name:        "small chunks",
			traces:      []string{"short1.rep"},
			chunk:       64,
			wantContain: []string{"short1.rep"},
		},
		{
			name:        "json",
			traces:      []string{"realloc.rep"},
			wantJSON:    true,
			wantContain: []string{`"trace": "realloc.rep"`, `"utilization"`, `"realloc_moved"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			jsonOut = tt.wantJSON
			runVerify = tt.verify
			if tt.chunk > 0 {
				chunkSize = tt.chunk
			}

			var args []string
			for _, name := range tt.traces {
				args = append(args, testTracePath(t, name))
			}

			output, err := captureOutput(t, func() error {
				return runRun(context.Background(), args)
			})

			if (err != nil) != tt.wantErr {
				t.Errorf("runRun() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if tt.wantJSON {
				assertJSON(t, output)
			}

			assertContains(t, output, tt.wantContain)
			assertNotContains(t, output, tt.wantNotContain)
		})
	}
}

func TestRunCommand_OutOfMemory(t *testing.T) {
	resetFlags()
	limit = 1024

	_, err := captureOutput(t, func() error {
		return runRun(context.Background(), []string{testTracePath(t, "short1.rep")})
	})
	if err == nil {
		t.Fatal("expected out of memory error")
	}
	assertContains(t, err.Error(), []string{"out of memory", "op 0"})
}

func TestRunCommand_Quiet(t *testing.T) {
	resetFlags()
	quiet = true

	output, err := captureOutput(t, func() error {
		return runRun(context.Background(), []string{testTracePath(t, "short1.rep")})
	})
	if err != nil {
		t.Fatalf("runRun() error = %v", err)
	}
	if output != "" {
		t.Errorf("expected no output in quiet mode, got %q", output)
	}
}

func TestRunCommand_Mapped(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping mapped arena in short mode")
	}
	resetFlags()
	mapped = true
	limit = 1 << 20

	output, err := captureOutput(t, func() error {
		return runRun(context.Background(), []string{testTracePath(t, "realloc.rep")})
	})
	if err != nil {
		t.Fatalf("runRun() error = %v", err)
	}
	assertContains(t, output, []string{"realloc.rep"})
}
