package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"github.com/collabintel/ci/cmd/ci/cmd"
)

func TestMain(m *testing.M) {
	testscript.Main(m, map[string]func(){
		"ci": func() {
			if err := cmd.Execute(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		},
	})
}

func TestScript(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir:                 filepath.Join("testdata", "script"),
		RequireExplicitExec: true,
		Setup: func(e *testscript.Env) error {
			// Set HOME to WORK so ~/.ci/ and the conventional knowledge base
			// locations are inside the temp dir.
			e.Vars = append(e.Vars, "HOME="+e.WorkDir)
			return nil
		},
		Cmds: map[string]func(ts *testscript.TestScript, neg bool, args []string){
			// file-contains asserts that a file contains (or doesn't contain) a substring.
			// Usage: [!] file-contains <path> <substring>
			"file-contains": cmdFileContains,

			// setup-fake-assistant writes an executable shell script to
			// $WORK/bin/<binary> that prints its arguments and the CI_*
			// environment, one per line.
			// Usage: setup-fake-assistant <binary>
			"setup-fake-assistant": cmdSetupFakeAssistant,
		},
	})
}

// cmdFileContains checks if a file contains a substring.
func cmdFileContains(ts *testscript.TestScript, neg bool, args []string) {
	if len(args) < 2 {
		ts.Fatalf("usage: file-contains <path> <substring>")
	}
	path := ts.MkAbs(args[0])
	substr := args[1]

	data, err := os.ReadFile(path)
	if err != nil {
		ts.Fatalf("reading %s: %v", args[0], err)
	}

	contains := strings.Contains(string(data), substr)
	if neg {
		if contains {
			ts.Fatalf("file %s contains %q (expected not to)", args[0], substr)
		}
	} else {
		if !contains {
			ts.Fatalf("file %s does not contain %q\nContent:\n%s", args[0], substr, string(data))
		}
	}
}

const fakeAssistant = `#!/bin/sh
for a in "$@"; do
  echo "arg: $a"
done
echo "env: CI_AGENT_CONTEXT=$CI_AGENT_CONTEXT"
echo "env: CI_AGENT_NAME=$CI_AGENT_NAME"
echo "env: CI_SESSION_ID=$CI_SESSION_ID"
echo "env: CI_KNOWLEDGE_BASE=$CI_KNOWLEDGE_BASE"
echo "env: CI_PROJECT_NAME=$CI_PROJECT_NAME"
echo "env: GOOSE_MODE=$GOOSE_MODE"
`

// cmdSetupFakeAssistant installs a stand-in assistant binary.
func cmdSetupFakeAssistant(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("unsupported: ! setup-fake-assistant")
	}
	if len(args) != 1 {
		ts.Fatalf("usage: setup-fake-assistant <binary>")
	}

	dir := ts.MkAbs("bin")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		ts.Fatalf("creating %s: %v", dir, err)
	}
	path := filepath.Join(dir, args[0])
	if err := os.WriteFile(path, []byte(fakeAssistant), 0o755); err != nil {
		ts.Fatalf("writing %s: %v", path, err)
	}
}
