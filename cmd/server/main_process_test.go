package main

import (
	"os"
	"os/exec"
	"testing"
)

const helperScenarioEnv = "JOBBOARD_SERVER_HELPER"

// runServerHelper re-executes the test binary so main can call os.Exit freely
func runServerHelper(t *testing.T, testName, scenario string, env ...string) error {
	t.Helper()
	cmd := exec.Command(os.Args[0], "-test.run=^"+testName+"$")
	cmd.Env = append(os.Environ(), helperScenarioEnv+"="+scenario, "SERVER_ENV=development")
	cmd.Env = append(cmd.Env, env...)
	return cmd.Run()
}

func TestMainProcess_RefusesToStartWithoutSigningSecret(t *testing.T) {
	if os.Getenv(helperScenarioEnv) == "no-secret" {
		main()
		return
	}

	if err := runServerHelper(t, "TestMainProcess_RefusesToStartWithoutSigningSecret", "no-secret", "JWT_SECRET="); err == nil {
		t.Fatal("server started without JWT_SECRET")
	}
}

func TestMainProcess_ExitsWhenCredentialStoreUnreachable(t *testing.T) {
	if os.Getenv(helperScenarioEnv) == "no-db" {
		main()
		return
	}

	err := runServerHelper(t, "TestMainProcess_ExitsWhenCredentialStoreUnreachable", "no-db",
		"JWT_SECRET=process-test-secret",
		"REDIS_URL=",
		"DB_HOST=127.0.0.1",
		"DB_PORT=1",
		"DB_NAME=jobboard",
		"DB_SSLMODE=disable",
	)
	if err == nil {
		t.Fatal("server started against an unreachable database")
	}
}
