package models

import "testing"

func TestTableNames(t *testing.T) {
	if got := (User{}).TableName(); got != "users" {
		t.Fatalf("unexpected User table name: %s", got)
	}
	if got := (Job{}).TableName(); got != "jobs" {
		t.Fatalf("unexpected Job table name: %s", got)
	}
	if got := (Application{}).TableName(); got != "applications" {
		t.Fatalf("unexpected Application table name: %s", got)
	}
	if got := len(All()); got != 3 {
		t.Fatalf("expected 3 models, got %d", got)
	}
}
