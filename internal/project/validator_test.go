package project

import (
	"testing"
)

func TestValidateAcceptsGoodManifest(t *testing.T) {
	data := []byte(`name: my-app
kind: fullstack
generated_by: stackgen
created_at: "2025-01-15T10:00:00Z"
stacks:
  - language: python
    dir: backend
    version: "3.12"
  - language: nextjs
    dir: frontend
`)

	result, err := Validate(data)
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if !result.Valid {
		t.Errorf("expected valid, issues: %+v", result.Issues)
	}
}

func TestValidateRejectsBadKind(t *testing.T) {
	data := []byte(`name: my-app
kind: rails
stacks:
  - language: python
    dir: .
`)

	result, err := Validate(data)
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if result.Valid {
		t.Fatal("expected invalid manifest")
	}
	found := false
	for _, issue := range result.Issues {
		if issue.Path == "/kind" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an issue at /kind, got: %+v", result.Issues)
	}
}

func TestValidateRejectsMissingStacks(t *testing.T) {
	data := []byte(`name: my-app
kind: python
`)

	result, err := Validate(data)
	if err != nil {
		t.Fatal(err)
	}
	if result.Valid {
		t.Fatal("expected invalid manifest without stacks")
	}
}

func TestValidateRejectsBadName(t *testing.T) {
	data := []byte(`name: "My App"
kind: python
stacks:
  - language: python
    dir: .
`)

	result, err := Validate(data)
	if err != nil {
		t.Fatal(err)
	}
	if result.Valid {
		t.Fatal("expected invalid manifest for bad name")
	}
}

func TestValidateRejectsUnknownField(t *testing.T) {
	data := []byte(`name: my-app
kind: python
flavor: spicy
stacks:
  - language: python
    dir: .
`)

	result, err := Validate(data)
	if err != nil {
		t.Fatal(err)
	}
	if result.Valid {
		t.Fatal("expected invalid manifest for unknown field")
	}
}

func TestValidateMalformedYAML(t *testing.T) {
	_, err := Validate([]byte(":\n bad ["))
	if err == nil {
		t.Fatal("expected parse error")
	}
}
