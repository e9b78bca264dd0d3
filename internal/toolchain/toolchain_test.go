package toolchain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// fakeRunner records invocations and returns canned results keyed by binary name.
type fakeRunner struct {
	calls   []string
	outputs map[string]*Output
	missing map[string]bool
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		outputs: make(map[string]*Output),
		missing: make(map[string]bool),
	}
}

func (f *fakeRunner) Run(ctx context.Context, dir, name string, args ...string) (*Output, error) {
	f.calls = append(f.calls, name+" "+strings.Join(args, " "))
	if f.missing[name] {
		return nil, fmt.Errorf("%s is not installed", name)
	}
	if out, ok := f.outputs[name]; ok {
		return out, nil
	}
	return &Output{}, nil
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	if f.missing[name] {
		return "", errors.New("executable file not found in $PATH")
	}
	return "/usr/bin/" + name, nil
}

func (f *fakeRunner) lastCall(t *testing.T) string {
	t.Helper()
	if len(f.calls) == 0 {
		t.Fatal("no commands were run")
	}
	return f.calls[len(f.calls)-1]
}

func TestRequire(t *testing.T) {
	r := newFakeRunner()
	if err := Require(r, "git", "uv"); err != nil {
		t.Fatalf("Require() error: %v", err)
	}

	r.missing["uv"] = true
	r.missing["node"] = true
	err := Require(r, "git", "uv", "node")
	if err == nil {
		t.Fatal("expected error for missing tools")
	}
	// All missing tools are reported at once.
	if !strings.Contains(err.Error(), "uv") || !strings.Contains(err.Error(), "node") {
		t.Errorf("error should list every missing tool, got: %v", err)
	}
	if strings.Contains(err.Error(), "git") {
		t.Errorf("error should not mention installed tools, got: %v", err)
	}
}

func TestUVInit(t *testing.T) {
	r := newFakeRunner()
	uv := &UV{Runner: r}

	if err := uv.Init(context.Background(), "/tmp/proj", "3.12"); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	if got := r.lastCall(t); got != "uv init --python 3.12" {
		t.Errorf("command = %q", got)
	}
}

func TestUVInit_NoPythonPin(t *testing.T) {
	r := newFakeRunner()
	uv := &UV{Runner: r}

	if err := uv.Init(context.Background(), "/tmp/proj", ""); err != nil {
		t.Fatal(err)
	}
	if got := r.lastCall(t); got != "uv init" {
		t.Errorf("command = %q", got)
	}
}

func TestUVInit_NonZeroExit(t *testing.T) {
	r := newFakeRunner()
	r.outputs["uv"] = &Output{ExitCode: 2, Stderr: "error: no interpreter found\n"}
	uv := &UV{Runner: r}

	err := uv.Init(context.Background(), "/tmp/proj", "3.12")
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}
	if !strings.Contains(err.Error(), "no interpreter found") {
		t.Errorf("error should carry tool stderr, got: %v", err)
	}
}

func TestUVAddDev_Empty(t *testing.T) {
	r := newFakeRunner()
	uv := &UV{Runner: r}
	if err := uv.AddDev(context.Background(), "/tmp/proj"); err != nil {
		t.Fatal(err)
	}
	if len(r.calls) != 0 {
		t.Errorf("no packages should mean no invocation, got %v", r.calls)
	}
}

func TestNodeVersion(t *testing.T) {
	r := newFakeRunner()
	r.outputs["node"] = &Output{Stdout: "v20.11.1\n"}
	node := &Node{Runner: r}

	v, err := node.Version(context.Background())
	if err != nil {
		t.Fatalf("Version() error: %v", err)
	}
	if v != "20.11.1" {
		t.Errorf("Version() = %q, want %q", v, "20.11.1")
	}
}

func TestNodeCheckMinimum(t *testing.T) {
	tests := []struct {
		version string
		wantErr bool
	}{
		{"v20.11.1\n", false},
		{"v18.18.0\n", false},
		{"v16.20.0\n", true},
		{"garbage\n", true},
	}

	for _, tt := range tests {
		r := newFakeRunner()
		r.outputs["node"] = &Output{Stdout: tt.version}
		node := &Node{Runner: r}

		err := node.CheckMinimum(context.Background())
		if (err != nil) != tt.wantErr {
			t.Errorf("CheckMinimum() with node %q: err = %v, wantErr = %v",
				strings.TrimSpace(tt.version), err, tt.wantErr)
		}
	}
}

func TestCreateNextApp(t *testing.T) {
	r := newFakeRunner()
	node := &Node{Runner: r}

	opts := CreateNextAppOptions{
		TypeScript: true,
		ESLint:     true,
		Tailwind:   false,
		AppRouter:  true,
		SkipGit:    true,
		SkipNPM:    false,
	}
	if err := node.CreateNextApp(context.Background(), "/tmp", "frontend", opts); err != nil {
		t.Fatalf("CreateNextApp() error: %v", err)
	}

	got := r.lastCall(t)
	for _, want := range []string{
		"npx --yes create-next-app@latest frontend",
		"--ts", "--eslint", "--no-tailwind", "--app", "--disable-git", "--use-npm",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("command %q missing %q", got, want)
		}
	}
}

func TestCreateNextApp_SkipInstall(t *testing.T) {
	r := newFakeRunner()
	node := &Node{Runner: r}

	err := node.CreateNextApp(context.Background(), "/tmp", "web", CreateNextAppOptions{SkipNPM: true})
	if err != nil {
		t.Fatal(err)
	}
	got := r.lastCall(t)
	if !strings.Contains(got, "--skip-install") {
		t.Errorf("command %q missing --skip-install", got)
	}
	if strings.Contains(got, "--use-npm") {
		t.Errorf("command %q should not pin npm when skipping install", got)
	}
}

func TestGitInitialCommit(t *testing.T) {
	r := newFakeRunner()
	git := &Git{Runner: r}

	if err := git.Init(context.Background(), "/tmp/proj"); err != nil {
		t.Fatal(err)
	}
	if err := git.InitialCommit(context.Background(), "/tmp/proj", "Initial scaffold"); err != nil {
		t.Fatal(err)
	}

	want := []string{"git init", "git add -A", "git commit -m Initial scaffold"}
	if len(r.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", r.calls, want)
	}
	for i := range want {
		if r.calls[i] != want[i] {
			t.Errorf("call[%d] = %q, want %q", i, r.calls[i], want[i])
		}
	}
}
