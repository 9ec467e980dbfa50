package execx

import (
	"context"
	"testing"
)

func TestResult_Combined(t *testing.T) {
	t.Parallel()

	r := Result{Stdout: "out line\n", Stderr: "err line\n"}
	if got := r.Combined(); got != "out line\nerr line" {
		t.Errorf("Combined = %q; want %q", got, "out line\nerr line")
	}
}

func TestSystem_CapturesStdout(t *testing.T) {
	t.Parallel()

	res, err := System{}.Run(context.Background(), "echo", "hello")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if res.Stdout != "hello\n" {
		t.Errorf("Stdout = %q; want %q", res.Stdout, "hello\n")
	}
	if res.ExitCode != 0 {
		t.Errorf("ExitCode = %d; want 0", res.ExitCode)
	}
}

func TestSystem_NonZeroExitIsNotAnError(t *testing.T) {
	t.Parallel()

	res, err := System{}.Run(context.Background(), "sh", "-c", "echo oops >&2; exit 3")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if res.ExitCode != 3 {
		t.Errorf("ExitCode = %d; want 3", res.ExitCode)
	}
	if res.Stderr != "oops\n" {
		t.Errorf("Stderr = %q; want %q", res.Stderr, "oops\n")
	}
}

func TestSystem_MissingBinaryIsAnError(t *testing.T) {
	t.Parallel()

	_, err := System{}.Run(context.Background(), "definitely-not-a-binary-xyz")
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
}

func TestSystem_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := System{}.Run(ctx, "sleep", "10")
	if err == nil && res.ExitCode == 0 {
		t.Fatal("expected failure for canceled context")
	}
}
