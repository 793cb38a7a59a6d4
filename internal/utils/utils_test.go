package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
)

func TestGetHunyConfigDir_EnvOverride(t *testing.T) {
	t.Setenv("HUNY_CONFIG_HOME", "/tmp/elsewhere")
	got, err := GetHunyConfigDir()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	testboil.FailTestIfDiff(t, got, "/tmp/elsewhere")
}

func TestCreateConfigDir(t *testing.T) {
	tmp := t.TempDir()
	confDir := filepath.Join(tmp, "huny")
	if err := CreateConfigDir(confDir); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := os.Stat(filepath.Join(confDir, "conversations")); err != nil {
		t.Fatalf("expected conversations dir: %v", err)
	}
	// Idempotent on existing dirs.
	if err := CreateConfigDir(confDir); err != nil {
		t.Fatalf("second create failed: %v", err)
	}
}

func TestWriteResponseFile_CreatesParents(t *testing.T) {
	tmp := t.TempDir()
	out := filepath.Join(tmp, "nested", "deep", "response.md")
	if err := WriteResponseFile(out, "# hello"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("failed to read back: %v", err)
	}
	testboil.FailTestIfDiff(t, string(b), "# hello")
}

func TestTermWidth_ColumnsOverride(t *testing.T) {
	t.Setenv("COLUMNS", "123")
	testboil.FailTestIfDiff(t, TermWidth(), 123)
}

func TestAttemptPrettyPrint_Raw(t *testing.T) {
	got := testboil.CaptureStdout(t, func(t *testing.T) {
		if err := AttemptPrettyPrint("Hunyuan", "plain response", true); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
	})
	testboil.FailTestIfDiff(t, got, "plain response\n")
}

func TestReturnNonDefault(t *testing.T) {
	got, err := ReturnNonDefault("set", "", "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	testboil.FailTestIfDiff(t, got, "set")
	if _, err := ReturnNonDefault("a", "b", ""); err == nil {
		t.Fatal("expected error when both flags set")
	}
}

func TestStartSpinner_StopsCleanly(t *testing.T) {
	// No TTY in tests: stop must still be callable without panicking.
	stop := StartSpinner("Querying...")
	stop()
}
