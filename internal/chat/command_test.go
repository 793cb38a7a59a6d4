package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
	"github.com/hunyport/huny/internal/models"
	"github.com/hunyport/huny/internal/session"
)

type fakePredictor struct {
	responses map[string]string
	err       error
}

func (f *fakePredictor) Predict(ctx context.Context, query string, apiName ...string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.responses[query], nil
}

func sessionWith(pred *fakePredictor) *session.Session {
	return session.New(func(ctx context.Context, target string) (models.Predictor, error) {
		return pred, nil
	})
}

func TestRun_List(t *testing.T) {
	tmp := t.TempDir()
	if err := Save(tmp, models.Conversation{ID: "first_chat", Target: "demo/model-a"}); err != nil {
		t.Fatalf("setup save failed: %v", err)
	}
	cmd := New(sessionWith(&fakePredictor{}), "demo/model-a", tmp, true, []string{"list"})
	stdout := testboil.CaptureStdout(t, func(t *testing.T) {
		if err := cmd.Run(context.Background()); err != nil {
			t.Fatalf("run failed: %v", err)
		}
	})
	testboil.AssertStringContains(t, stdout, "first_chat")
	testboil.AssertStringContains(t, stdout, "demo/model-a")
}

func TestRun_Delete(t *testing.T) {
	tmp := t.TempDir()
	if err := Save(tmp, models.Conversation{ID: "doomed_chat"}); err != nil {
		t.Fatalf("setup save failed: %v", err)
	}
	cmd := New(sessionWith(&fakePredictor{}), "demo/model-a", tmp, true, []string{"delete", "doomed_chat"})
	testboil.CaptureStdout(t, func(t *testing.T) {
		if err := cmd.Run(context.Background()); err != nil {
			t.Fatalf("run failed: %v", err)
		}
	})
	if _, err := Load(tmp, "doomed_chat"); err == nil {
		t.Fatal("expected conversation to be deleted")
	}
}

func TestRun_DeleteByIndex(t *testing.T) {
	tmp := t.TempDir()
	if err := Save(tmp, models.Conversation{ID: "by_index"}); err != nil {
		t.Fatalf("setup save failed: %v", err)
	}
	cmd := New(sessionWith(&fakePredictor{}), "demo/model-a", tmp, true, []string{"d", "0"})
	testboil.CaptureStdout(t, func(t *testing.T) {
		if err := cmd.Run(context.Background()); err != nil {
			t.Fatalf("run failed: %v", err)
		}
	})
	if _, err := Load(tmp, "by_index"); err == nil {
		t.Fatal("expected conversation to be deleted")
	}
}

func TestRun_UnknownSubcommand(t *testing.T) {
	cmd := New(sessionWith(&fakePredictor{}), "demo/model-a", t.TempDir(), true, []string{"bogus"})
	if err := cmd.Run(context.Background()); err == nil {
		t.Fatal("expected error for unknown subcommand")
	}
}

func TestRun_InteractiveConversation(t *testing.T) {
	tmp := t.TempDir()
	pred := &fakePredictor{responses: map[string]string{"hello": "hi there"}}
	cmd := New(sessionWith(pred), "demo/model-a", tmp, true, nil)
	cmd.input = strings.NewReader("hello\nexit\n")

	stdout := testboil.CaptureStdout(t, func(t *testing.T) {
		if err := cmd.Run(context.Background()); err != nil {
			t.Fatalf("run failed: %v", err)
		}
	})
	testboil.AssertStringContains(t, stdout, "hi there")

	// Transcript persisted on exit, keyed by the first query.
	conv, err := Load(tmp, "hello")
	if err != nil {
		t.Fatalf("expected saved conversation: %v", err)
	}
	if len(conv.Exchanges) != 1 || conv.Exchanges[0].Response != "hi there" {
		t.Fatalf("unexpected transcript: %+v", conv.Exchanges)
	}
}

func TestRun_InteractiveFailedTurnKeepsLoopAlive(t *testing.T) {
	tmp := t.TempDir()
	pred := &fakePredictor{err: &models.TransportError{Err: errors.New("conn dropped")}}
	cmd := New(sessionWith(pred), "demo/model-a", tmp, true, nil)
	cmd.input = strings.NewReader("doomed\nexit\n")

	if err := testboil.CaptureStdout(t, func(t *testing.T) {
		if err := cmd.Run(context.Background()); err != nil {
			t.Fatalf("run should survive a failed turn: %v", err)
		}
	}); err == "" {
		t.Log("no stdout captured, error reporting goes to stderr")
	}
	// Nothing persisted: a failed turn is never an exchange.
	if _, err := Load(tmp, "doomed"); err == nil {
		t.Fatal("failed turn must not be recorded")
	}
}

func TestRun_InteractiveClear(t *testing.T) {
	tmp := t.TempDir()
	pred := &fakePredictor{responses: map[string]string{"hello": "hi"}}
	cmd := New(sessionWith(pred), "demo/model-a", tmp, true, nil)
	cmd.input = strings.NewReader("hello\nclear\nexit\n")

	testboil.CaptureStdout(t, func(t *testing.T) {
		if err := cmd.Run(context.Background()); err != nil {
			t.Fatalf("run failed: %v", err)
		}
	})
	// Cleared before exit, so nothing to persist.
	if _, err := Load(tmp, "hello"); err == nil {
		t.Fatal("cleared transcript must not be persisted")
	}
}
