package ask

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
	"github.com/hunyport/huny/internal/models"
)

type stubPredictor struct {
	response string
	err      error
}

func (s *stubPredictor) Predict(ctx context.Context, query string, apiName ...string) (string, error) {
	return s.response, s.err
}

func stubDial(pred models.Predictor, err error) dialFunc {
	return func(ctx context.Context, target string) (models.Predictor, error) {
		if err != nil {
			return nil, err
		}
		return pred, nil
	}
}

func TestRun_RawPrint(t *testing.T) {
	cmd := New("demo/model-a", "/chat", "hello", true, "")
	cmd.dial = stubDial(&stubPredictor{response: "hi there"}, nil)
	stdout := testboil.CaptureStdout(t, func(t *testing.T) {
		if err := cmd.Run(context.Background()); err != nil {
			t.Fatalf("run failed: %v", err)
		}
	})
	testboil.AssertStringContains(t, stdout, "hi there\n")
}

func TestRun_OutputFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "sub", "response.md")
	cmd := New("demo/model-a", "/chat", "hello", true, out)
	cmd.dial = stubDial(&stubPredictor{response: "# markdown response"}, nil)
	testboil.CaptureStdout(t, func(t *testing.T) {
		if err := cmd.Run(context.Background()); err != nil {
			t.Fatalf("run failed: %v", err)
		}
	})
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("expected output file: %v", err)
	}
	testboil.FailTestIfDiff(t, string(b), "# markdown response")
}

func TestRun_ConnectFailurePropagates(t *testing.T) {
	wantErr := &models.ConnectionSetupError{Target: "demo/model-a", Err: errors.New("space down")}
	cmd := New("demo/model-a", "/chat", "hello", true, "")
	cmd.dial = stubDial(nil, wantErr)
	err := cmd.Run(context.Background())
	var setupErr *models.ConnectionSetupError
	if !errors.As(err, &setupErr) {
		t.Fatalf("expected ConnectionSetupError, got: %v", err)
	}
}

func TestRun_PredictionFailurePropagates(t *testing.T) {
	cmd := New("demo/model-a", "/chat", "hello", true, "")
	cmd.dial = stubDial(&stubPredictor{err: &models.PredictionError{Err: errors.New("bad args")}}, nil)
	err := cmd.Run(context.Background())
	var predErr *models.PredictionError
	if !errors.As(err, &predErr) {
		t.Fatalf("expected PredictionError, got: %v", err)
	}
	if models.IsRetryable(err) {
		t.Fatal("prediction errors are not retryable")
	}
}
