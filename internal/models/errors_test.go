package models

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKinds_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	testCases := []struct {
		name string
		err  error
	}{
		{name: "connection setup", err: &ConnectionSetupError{Target: "demo/model-a", Err: cause}},
		{name: "transport", err: &TransportError{Err: cause}},
		{name: "prediction", err: &PredictionError{Err: cause}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if !errors.Is(tc.err, cause) {
				t.Fatalf("expected %v to unwrap to cause", tc.err)
			}
			wrapped := fmt.Errorf("outer: %w", tc.err)
			if !errors.Is(wrapped, cause) {
				t.Fatalf("expected wrapped error to keep the cause chain")
			}
		})
	}
}

func TestConnectionSetupError_NamesTarget(t *testing.T) {
	err := &ConnectionSetupError{Target: "tencent/Hunyuan-T1", Err: errors.New("nope")}
	want := "failed to setup connection towards 'tencent/Hunyuan-T1': nope"
	if got := err.Error(); got != want {
		t.Fatalf("got: %q, want: %q", got, want)
	}
}

func TestIsRetryable(t *testing.T) {
	cause := errors.New("timeout")
	if !IsRetryable(&TransportError{Err: cause}) {
		t.Fatal("transport errors should be retryable")
	}
	if !IsRetryable(fmt.Errorf("submit: %w", &TransportError{Err: cause})) {
		t.Fatal("wrapped transport errors should be retryable")
	}
	if IsRetryable(&PredictionError{Err: cause}) {
		t.Fatal("prediction errors should not be retryable")
	}
	if IsRetryable(&ConnectionSetupError{Target: "x", Err: cause}) {
		t.Fatal("setup errors should not be retryable")
	}
	if IsRetryable(nil) {
		t.Fatal("nil is not retryable")
	}
}
