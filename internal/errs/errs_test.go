package errs

import (
	"context"
	"errors"
	"testing"
)

func TestService(t *testing.T) {
	cause := errors.New("quota exceeded")
	err := Service("transcribe", cause)

	if !errors.Is(err, ErrService) {
		t.Errorf("Service() should match ErrService, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("Service() should keep the cause, got %v", err)
	}
	if err.Error() != "transcribe: service error: quota exceeded" {
		t.Errorf("Service() message = %q", err.Error())
	}
}

func TestServiceNil(t *testing.T) {
	if err := Service("post", nil); err != nil {
		t.Errorf("Service(nil) = %v, want nil", err)
	}
}

func TestServiceNoDoubleTag(t *testing.T) {
	err := Service("summarize", Service("complete", context.DeadlineExceeded))
	if err.Error() != "summarize: complete: service error: context deadline exceeded" {
		t.Errorf("nested Service() message = %q", err.Error())
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("nested Service() lost the cause")
	}
}

func TestKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"invalid argument", InvalidArgument("chunk duration must be positive, got %d", 0), ErrInvalidArgument},
		{"not found", NotFound("/tmp/missing.wav"), ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.kind) {
				t.Errorf("%v does not match %v", tt.err, tt.kind)
			}
		})
	}
}
