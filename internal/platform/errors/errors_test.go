package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	t.Parallel()

	err := New(CodeMeetingNotStarted, "finish called before start")
	if !stderrors.Is(err, New(CodeMeetingNotStarted, "different message")) {
		t.Fatal("expected code-based match")
	}
	if stderrors.Is(err, New(CodeMeetingFinished, "")) {
		t.Fatal("expected mismatch for different code")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("disk failure")
	err := Wrap(CodeNotFound, "lookup meeting", cause)
	if !stderrors.Is(err, cause) {
		t.Fatal("expected cause in error chain")
	}
}

func TestGetCodeOnWrappedChain(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("outer: %w", New(CodeConflict, "stale version"))
	if got := GetCode(err); got != CodeConflict {
		t.Fatalf("expected %s, got %s", CodeConflict, got)
	}
	if got := GetCode(stderrors.New("plain")); got != CodeUnknown {
		t.Fatalf("expected %s for plain error, got %s", CodeUnknown, got)
	}
}

func TestErrorClassPredicates(t *testing.T) {
	t.Parallel()

	cases := []struct {
		code         Code
		validation   bool
		invalidState bool
		notFound     bool
		conflict     bool
	}{
		{CodeImpedimentDescriptionEmpty, true, false, false, false},
		{CodeMeetingEndBeforeStart, true, false, false, false},
		{CodeImpedimentResolved, false, true, false, false},
		{CodeMeetingNotStarted, false, true, false, false},
		{CodeNotFound, false, false, true, false},
		{CodeConflict, false, false, false, true},
	}
	for _, tc := range cases {
		err := New(tc.code, string(tc.code))
		if IsValidation(err) != tc.validation {
			t.Fatalf("%s: validation predicate mismatch", tc.code)
		}
		if IsInvalidState(err) != tc.invalidState {
			t.Fatalf("%s: invalid-state predicate mismatch", tc.code)
		}
		if IsNotFound(err) != tc.notFound {
			t.Fatalf("%s: not-found predicate mismatch", tc.code)
		}
		if IsConflict(err) != tc.conflict {
			t.Fatalf("%s: conflict predicate mismatch", tc.code)
		}
	}
}

func TestHandleErrorMapsToGRPCStatus(t *testing.T) {
	t.Parallel()

	err := WithMetadata(CodeImpedimentInvalidTransition, "advance on resolved impediment", map[string]string{
		"From": "RESOLVED",
		"To":   "IN_PROGRESS",
	})
	grpcErr := HandleError(err, "es-EC")
	st, ok := status.FromError(grpcErr)
	if !ok {
		t.Fatalf("expected grpc status, got %v", grpcErr)
	}
	if st.Code() != codes.FailedPrecondition {
		t.Fatalf("expected FailedPrecondition, got %s", st.Code())
	}
}

func TestHandleErrorUnknownErrorIsInternal(t *testing.T) {
	t.Parallel()

	grpcErr := HandleError(stderrors.New("boom"), "")
	st, ok := status.FromError(grpcErr)
	if !ok {
		t.Fatalf("expected grpc status, got %v", grpcErr)
	}
	if st.Code() != codes.Internal {
		t.Fatalf("expected Internal, got %s", st.Code())
	}
}

func TestHandleErrorNil(t *testing.T) {
	t.Parallel()

	if got := HandleError(nil, ""); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}
