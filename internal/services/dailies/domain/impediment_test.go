package domain

import (
	"testing"
	"time"

	apperrors "github.com/planagil/dailies/internal/platform/errors"
)

func TestNewImpediment_Validation(t *testing.T) {
	t.Parallel()

	reportedAt := time.Date(2024, 1, 2, 9, 10, 0, 0, time.UTC)

	if _, err := NewImpediment("sprint-1", "meet-1", "7", "  ", PriorityHigh, reportedAt); !apperrors.IsCode(err, apperrors.CodeImpedimentDescriptionEmpty) {
		t.Fatalf("expected empty-description error, got %v", err)
	}
	if _, err := NewImpediment("sprint-1", "meet-1", "", "CI is down", PriorityHigh, reportedAt); !apperrors.IsCode(err, apperrors.CodeImpedimentReporterEmpty) {
		t.Fatalf("expected empty-reporter error, got %v", err)
	}
	if _, err := NewImpediment("sprint-1", "meet-1", "7", "CI is down", "URGENT", reportedAt); !apperrors.IsCode(err, apperrors.CodeImpedimentInvalidPriority) {
		t.Fatalf("expected invalid-priority error, got %v", err)
	}

	impediment, err := NewImpediment("sprint-1", "meet-1", "7", "CI is down", "", reportedAt)
	if err != nil {
		t.Fatalf("new impediment: %v", err)
	}
	if impediment.Priority != PriorityMedium {
		t.Fatalf("expected default medium priority, got %q", impediment.Priority)
	}
	if impediment.State != ImpedimentOpen {
		t.Fatalf("expected open state, got %q", impediment.State)
	}
}

func TestAdvance_OpenToInProgress(t *testing.T) {
	t.Parallel()

	impediment := Impediment{State: ImpedimentOpen}
	if err := impediment.Advance(); err != nil {
		t.Fatalf("advance impediment: %v", err)
	}
	if impediment.State != ImpedimentInProgress {
		t.Fatalf("expected in-progress state, got %q", impediment.State)
	}
	if err := impediment.Advance(); !apperrors.IsCode(err, apperrors.CodeImpedimentInvalidTransition) {
		t.Fatalf("expected invalid-transition error, got %v", err)
	}
}

func TestResolve_DirectlyFromOpen(t *testing.T) {
	t.Parallel()

	impediment := Impediment{State: ImpedimentOpen}
	resolvedAt := time.Date(2024, 1, 3, 11, 0, 0, 0, time.UTC)
	if err := impediment.Resolve("infra team restarted the runner", resolvedAt); err != nil {
		t.Fatalf("resolve impediment: %v", err)
	}
	if impediment.State != ImpedimentResolved {
		t.Fatalf("expected resolved state, got %q", impediment.State)
	}
	if impediment.ResolvedAt == nil || !impediment.ResolvedAt.Equal(resolvedAt) {
		t.Fatalf("expected resolved timestamp %s, got %v", resolvedAt, impediment.ResolvedAt)
	}
}

func TestResolve_RequiresResolutionText(t *testing.T) {
	t.Parallel()

	impediment := Impediment{State: ImpedimentInProgress}
	err := impediment.Resolve("   ", time.Date(2024, 1, 3, 11, 0, 0, 0, time.UTC))
	if !apperrors.IsCode(err, apperrors.CodeImpedimentResolutionEmpty) {
		t.Fatalf("expected empty-resolution error, got %v", err)
	}
	if !apperrors.IsValidation(err) {
		t.Fatalf("expected a validation-class error, got %v", err)
	}
	if impediment.State != ImpedimentInProgress {
		t.Fatalf("expected state unchanged after rejection, got %q", impediment.State)
	}
}

func TestResolve_TwiceFails(t *testing.T) {
	t.Parallel()

	impediment := Impediment{State: ImpedimentOpen}
	at := time.Date(2024, 1, 3, 11, 0, 0, 0, time.UTC)
	if err := impediment.Resolve("switched the DNS record", at); err != nil {
		t.Fatalf("resolve impediment: %v", err)
	}
	err := impediment.Resolve("again", at.Add(time.Hour))
	if !apperrors.IsCode(err, apperrors.CodeImpedimentResolved) {
		t.Fatalf("expected already-resolved error, got %v", err)
	}
	if !apperrors.IsInvalidState(err) {
		t.Fatalf("expected an invalid-state-class error, got %v", err)
	}
	if impediment.Resolution != "switched the DNS record" {
		t.Fatalf("expected original resolution preserved, got %q", impediment.Resolution)
	}
}

func TestReassign_ResolvedIsImmutable(t *testing.T) {
	t.Parallel()

	impediment := Impediment{State: ImpedimentResolved, ResolverID: "8"}
	err := impediment.Reassign("9")
	if !apperrors.IsCode(err, apperrors.CodeImpedimentResolved) {
		t.Fatalf("expected already-resolved error, got %v", err)
	}
	if impediment.ResolverID != "8" {
		t.Fatalf("expected resolver unchanged, got %q", impediment.ResolverID)
	}
}
