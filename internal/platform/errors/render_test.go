package errors

import (
	"context"
	"fmt"
	"net/http"
	"testing"
)

func TestRenderUsesRegisteredFormatter(t *testing.T) {
	reg := NewRegistry()
	reg.Register(CodeInviteNotFound, func(_ context.Context, e *Error) (string, error) {
		return "No pending invite from alice to bob exists for this event", nil
	})

	err := WithMetadata(CodeInviteNotFound, "invite does not exist", map[string]string{
		"From": "u1", "To": "u2",
	})
	msg, status := reg.Render(context.Background(), "", err)
	if msg != "No pending invite from alice to bob exists for this event" {
		t.Fatalf("message = %q", msg)
	}
	if status != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", status, http.StatusNotFound)
	}
}

func TestRenderFallsBackToCatalogTemplate(t *testing.T) {
	reg := NewRegistry()

	err := WithMetadata(CodeEventAuthorMismatch, "author mismatch", map[string]string{
		"User": "u1", "Event": "e1",
	})
	msg, status := reg.Render(context.Background(), "en-US", err)
	if msg != "u1 is not the author of event e1" {
		t.Fatalf("message = %q", msg)
	}
	if status != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", status, http.StatusForbidden)
	}
}

func TestRenderFormatterFailureFallsBack(t *testing.T) {
	reg := NewRegistry()
	reg.Register(CodeEventAuthorMismatch, func(_ context.Context, e *Error) (string, error) {
		return "", fmt.Errorf("lookup failed")
	})

	err := WithMetadata(CodeEventAuthorMismatch, "author mismatch", map[string]string{
		"User": "u1", "Event": "e1",
	})
	msg, _ := reg.Render(context.Background(), "", err)
	if msg != "u1 is not the author of event e1" {
		t.Fatalf("message = %q", msg)
	}
}

func TestRenderUnregisteredCodeUsesErrorMessage(t *testing.T) {
	reg := NewRegistry()

	msg, status := reg.Render(context.Background(), "", New(Code("CUSTOM_CODE"), "custom default message"))
	if msg != "custom default message" {
		t.Fatalf("message = %q", msg)
	}
	if status != http.StatusInternalServerError {
		t.Fatalf("status = %d", status)
	}
}

func TestRenderNonDomainError(t *testing.T) {
	reg := NewRegistry()

	msg, status := reg.Render(context.Background(), "", fmt.Errorf("boom"))
	if msg != "an unexpected error occurred" {
		t.Fatalf("message = %q", msg)
	}
	if status != http.StatusInternalServerError {
		t.Fatalf("status = %d", status)
	}
}
