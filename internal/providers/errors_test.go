package providers

import (
	"errors"
	"fmt"
	"testing"
)

func TestStatusErrorString(t *testing.T) {
	err := &StatusError{Provider: "luckyalgo", StatusCode: 502, Body: "bad gateway"}
	if got := err.Error(); got != "luckyalgo: unexpected status 502: bad gateway" {
		t.Fatalf("unexpected error string %q", got)
	}

	noBody := &StatusError{Provider: "luckyalgo", StatusCode: 500}
	if got := noBody.Error(); got != "luckyalgo: unexpected status 500" {
		t.Fatalf("unexpected error string %q", got)
	}
}

func TestFetchErrorUnwrapsAndExposesUserMessage(t *testing.T) {
	cause := &StatusError{Provider: "luckyalgo", StatusCode: 503}
	err := fmt.Errorf("outer: %w", &FetchError{Jurisdiction: "NY", Err: cause})

	fe, ok := AsFetchError(err)
	if !ok {
		t.Fatal("expected to unwrap fetch error")
	}
	if fe.UserMessage() != UserMessage {
		t.Fatalf("unexpected user message %q", fe.UserMessage())
	}
	se, ok := AsStatusError(err)
	if !ok || se.StatusCode != 503 {
		t.Fatalf("expected status error through chain, got %+v", se)
	}
}

func TestAsFetchErrorRejectsOtherErrors(t *testing.T) {
	if _, ok := AsFetchError(errors.New("boom")); ok {
		t.Fatal("expected plain error not to be a fetch error")
	}
	if _, ok := AsStatusError(ErrProviderUnavailable); ok {
		t.Fatal("expected sentinel not to be a status error")
	}
}
