package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestWrapPreservesCauseAndCode(t *testing.T) {
	cause := stdErrors.New("socket closed")
	err := Wrap(CodeDependency, cause, "insert contact")

	if err.Code() != CodeDependency {
		t.Fatalf("expected %s, got %s", CodeDependency, err.Code())
	}
	if !stdErrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be found via errors.Is")
	}
	if err.Error() != "DEPENDENCY_ERROR: insert contact" {
		t.Fatalf("unexpected error string: %s", err.Error())
	}
}

func TestAsFindsTypedErrorThroughWrapping(t *testing.T) {
	inner := New(CodeNotFound, "contact not found")
	outer := fmt.Errorf("deleting: %w", inner)

	typed := As(outer)
	if typed == nil {
		t.Fatal("expected typed error")
	}
	if typed.Code() != CodeNotFound {
		t.Fatalf("expected %s, got %s", CodeNotFound, typed.Code())
	}
}

func TestMetadataForUnknownCodeFallsBackToInternal(t *testing.T) {
	meta := MetadataFor(Code("SOMETHING_ELSE"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", meta.HTTPStatus)
	}
}

func TestDumpCollectsChain(t *testing.T) {
	cause := stdErrors.New("timeout")
	err := Wrap(CodeDependency, cause, "list contacts")

	dump := Dump(err)
	if dump.Code != string(CodeDependency) {
		t.Fatalf("expected code %s, got %s", CodeDependency, dump.Code)
	}
	if len(dump.Chain) != 2 {
		t.Fatalf("expected chain of 2, got %d", len(dump.Chain))
	}
	if dump.Chain[1] != "timeout" {
		t.Fatalf("expected root cause last, got %s", dump.Chain[1])
	}
}
