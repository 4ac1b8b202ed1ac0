package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestToDomainErrorUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	de := ToDomainError(fmt.Errorf("create account: %w", pgErr))
	if de.Code != "CONFLICT" || de.HTTPStatus != http.StatusConflict {
		t.Fatalf("expected CONFLICT 409, got %s %d", de.Code, de.HTTPStatus)
	}
}

func TestToDomainErrorOtherPgErrorStaysInternal(t *testing.T) {
	de := ToDomainError(&pgconn.PgError{Code: "23503"})
	if de.Code != "INTERNAL_ERROR" || de.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected INTERNAL_ERROR 500, got %s %d", de.Code, de.HTTPStatus)
	}
}

func TestToDomainErrorNoRows(t *testing.T) {
	de := ToDomainError(fmt.Errorf("load: %w", pgx.ErrNoRows))
	if de.Code != "NOT_FOUND" || de.HTTPStatus != http.StatusNotFound {
		t.Fatalf("expected NOT_FOUND 404, got %s %d", de.Code, de.HTTPStatus)
	}
}

func TestToDomainErrorPassesDomainErrorsThrough(t *testing.T) {
	orig := NewConflict("Email already registered")
	de := ToDomainError(fmt.Errorf("register: %w", orig))
	if de != orig.(*DomainError) {
		t.Fatalf("expected wrapped domain error returned as-is, got %+v", de)
	}
}

func TestToDomainErrorFiberClientError(t *testing.T) {
	de := ToDomainError(fiber.NewError(http.StatusNotFound, "Cannot GET /nope"))
	if de.HTTPStatus != http.StatusNotFound || de.Code == "INTERNAL_ERROR" {
		t.Fatalf("expected client status preserved, got %s %d", de.Code, de.HTTPStatus)
	}
}

func TestToDomainErrorUnknownIsInternal(t *testing.T) {
	de := ToDomainError(errors.New("boom"))
	if de.Code != "INTERNAL_ERROR" || de.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected INTERNAL_ERROR 500, got %s %d", de.Code, de.HTTPStatus)
	}
}
