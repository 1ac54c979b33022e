// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"

	"codeberg.org/phrasebook/phrasebook/i18n"
	"codeberg.org/phrasebook/phrasebook/server/request_context"
	"codeberg.org/phrasebook/phrasebook/server/routes"
)

// createTestRequest creates a test HTTP request with request context.
func createTestRequest(t *testing.T) *http.Request {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/test", nil)

	return req.WithContext(request_context.WithRequestContext(req.Context(), req))
}

func TestCatchError_Success(t *testing.T) {
	t.Parallel()

	handler := CatchError(func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, err := w.Write([]byte(`{"status": "success"}`))

		return err
	})

	req := createTestRequest(t)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.JSONEq(t, `{"status": "success"}`, rr.Body.String())
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	rc := request_context.FromRequest(req)
	assert.NoError(t, rc.RequestError)
	assert.Equal(t, http.StatusCreated, rc.StatusCode)
}

func TestCatchError_HandlerError(t *testing.T) {
	t.Parallel()

	testError := errors.New("database on fire")
	handler := CatchError(func(w http.ResponseWriter, r *http.Request) error {
		_, _ = w.Write([]byte("partial output"))

		return testError
	})

	req := createTestRequest(t)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	body := rr.Body.String()
	assert.Equal(t, "Something went wrong.", gjson.Get(body, "error").String())
	assert.Equal(t, request_context.FromRequest(req).RequestID, gjson.Get(body, "requestId").String())
	assert.NotContains(t, body, "database on fire")
	assert.NotContains(t, body, "partial output")

	assert.ErrorIs(t, request_context.FromRequest(req).RequestError, testError)
}

func TestCatchError_HTTPError(t *testing.T) {
	t.Parallel()

	handler := CatchError(func(w http.ResponseWriter, r *http.Request) error {
		return &routes.HTTPError{
			Status: http.StatusUnprocessableEntity,
			Err:    i18n.NewUserError(r.Context(), "Bad {thing}.", "thing", "input"),
		}
	})

	req := createTestRequest(t)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, "Bad input.", gjson.Get(rr.Body.String(), "error").String())
	assert.Equal(t, http.StatusUnprocessableEntity, request_context.FromRequest(req).StatusCode)
}

func TestCatchError_NotFoundWritten(t *testing.T) {
	t.Parallel()

	handler := CatchError(func(w http.ResponseWriter, r *http.Request) error {
		http.NotFound(w, r)

		return nil
	})

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, createTestRequest(t))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.True(t, gjson.Valid(rr.Body.String()))
}

func TestCatchError_WithoutRequestContext(t *testing.T) {
	t.Parallel()

	handler := CatchError(func(_ http.ResponseWriter, r *http.Request) error {
		return &routes.HTTPError{Status: http.StatusTeapot, Err: i18n.NewUserError(r.Context(), "Short and stout.")}
	})

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.Equal(t, "Short and stout.", gjson.Get(rr.Body.String(), "error").String())
	assert.NotEmpty(t, gjson.Get(rr.Body.String(), "requestId").String())
}
