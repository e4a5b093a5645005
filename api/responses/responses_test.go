package responses

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/AhmedKettaf/inilapstore/pkg/errors"
	"github.com/AhmedKettaf/inilapstore/pkg/types"
)

func TestWriteSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccess(rec, map[string]string{"status": "ok"})

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var envelope types.SuccessEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	data, ok := envelope.Data.(map[string]any)
	if !ok || data["status"] != "ok" {
		t.Fatalf("unexpected envelope %+v", envelope)
	}
}

func TestWriteErrorUsesMetadataStatus(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "validation",
			err:        pkgerrors.New(pkgerrors.CodeValidation, "price must be positive"),
			wantStatus: 400,
			wantCode:   "VALIDATION_ERROR",
		},
		{
			name:       "out of stock",
			err:        pkgerrors.New(pkgerrors.CodeOutOfStock, "item is out of stock"),
			wantStatus: 409,
			wantCode:   "OUT_OF_STOCK",
		},
		{
			name:       "untyped error hides internals",
			err:        context.DeadlineExceeded,
			wantStatus: 500,
			wantCode:   "INTERNAL_ERROR",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(context.Background(), nil, rec, tc.err)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, rec.Code)
			}
			var envelope types.ErrorEnvelope
			if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if envelope.Error.Code != tc.wantCode {
				t.Fatalf("expected code %s, got %s", tc.wantCode, envelope.Error.Code)
			}
		})
	}
}

func TestWriteErrorPassesAllowedDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeCeilingExceeded, "requested quantity exceeds available stock").
		WithDetails(map[string]any{"available": 2})
	WriteError(context.Background(), nil, rec, err)

	var envelope types.ErrorEnvelope
	if decodeErr := json.Unmarshal(rec.Body.Bytes(), &envelope); decodeErr != nil {
		t.Fatalf("decode body: %v", decodeErr)
	}
	details, ok := envelope.Error.Details.(map[string]any)
	if !ok || details["available"] != float64(2) {
		t.Fatalf("expected details passthrough, got %+v", envelope.Error.Details)
	}
}
