package model_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgmodel "github.com/goliatone/go-pagetags/pkg/model"
)

const signupDocument = `{
  "openapi": "3.0.3",
  "info": {"title": "signup", "version": "1.0.0"},
  "paths": {
    "/accounts": {
      "post": {
        "operationId": "createAccount",
        "summary": "Create account",
        "requestBody": {
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["email", "password1"],
                "properties": {
                  "email": {"type": "string", "format": "email", "maxLength": 30},
                  "password1": {"type": "string", "format": "password", "title": "password"},
                  "is_company": {"type": "boolean", "description": "Tick for <b>business</b> accounts"},
                  "tags": {"type": "array", "items": {"type": "string"}}
                }
              }
            }
          }
        },
        "responses": {"201": {"description": "created"}}
      }
    }
  }
}`

func TestFromOpenAPI_BuildsScalarFields(t *testing.T) {
	form, err := pkgmodel.FromOpenAPI(context.Background(), []byte(signupDocument), "createAccount")
	if err != nil {
		t.Fatalf("from openapi: %v", err)
	}

	want := pkgmodel.FormModel{
		OperationID: "createAccount",
		Endpoint:    "/accounts",
		Method:      "POST",
		Summary:     "Create account",
		Fields: []pkgmodel.Field{
			{Name: "email", Type: pkgmodel.FieldTypeString, Format: "email", Required: true, MaxLength: 30},
			{Name: "is_company", Type: pkgmodel.FieldTypeBoolean, HelpText: "Tick for <b>business</b> accounts"},
			{Name: "password1", Type: pkgmodel.FieldTypeString, Format: "password", Required: true, Label: "password"},
		},
	}
	if diff := cmp.Diff(want, form); diff != "" {
		t.Fatalf("form mismatch (-want +got):\n%s", diff)
	}
}

func TestFromOpenAPI_UnknownOperation(t *testing.T) {
	_, err := pkgmodel.FromOpenAPI(context.Background(), []byte(signupDocument), "deleteAccount")
	if !errors.Is(err, pkgmodel.ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}
}

func TestFromOpenAPI_EmptyDocument(t *testing.T) {
	if _, err := pkgmodel.FromOpenAPI(context.Background(), nil, "createAccount"); err == nil {
		t.Fatalf("expected error for empty document")
	}
}
