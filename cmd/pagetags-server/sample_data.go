package main

import (
	"github.com/goliatone/go-pagetags/pkg/model"
	"github.com/goliatone/go-pagetags/pkg/sorting"
)

func samplePeople() *sorting.SliceCollection[map[string]any] {
	return sorting.NewMapCollection([]map[string]any{
		{"name": "Ada Lovelace", "age": 36, "city": "London"},
		{"name": "Grace Hopper", "age": 85, "city": "New York"},
		{"name": "Alan Turing", "age": 41, "city": "Wilmslow"},
		{"name": "Edsger Dijkstra", "age": 72, "city": "Nuenen"},
	})
}

func signupForm() model.FormModel {
	return model.FormModel{
		OperationID: "signup",
		Endpoint:    "/signup",
		Method:      "POST",
		Fields: []model.Field{
			{Name: "email", Type: model.FieldTypeString, Format: "email", Required: true, MaxLength: 80},
			{Name: "password1", Type: model.FieldTypeString, Format: "password", Required: true, Label: "Password"},
			{Name: "plan", Type: model.FieldTypeString, Enum: []any{"free", "pro"}},
			{Name: "is_company", Type: model.FieldTypeBoolean, HelpText: "Tick for <b>business</b> accounts."},
		},
	}
}
