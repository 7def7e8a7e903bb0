package validator_test

import (
	"net/http"
	"strings"
	"testing"

	"taskboard/shared/failure"
	"taskboard/shared/validator"
)

type taskPayload struct {
	Title  string  `json:"title" validate:"notblank,max=255"`
	Status string  `json:"status" validate:"required"`
	Note   *string `json:"note,omitempty" validate:"omitempty,notblank"`
}

func TestValidateStruct(t *testing.T) {
	blank := "   "
	note := "remember milk"

	tests := []struct {
		name        string
		data        *taskPayload
		expectError string
	}{
		{name: "valid struct", data: &taskPayload{Title: "Buy groceries", Status: "Todo"}},
		{name: "valid optional pointer", data: &taskPayload{Title: "Buy groceries", Status: "Todo", Note: &note}},
		{name: "blank title", data: &taskPayload{Title: "  ", Status: "Todo"}, expectError: "title must not be blank"},
		{name: "missing status", data: &taskPayload{Title: "Pay bills"}, expectError: "status is required"},
		{name: "blank optional pointer", data: &taskPayload{Title: "Pay bills", Status: "Done", Note: &blank}, expectError: "note must not be blank"},
		{name: "too long title", data: &taskPayload{Title: strings.Repeat("a", 256), Status: "Todo"}, expectError: "title must be less than or equal to 255"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(tt.data)

			if tt.expectError == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}

				return
			}

			if err == nil {
				t.Fatalf("expected error %q, got nil", tt.expectError)
			}

			if err.Error() != tt.expectError {
				t.Errorf("expected error %q, got %q", tt.expectError, err.Error())
			}

			if failure.GetCode(err) != http.StatusBadRequest {
				t.Errorf("expected bad request code, got %d", failure.GetCode(err))
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		expectError bool
	}{
		{name: "valid body", body: `{"title":"Write a report","status":"pending"}`},
		{name: "malformed json", body: `{"title":`, expectError: true},
		{name: "validation failure", body: `{"title":"","status":"Todo"}`, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var payload taskPayload

			err := validator.Validate(strings.NewReader(tt.body), &payload)
			if tt.expectError && err == nil {
				t.Error("expected error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	if err := validator.ValidateVar("In Progress", "oneof='Todo' 'In Progress' 'Done'"); err != nil {
		t.Errorf("expected valid status, got %v", err)
	}

	if err := validator.ValidateVar("Blocked", "oneof='Todo' 'In Progress' 'Done'"); err == nil {
		t.Error("expected invalid status error")
	}
}
