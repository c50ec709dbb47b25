package validator_test

import (
	"net/http"
	"strings"
	"testing"

	"quiethours/shared/failure"
	"quiethours/shared/validator"
)

type signupPayload struct {
	Email           string `json:"email"            validate:"required,email"`
	Password        string `json:"password"         validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

type reviewPayload struct {
	PlaceID string `json:"place_id" validate:"required,uuid4"`
	Rating  int    `json:"rating"   validate:"required,min=1,max=5"`
}

type imagePayload struct {
	Image string `json:"image" validate:"omitempty,mimetypes=image/png image/jpeg,maxfilesize=1"`
}

func TestValidate(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		body := strings.NewReader(`{"email":"a@b.com","password":"secret1","confirm_password":"secret1"}`)

		var payload signupPayload

		if err := validator.Validate(body, &payload); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		body := strings.NewReader(`{"email":`)

		var payload signupPayload

		err := validator.Validate(body, &payload)
		if err == nil {
			t.Fatal("expected error, got nil")
		}

		if failure.GetCode(err) != http.StatusBadRequest {
			t.Errorf("expected code %d, got %d", http.StatusBadRequest, failure.GetCode(err))
		}
	})

	t.Run("password too short", func(t *testing.T) {
		body := strings.NewReader(`{"email":"a@b.com","password":"abc","confirm_password":"abc"}`)

		var payload signupPayload

		if err := validator.Validate(body, &payload); err == nil {
			t.Error("expected error for short password")
		}
	})

	t.Run("password mismatch", func(t *testing.T) {
		body := strings.NewReader(`{"email":"a@b.com","password":"secret1","confirm_password":"secret2"}`)

		var payload signupPayload

		if err := validator.Validate(body, &payload); err == nil {
			t.Error("expected error for mismatched confirmation")
		}
	})
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		payload     reviewPayload
		expectError bool
	}{
		{
			name:        "valid review",
			payload:     reviewPayload{PlaceID: "0c7cfde3-358e-4e64-a3ee-7f2735ff1bcd", Rating: 5},
			expectError: false,
		},
		{
			name:        "rating below bound",
			payload:     reviewPayload{PlaceID: "0c7cfde3-358e-4e64-a3ee-7f2735ff1bcd", Rating: 0},
			expectError: true,
		},
		{
			name:        "rating above bound",
			payload:     reviewPayload{PlaceID: "0c7cfde3-358e-4e64-a3ee-7f2735ff1bcd", Rating: 6},
			expectError: true,
		},
		{
			name:        "not a uuid",
			payload:     reviewPayload{PlaceID: "place-1", Rating: 3},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.payload)

			if tt.expectError && err == nil {
				t.Error("expected error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestValidateImageTags(t *testing.T) {
	t.Run("accepted mimetype", func(t *testing.T) {
		payload := imagePayload{Image: "data:image/png;base64,iVBORw0KGgo="}

		if err := validator.ValidateStruct(&payload); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("rejected mimetype", func(t *testing.T) {
		payload := imagePayload{Image: "data:application/pdf;base64,JVBERi0="}

		if err := validator.ValidateStruct(&payload); err == nil {
			t.Error("expected error for disallowed mimetype")
		}
	})

	t.Run("oversized payload", func(t *testing.T) {
		payload := imagePayload{Image: "data:image/png;base64," + strings.Repeat("A", 2*1024*1024)}

		if err := validator.ValidateStruct(&payload); err == nil {
			t.Error("expected error for oversized payload")
		}
	})
}

func TestValidateVar(t *testing.T) {
	if err := validator.ValidateVar("a@b.com", "email"); err != nil {
		t.Errorf("expected no error, got %v", err)
	}

	if err := validator.ValidateVar("not-an-email", "email"); err == nil {
		t.Error("expected error for invalid email")
	}
}
