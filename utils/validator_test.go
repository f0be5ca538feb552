package utils

import (
	"testing"
)

type gradeForm struct {
	Sem  int     `json:"sem" validate:"required,min=1,max=8"`
	SGPI float64 `json:"sgpi" validate:"gte=0,lte=10"`
}

type profileForm struct {
	Phone  string      `json:"phone" validate:"required,numeric"`
	Resume string      `json:"resume_link" validate:"omitempty,url"`
	Grades []gradeForm `json:"grades" validate:"unique=Sem,dive"`
}

func TestValidationMessagesUseJSONNames(t *testing.T) {
	err := ValidateStruct(&profileForm{
		Phone:  "98-76",
		Resume: "not a url",
		Grades: []gradeForm{{Sem: 9, SGPI: 11}},
	})
	if err == nil {
		t.Fatal("expected validation errors")
	}

	msgs := ValidationMessages(err)
	want := map[string]string{
		"phone":          "must contain digits only",
		"resume_link":    "must be a valid URL",
		"grades[0].sem":  "must be at most 8",
		"grades[0].sgpi": "must be at most 10",
	}
	for field, msg := range want {
		if msgs[field] != msg {
			t.Fatalf("field %s: got %q want %q (all: %v)", field, msgs[field], msg, msgs)
		}
	}
}

func TestValidationRejectsRepeatedSemesters(t *testing.T) {
	err := ValidateStruct(&profileForm{
		Phone:  "9876543210",
		Grades: []gradeForm{{Sem: 1, SGPI: 8}, {Sem: 1, SGPI: 7}},
	})
	if err == nil {
		t.Fatal("expected unique violation")
	}
	if msg := ValidationMessages(err)["grades"]; msg != "must not repeat sem" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("placement-2024")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if !CheckPasswordHash("placement-2024", hash) {
		t.Fatal("expected password to match its hash")
	}
	if CheckPasswordHash("placement-2025", hash) {
		t.Fatal("different password must not match")
	}
}
