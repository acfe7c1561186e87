package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistrationValidation(t *testing.T) {
	base := registrationInput{
		Name:     "Aiko Tanaka",
		Email:    "aiko@example.com",
		Password: "supersecret",
		Role:     "candidate",
	}

	assert.NoError(t, validate.Struct(base))
}

func TestRegistrationValidationAgentFields(t *testing.T) {
	agent := registrationInput{
		Name:     "Global Staffing KK",
		Email:    "desk@staffing.example",
		Password: "supersecret",
		Role:     "agent",
	}

	// company fields are mandatory for agents
	err := validate.Struct(agent)
	assert.Error(t, err)
	fields := missingFields(err)
	assert.Contains(t, fields, "CompanyName")
	assert.Contains(t, fields, "CompanyAddress")
	assert.Contains(t, fields, "ContactPerson")

	agent.CompanyName = "Global Staffing KK"
	agent.CompanyAddress = "1-2-3 Shibuya, Tokyo"
	agent.ContactPerson = "Sato"
	assert.NoError(t, validate.Struct(agent))

	// but never for candidates
	candidate := agent
	candidate.Role = "candidate"
	candidate.CompanyName = ""
	candidate.CompanyAddress = ""
	candidate.ContactPerson = ""
	assert.NoError(t, validate.Struct(candidate))
}

func TestRegistrationValidationRejects(t *testing.T) {
	cases := []struct {
		name  string
		mut   func(*registrationInput)
		field string
	}{
		{"bad email", func(in *registrationInput) { in.Email = "not-an-email" }, "Email"},
		{"short password", func(in *registrationInput) { in.Password = "short" }, "Password"},
		{"unknown role", func(in *registrationInput) { in.Role = "admin" }, "Role"},
		{"missing name", func(in *registrationInput) { in.Name = "" }, "Name"},
	}

	for _, tc := range cases {
		in := registrationInput{
			Name:     "Aiko Tanaka",
			Email:    "aiko@example.com",
			Password: "supersecret",
			Role:     "candidate",
		}
		tc.mut(&in)
		err := validate.Struct(in)
		assert.Error(t, err, tc.name)
		assert.Contains(t, missingFields(err), tc.field, tc.name)
	}
}

func TestHashTokenDeterministic(t *testing.T) {
	a := hashToken("refresh-token-value")
	b := hashToken("refresh-token-value")
	c := hashToken("different")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}
