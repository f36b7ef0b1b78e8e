package performance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func teamSize(n int) *int { return &n }

func TestValidateTeamIndividual(t *testing.T) {
	res := ValidateTeam(nil, nil)
	assert.True(t, res.IsValid)
	assert.Equal(t, 0, res.RequiredTeamSize)

	res = ValidateTeam(teamSize(0), []string{})
	assert.True(t, res.IsValid)

	res = ValidateTeam(nil, []string{"a1"})
	assert.False(t, res.IsValid)
	assert.Contains(t, res.Errors, *ErrTeamMembersNotAllowed)
}

func TestValidateTeamCount(t *testing.T) {
	res := ValidateTeam(teamSize(4), []string{"a1", "a2", "a3", "a4"})
	assert.True(t, res.IsValid)
	assert.Equal(t, 4, res.RequiredTeamSize)
	assert.Equal(t, 4, res.ProvidedTeamSize)

	res = ValidateTeam(teamSize(4), nil)
	require.False(t, res.IsValid)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0].Message, "required")

	res = ValidateTeam(teamSize(4), []string{"a1", "a2", "a3"})
	require.False(t, res.IsValid)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0].Message, "exactly 4")
	assert.Equal(t, 3, res.ProvidedTeamSize)

	// missing and wrong count read differently
	missing := ValidateTeam(teamSize(2), nil).Errors[0].Message
	wrong := ValidateTeam(teamSize(2), []string{"a1"}).Errors[0].Message
	assert.NotEqual(t, missing, wrong)
}

func TestValidateTeamUnique(t *testing.T) {
	res := ValidateTeam(teamSize(4), []string{"a1", "a2", "a2", "a4"})
	assert.False(t, res.IsValid)
	assert.Contains(t, res.Errors, *ErrTeamMembersNotUnique)
	assert.Len(t, res.Errors, 1)

	res = ValidateTeam(teamSize(3), []string{"a1", "a1"})
	assert.Len(t, res.Errors, 2)
}

func TestValidateTeamBlankMember(t *testing.T) {
	res := ValidateTeam(teamSize(2), []string{"a1", " "})
	assert.False(t, res.IsValid)
	assert.Contains(t, res.Errors, *ErrTeamMemberBlank)
}
