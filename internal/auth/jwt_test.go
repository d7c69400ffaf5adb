package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retypegame/retype-api/internal/models"
)

func TestIssueAndParse(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	user := models.PublicUser{
		ID:           "u-1",
		Username:     "neo",
		Level:        3,
		Country:      "US",
		Rank:         7,
		BestWPM:      92,
		BestAccuracy: 98.5,
		TotalTests:   41,
		Streak:       5,
	}

	token, err := m.Issue(user)
	require.NoError(t, err)

	got, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, user, *got)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", time.Hour).Issue(models.PublicUser{ID: "u-1"})
	require.NoError(t, err)

	_, err = NewManager("secret-b", time.Hour).Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	m := NewManager("secret", -time.Minute)
	token, err := m.Issue(models.PublicUser{ID: "u-1"})
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	m := NewManager("secret", time.Hour)
	_, err := m.Parse("not.a.token")
	assert.Error(t, err)
}
