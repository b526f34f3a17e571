package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anonsum/anonsum/internal/config"
)

func TestBuild(t *testing.T) {
	cfg := config.AnonymizeConfig{
		Organizations: []string{"Acme Corp", "Globex"},
		Projects:      []string{"Phoenix"},
		People:        []string{"Jane Doe", "John Smith"},
	}

	reg, err := Build(cfg)
	require.NoError(t, err)
	require.Equal(t, 5, reg.Len())

	entries := reg.Entries()
	expected := []Entry{
		{CategoryOrganization, "Acme Corp", "[ORG_1]"},
		{CategoryOrganization, "Globex", "[ORG_2]"},
		{CategoryProject, "Phoenix", "[PROJECT_1]"},
		{CategoryPerson, "Jane Doe", "[PERSON_1]"},
		{CategoryPerson, "John Smith", "[PERSON_2]"},
	}
	assert.Equal(t, expected, entries)

	counts := reg.CountByCategory()
	assert.Equal(t, 2, counts[CategoryOrganization])
	assert.Equal(t, 1, counts[CategoryProject])
	assert.Equal(t, 2, counts[CategoryPerson])
}

func TestBuildDeterministic(t *testing.T) {
	cfg := config.AnonymizeConfig{
		Organizations: []string{"Acme Corp"},
		Projects:      []string{"Phoenix", "Hydra"},
		People:        []string{"Jane Doe"},
	}

	first, err := Build(cfg)
	require.NoError(t, err)
	second, err := Build(cfg)
	require.NoError(t, err)

	assert.Equal(t, first.Entries(), second.Entries())
}

func TestBuildValidation(t *testing.T) {
	t.Run("empty name", func(t *testing.T) {
		_, err := Build(config.AnonymizeConfig{Projects: []string{"Phoenix", "  "}})
		require.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("duplicate within category", func(t *testing.T) {
		_, err := Build(config.AnonymizeConfig{People: []string{"Jane Doe", "jane doe"}})
		require.ErrorIs(t, err, ErrDuplicateName)
	})

	t.Run("duplicate across categories is allowed", func(t *testing.T) {
		reg, err := Build(config.AnonymizeConfig{
			Organizations: []string{"Phoenix"},
			Projects:      []string{"Phoenix"},
		})
		require.NoError(t, err)
		require.Equal(t, 2, reg.Len())

		org, ok := reg.Lookup("[ORG_1]")
		require.True(t, ok)
		proj, ok := reg.Lookup("[PROJECT_1]")
		require.True(t, ok)
		assert.Equal(t, org.Name, proj.Name)
		assert.NotEqual(t, org.Placeholder, proj.Placeholder)
	})

	t.Run("empty config builds an empty registry", func(t *testing.T) {
		reg, err := Build(config.AnonymizeConfig{})
		require.NoError(t, err)
		assert.Equal(t, 0, reg.Len())
	})
}

func TestBuildTrimsNames(t *testing.T) {
	reg, err := Build(config.AnonymizeConfig{Organizations: []string{"  Acme Corp  "}})
	require.NoError(t, err)

	entry, ok := reg.Lookup("[ORG_1]")
	require.True(t, ok)
	assert.Equal(t, "Acme Corp", entry.Name)
}

func TestLookupUnknownPlaceholder(t *testing.T) {
	reg, err := Build(config.AnonymizeConfig{Organizations: []string{"Acme Corp"}})
	require.NoError(t, err)

	_, ok := reg.Lookup("[ORG_99]")
	assert.False(t, ok)
	_, ok = reg.Lookup("[WIDGET_1]")
	assert.False(t, ok)
}
