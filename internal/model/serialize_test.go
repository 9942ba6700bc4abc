package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// keysOf encodes v and returns the set of top-level JSON keys.
func keysOf(t *testing.T, v any) map[string]any {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	return m
}

func TestSerializeUser_NeverIncludesPassword(t *testing.T) {
	cases := []User{
		{ID: "u1", Email: "luke@tatooine.sw", PasswordHash: "$2a$12$abc", IsActive: true, CreatedAt: time.Now()},
		{ID: "u2", Email: "", PasswordHash: ""},
		{ID: "u3", Email: "vader@deathstar.sw", PasswordHash: "plaintext-would-be-bad", IsActive: false},
	}

	for _, u := range cases {
		t.Run(u.ID, func(t *testing.T) {
			keys := keysOf(t, SerializeUser(u))

			assert.Len(t, keys, 2)
			assert.Equal(t, u.ID, keys["id"])
			assert.Equal(t, u.Email, keys["email"])
			assert.NotContains(t, keys, "password")
			assert.NotContains(t, keys, "password_hash")
			assert.NotContains(t, keys, "is_active")
		})
	}
}

func TestSerializeFavorite_AllowList(t *testing.T) {
	keys := keysOf(t, SerializeFavorite(Favorite{
		ID: "f1", UserID: "u1", Name: "Millennium Falcon", CreatedAt: time.Now(),
	}))

	assert.Equal(t, map[string]any{"id": "f1", "user_id": "u1", "name": "Millennium Falcon"}, keys)
}

func TestSerializeCharacter_AllFields(t *testing.T) {
	c := Character{
		ID: "c1", Name: "Luke Skywalker", Gender: "male", Height: 172,
		BirthYear: "19BBY", HairColor: "blond", EyeColor: "blue", SkinColor: "fair",
		CreatedAt: time.Now(),
	}
	keys := keysOf(t, SerializeCharacter(c))

	assert.Len(t, keys, 8)
	assert.Equal(t, "Luke Skywalker", keys["name"])
	assert.Equal(t, float64(172), keys["height"])
	assert.Equal(t, "19BBY", keys["birth_year"])
	assert.Equal(t, "fair", keys["skin_color"])
	assert.NotContains(t, keys, "created_at")
}

func TestSerializePlanet_AllFields(t *testing.T) {
	p := Planet{
		ID: "p1", Name: "Tatooine", Terrain: "desert", Climate: "arid",
		Population: 200000, OrbitalPeriod: 304, RotationPeriod: 23, Diameter: 10465,
	}
	keys := keysOf(t, SerializePlanet(p))

	assert.Len(t, keys, 8)
	assert.Equal(t, float64(200000), keys["population"])
	assert.Equal(t, float64(304), keys["orbital_period"])
	assert.Equal(t, float64(23), keys["rotation_period"])
	assert.Equal(t, float64(10465), keys["diameter"])
}

func TestSerializeLists_EmptyIsNotNull(t *testing.T) {
	tests := []struct {
		name string
		v    any
	}{
		{"users", SerializeUsers(nil)},
		{"favorites", SerializeFavorites(nil)},
		{"characters", SerializeCharacters(nil)},
		{"planets", SerializePlanets(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := json.Marshal(tt.v)
			require.NoError(t, err)
			assert.Equal(t, "[]", string(raw))
		})
	}
}

func TestRecord_RoundTrip(t *testing.T) {
	c := Character{Name: "Leia Organa", Gender: "female", Height: 150, BirthYear: "19BBY",
		HairColor: "brown", EyeColor: "brown", SkinColor: "light"}
	assert.Equal(t, c, SerializeCharacter(c).Record())

	p := Planet{Name: "Hoth", Terrain: "tundra", Climate: "frozen", Population: 0,
		OrbitalPeriod: 549, RotationPeriod: 23, Diameter: 7200}
	assert.Equal(t, p, SerializePlanet(p).Record())
}
