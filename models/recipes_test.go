package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecipeID(t *testing.T) {
	assert.Equal(t, "abc", Recipe{IDField: "abc"}.ID())
	assert.Empty(t, Recipe{"name": "Soup"}.ID())
	assert.Empty(t, Recipe{IDField: 42}.ID())
}

func TestRecipeWithoutID(t *testing.T) {
	r := Recipe{IDField: "abc", "name": "Soup"}
	out := r.WithoutID()

	assert.Equal(t, Recipe{"name": "Soup"}, out)
	assert.Equal(t, "abc", r.ID(), "original is left untouched")
}
