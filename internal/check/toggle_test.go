package check_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitecheck/internal/check"
	"sitecheck/internal/check/checktest"
)

const card = ".step-circle-container"

func TestToggleRoundTrip(t *testing.T) {
	for _, initial := range []bool{false, true} {
		el := &checktest.Element{Visible: true, TapToggles: check.FlippedClass,
			Classes: map[string]bool{check.FlippedClass: initial}}
		page := checktest.NewPage().Add(card, el)

		first, err := check.Toggle(page, card, check.FlippedClass, time.Second)
		require.NoError(t, err)
		second, err := check.Toggle(page, card, check.FlippedClass, time.Second)
		require.NoError(t, err)

		assert.True(t, first.Changed())
		assert.Equal(t, initial, first.Before)
		assert.True(t, check.RoundTrip(first, second))
		assert.Equal(t, initial, second.After)
		assert.Len(t, page.Tapped, 2)
	}
}

func TestToggleUnresponsiveCard(t *testing.T) {
	page := checktest.NewPage().Add(card, &checktest.Element{Visible: true})

	first, err := check.Toggle(page, card, check.FlippedClass, 10*time.Millisecond)
	require.NoError(t, err)
	second, err := check.Toggle(page, card, check.FlippedClass, 10*time.Millisecond)
	require.NoError(t, err)

	assert.False(t, first.Changed())
	assert.False(t, check.RoundTrip(first, second))
}

func TestToggleTapError(t *testing.T) {
	page := checktest.NewPage().Add(card, &checktest.Element{Visible: true})
	page.TapErr = errors.New("element is not attached")

	res, err := check.Toggle(page, card, check.FlippedClass, time.Second)
	require.Error(t, err)
	assert.False(t, res.Changed())
}

func TestToggleMissingCard(t *testing.T) {
	_, err := check.Toggle(checktest.NewPage(), card, check.FlippedClass, time.Second)
	require.Error(t, err)
}

func TestRoundTripRequiresTwoChanges(t *testing.T) {
	changed := check.ToggleResult{Before: false, After: true}
	back := check.ToggleResult{Before: true, After: false}
	stuck := check.ToggleResult{Before: true, After: true}

	assert.True(t, check.RoundTrip(changed, back))
	assert.False(t, check.RoundTrip(changed, stuck))
	assert.False(t, check.RoundTrip(stuck, back))
	assert.Equal(t, "flipped", check.Describe(true))
	assert.Equal(t, "not flipped", check.Describe(false))
}
