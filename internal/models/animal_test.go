package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "bella", Slugify("Bella"))
	assert.Equal(t, "mr-chickens", Slugify("Mr. Chickens"))
	assert.Equal(t, "daisy-the-2nd", Slugify("  Daisy the 2nd!  "))
	assert.Equal(t, "", Slugify("???"))
}

func TestImageOrPlaceholder(t *testing.T) {
	a := Animal{ImageURL: "https://res.cloudinary.com/farm/bella.jpg"}
	assert.Equal(t, "https://res.cloudinary.com/farm/bella.jpg", a.ImageOrPlaceholder())

	a = Animal{}
	assert.Equal(t, placeholderImage, a.ImageOrPlaceholder())
}

func TestDeletionRequestTransitions(t *testing.T) {
	now := time.Now()

	r := UserDeletionRequest{Status: DeletionPending}
	assert.NoError(t, r.Transition(DeletionProcessed, now))
	if assert.NotNil(t, r.ProcessedAt) {
		assert.Equal(t, now, *r.ProcessedAt)
	}
	assert.Error(t, r.Transition(DeletionCancelled, now))
	assert.Error(t, r.Transition(DeletionPending, now))

	r = UserDeletionRequest{Status: DeletionPending}
	assert.NoError(t, r.Transition(DeletionCancelled, now))
	assert.Nil(t, r.ProcessedAt)
	assert.Error(t, r.Transition(DeletionProcessed, now))
}
