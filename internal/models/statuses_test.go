package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJobStatus(t *testing.T) {
	t.Parallel()

	cases := map[string]JobStatus{
		"open":        JobStatusOpen,
		"Open":        JobStatusOpen,
		"  open  ":    JobStatusOpen,
		"in_progress": JobStatusInProgress,
		"In Progress": JobStatusInProgress,
		"in-progress": JobStatusInProgress,
		"COMPLETED":   JobStatusCompleted,
		"closed":      JobStatusClosed,
		"reopened":    JobStatusReopened,
	}

	for raw, want := range cases {
		got, ok := ParseJobStatus(raw)
		assert.True(t, ok, "expected %q to parse", raw)
		assert.Equal(t, want, got)
	}

	for _, raw := range []string{"", "done", "pending", "open now"} {
		_, ok := ParseJobStatus(raw)
		assert.False(t, ok, "expected %q to be rejected", raw)
	}
}

func TestParseQuoteStatus(t *testing.T) {
	t.Parallel()

	got, ok := ParseQuoteStatus("Accepted")
	assert.True(t, ok)
	assert.Equal(t, QuoteStatusAccepted, got)

	got, ok = ParseQuoteStatus(" rejected ")
	assert.True(t, ok)
	assert.Equal(t, QuoteStatusRejected, got)

	// Only the two decision values are valid input.
	for _, raw := range []string{"pending", "accept", ""} {
		_, ok := ParseQuoteStatus(raw)
		assert.False(t, ok, "expected %q to be rejected", raw)
	}
}

func TestCloneForReopen(t *testing.T) {
	t.Parallel()

	proID := "pro-1"
	quoteID := "quote-1"
	rating := 4
	comment := "fine"
	image := "https://cdn.example.com/a.jpg"

	original := &Job{
		BaseModel:        BaseModel{ID: "job-1"},
		ClientID:         "client-1",
		Title:            "Fix the boiler",
		Description:      "No hot water",
		ProfessionNeeded: "plumber",
		Status:           JobStatusCompleted,
		ProfessionalID:   &proID,
		AcceptedQuoteID:  &quoteID,
		ImageURL:         &image,
		Rating:           &rating,
		Comment:          &comment,
	}

	clone := original.CloneForReopen()

	// Descriptive fields carry over.
	assert.Equal(t, original.ClientID, clone.ClientID)
	assert.Equal(t, original.Title, clone.Title)
	assert.Equal(t, original.Description, clone.Description)
	assert.Equal(t, original.ProfessionNeeded, clone.ProfessionNeeded)
	assert.Equal(t, original.ImageURL, clone.ImageURL)

	// Assignment and review state do not.
	assert.Equal(t, JobStatusOpen, clone.Status)
	assert.Empty(t, clone.ID)
	assert.Nil(t, clone.ProfessionalID)
	assert.Nil(t, clone.AcceptedQuoteID)
	assert.Nil(t, clone.Rating)
	assert.Nil(t, clone.Comment)

	require.NotNil(t, clone.ReopenedFromJobID)
	assert.Equal(t, "job-1", *clone.ReopenedFromJobID)
}
