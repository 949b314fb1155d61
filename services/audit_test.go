package services

import (
	"testing"

	"pubregistry/models"

	"github.com/stretchr/testify/assert"
)

func TestApplyAbstractEdit(t *testing.T) {
	tests := []struct {
		name    string
		current string
		edit    models.AbstractEdit
		want    string
		wantErr bool
	}{
		{name: "set replaces", current: "old", edit: models.AbstractEdit{Op: "set", Text: "new"}, want: "new"},
		{name: "prepend", current: "world", edit: models.AbstractEdit{Op: "prepend", Text: "hello "}, want: "hello world"},
		{name: "append", current: "hello", edit: models.AbstractEdit{Op: "append", Text: " world"}, want: "hello world"},
		{name: "delete substring", current: "a quick quick fox", edit: models.AbstractEdit{Op: "delete", Text: "quick "}, want: "a fox"},
		{name: "delete empty text", current: "abc", edit: models.AbstractEdit{Op: "delete"}, wantErr: true},
		{name: "delete range", current: "abcdef", edit: models.AbstractEdit{Op: "delete_range", From: 1, To: 4}, want: "aef"},
		{name: "delete range clamped", current: "abc", edit: models.AbstractEdit{Op: "delete_range", From: 1, To: 100}, want: "a"},
		{name: "delete range inverted", current: "abc", edit: models.AbstractEdit{Op: "delete_range", From: 2, To: 1}, wantErr: true},
		{name: "unknown op", current: "abc", edit: models.AbstractEdit{Op: "rotate"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := applyAbstractEdit(tt.current, tt.edit)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDiffEntriesSkipsUnchangedFields(t *testing.T) {
	before := map[string]string{"title": "A", "year": "2020", "abstract": ""}
	next := map[string]string{"title": "A", "year": "2021", "abstract": ""}

	entries := diffEntries(7, 3, before, next)

	assert.Len(t, entries, 1)
	assert.Equal(t, uint(7), entries[0].PublicationID)
	assert.Equal(t, "year", entries[0].Field)
	assert.Equal(t, "2020", entries[0].OldValue)
	assert.Equal(t, "2021", entries[0].NewValue)
	assert.Equal(t, uint(3), entries[0].ActorID)
}

func TestDiffEntriesDeterministicOrder(t *testing.T) {
	before := map[string]string{"title": "A", "year": "2020", "link_url": ""}
	next := map[string]string{"year": "2021", "title": "B", "link_url": "https://x"}

	first := diffEntries(1, 1, before, next)
	second := diffEntries(1, 1, before, next)

	assert.Equal(t, first, second)
	assert.Equal(t, "link_url", first[0].Field)
	assert.Equal(t, "title", first[1].Field)
	assert.Equal(t, "year", first[2].Field)
}

func TestProjectionNormalizesNil(t *testing.T) {
	pub := &models.Publication{Level: models.LevelNational}
	projection := publicationProjection(pub)

	assert.Equal(t, "", projection["title"])
	assert.Equal(t, "", projection["year"])
	assert.Equal(t, "", projection["abstract"])
	assert.Equal(t, "false", projection["has_file"])

	title := "T"
	year := 1999
	pub.Title = &title
	pub.Year = &year
	projection = publicationProjection(pub)
	assert.Equal(t, "T", projection["title"])
	assert.Equal(t, "1999", projection["year"])
}
