package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeDoc struct {
	ID    DocID
	Value int
}

func TestStripIDClearsEveryElement(t *testing.T) {
	id, _ := ParseDocID("0123456789abcdef01234567")
	docs := []fakeDoc{{ID: id, Value: 1}, {ID: id, Value: 2}}

	out := StripID(docs, func(d *fakeDoc) { d.ID = DocID{} })

	for _, d := range out {
		assert.Equal(t, DocID{}, d.ID)
	}
	assert.Equal(t, 1, out[0].Value)
	assert.Equal(t, 2, out[1].Value)
}

func TestPromoteIDToMetaAppliesCustomPromoter(t *testing.T) {
	id, _ := ParseDocID("0123456789abcdef01234567")
	docs := []fakeDoc{{ID: id}}

	var captured []DocID
	out := PromoteIDToMeta(docs, func(d *fakeDoc) {
		captured = append(captured, d.ID)
		d.ID = DocID{}
	})

	assert.Equal(t, []DocID{id}, captured)
	assert.Equal(t, DocID{}, out[0].ID)
}
