package tiling

import (
	"testing"

	"github.com/npillmayer/poincare"
	"github.com/stretchr/testify/assert"
)

func TestNearIndex(t *testing.T) {
	ix := newNearIndex()
	_, ok := ix.find(poincare.Origin, 1)
	assert.False(t, ok)
	a := ix.insert(poincare.P(10, 10), 0.5)
	b := ix.insert(poincare.P(12, 10), 0.5)
	assert.Equal(t, 0, a)
	assert.Equal(t, 1, b)
	id, ok := ix.find(poincare.P(10.2, 9.9), 0.5)
	assert.True(t, ok)
	assert.Equal(t, a, id)
	id, ok = ix.find(poincare.P(11.6, 10), 0.5)
	assert.True(t, ok)
	assert.Equal(t, b, id)
	_, ok = ix.find(poincare.P(11, 10), 0.5)
	assert.False(t, ok, "between both points")
	_, ok = ix.find(poincare.P(-10, -10), 0.5)
	assert.False(t, ok)
}

func TestNearIndexAcrossCells(t *testing.T) {
	ix := newNearIndex()
	// level 0 cells have integer borders
	a := ix.insert(poincare.P(0.99, -0.01), 0.3)
	id, ok := ix.find(poincare.P(1.01, 0.01), 0.3)
	assert.True(t, ok)
	assert.Equal(t, a, id)
	id, ok = ix.find(poincare.P(1.05, 0.05), 0.6)
	assert.True(t, ok, "larger query tolerance")
	assert.Equal(t, a, id)
	id, ok = ix.find(poincare.P(0.95, 0), 0.16)
	assert.True(t, ok, "smaller query tolerance")
	assert.Equal(t, a, id)
}

func TestNearIndexPicksNearest(t *testing.T) {
	ix := newNearIndex()
	ix.insert(poincare.P(5, 5), 1)
	near := ix.insert(poincare.P(5.3, 5), 1)
	id, ok := ix.find(poincare.P(5.25, 5), 1)
	assert.True(t, ok)
	assert.Equal(t, near, id)
}
