package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/booksales/internal/seed"
)

func TestGenerate_DecodesAsSeed(t *testing.T) {
	records := generate(3)

	data, err := json.Marshal(records)
	require.NoError(t, err)

	decoded, err := seed.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	counts := make(map[seed.Kind]int)
	for _, rec := range decoded {
		counts[rec.Kind]++
	}

	assert.Equal(t, len(publishers), counts[seed.KindPublisher])
	assert.Equal(t, len(shops), counts[seed.KindShop])
	assert.Equal(t, len(books), counts[seed.KindBook])
	assert.Equal(t, 2*len(books), counts[seed.KindStock])
	assert.Equal(t, 3*2*len(books), counts[seed.KindSale])
}
