package responses

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeList_Envelopes(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		paths    []string
		ids      []int64
		envelope Envelope
	}{
		{"wrapped", `{"products":[{"id":1,"title":"A"},{"id":2,"title":"B"}]}`, []string{"products"}, []int64{1, 2}, "products"},
		{"bare", `[{"id":3,"title":"C"}]`, []string{"products"}, []int64{3}, EnvelopeBare},
		{"nested", `{"blog":{"articles":[{"id":7,"title":"T"}]}}`, []string{"articles", "blog.articles"}, []int64{7}, "blog.articles"},
		{"unknown object", `{"data":[{"id":1}]}`, []string{"products"}, []int64{}, EnvelopeUnknown},
		{"wrapped non-array", `{"products":{"id":1}}`, []string{"products"}, []int64{}, EnvelopeUnknown},
		{"scalar", `"oops"`, []string{"products"}, []int64{}, EnvelopeUnknown},
		{"empty", ``, []string{"products"}, []int64{}, EnvelopeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := DecodeList[RawArticle]([]byte(tt.payload), tt.paths...)
			ids := []int64{}
			for _, item := range res.Items {
				ids = append(ids, item.ID.Int64())
			}
			assert.Equal(t, tt.ids, ids)
			assert.Equal(t, tt.envelope, res.Envelope)
			assert.NotNil(t, res.Items)
		})
	}
}

func TestDecodeList_SkipsUndecodableElements(t *testing.T) {
	res := DecodeList[RawProduct]([]byte(`[{"id":1,"title":"A"}, 42, {"id":2,"name":"B"}]`), "products")
	require.Len(t, res.Items, 2)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, ProductShapeHaravan, res.Items[0].Shape)
	assert.Equal(t, ProductShapeLegacy, res.Items[1].Shape)
}

func TestDecodeList_Meta(t *testing.T) {
	res := DecodeList[RawProduct]([]byte(`{"products":[],"total":"12","total_pages":3}`), "products")
	_, ok := NumberField(res.Meta, "total")
	assert.False(t, ok, "string totals are not numbers")
	pages, ok := NumberField(res.Meta, "total_pages")
	assert.True(t, ok)
	assert.Equal(t, 3, pages)
}

func TestDecodeMergedList(t *testing.T) {
	res := DecodeMergedList[RawCollection]([]byte(`{"custom_collections":[{"id":1}],"smart_collections":[{"id":2}]}`),
		"collections", "custom_collections", "smart_collections")
	require.Len(t, res.Items, 2)
	assert.Equal(t, Envelope("custom_collections+smart_collections"), res.Envelope)

	res = DecodeMergedList[RawCollection]([]byte(`[{"id":1}]`), "collections")
	assert.False(t, res.Recognized())
}

func TestDecodeObject(t *testing.T) {
	p, env, ok := DecodeObject[RawProduct]([]byte(`{"product":{"id":5,"title":"X"}}`), "product")
	require.True(t, ok)
	assert.Equal(t, Envelope("product"), env)
	assert.Equal(t, int64(5), p.Haravan.ID.Int64())

	p, env, ok = DecodeObject[RawProduct]([]byte(`{"id":6,"name":"Y"}`), "product")
	require.True(t, ok)
	assert.Equal(t, EnvelopeBare, env)
	assert.Equal(t, ProductShapeLegacy, p.Shape)

	_, _, ok = DecodeObject[RawProduct]([]byte(`[1,2]`), "product")
	assert.False(t, ok)
}

func TestDecodeCount(t *testing.T) {
	n, env, ok := DecodeCount([]byte(`{"count": 14}`), "count")
	assert.True(t, ok)
	assert.Equal(t, int64(14), n)
	assert.Equal(t, Envelope("count"), env)

	n, env, ok = DecodeCount([]byte(`9`), "count")
	assert.True(t, ok)
	assert.Equal(t, int64(9), n)
	assert.Equal(t, EnvelopeBare, env)

	_, _, ok = DecodeCount([]byte(`{"total": 9}`), "count")
	assert.False(t, ok)
	_, _, ok = DecodeCount([]byte(`"9"`), "count")
	assert.False(t, ok)
}
