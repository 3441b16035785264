package responses

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexInt(t *testing.T) {
	cases := map[string]int64{
		`12`:       12,
		`"250000"`: 250000,
		`199.6`:    200,
		`"abc"`:    0,
		`null`:     0,
		`true`:     0,
	}
	for payload, want := range cases {
		var v FlexInt
		require.NoError(t, json.Unmarshal([]byte(payload), &v), payload)
		assert.Equal(t, want, v.Int64(), payload)
	}
}

func TestFlexTags(t *testing.T) {
	var tags FlexTags
	require.NoError(t, json.Unmarshal([]byte(`"sale, new,,hot "`), &tags))
	assert.Equal(t, FlexTags{"sale", "new", "hot"}, tags)
	assert.Equal(t, "sale, new, hot", tags.Joined())

	require.NoError(t, json.Unmarshal([]byte(`["a", 3, "b"]`), &tags))
	assert.Equal(t, FlexTags{"a", "b"}, tags)

	require.NoError(t, json.Unmarshal([]byte(`{"x":1}`), &tags))
	assert.Equal(t, FlexTags{}, tags)
}

func TestRawArticle_Unions(t *testing.T) {
	var a RawArticle
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": "10",
		"author": {"display_name": "Lan", "image": "lan.png"},
		"image": {"src": "cover.jpg"},
		"published": "yes"
	}`), &a))
	assert.Equal(t, int64(10), a.ID.Int64())
	assert.Equal(t, AuthorObject, a.Author.Kind)
	assert.Equal(t, "Lan", a.Author.Object.DisplayName.String())
	assert.Equal(t, ImageObject, a.Image.Kind)
	assert.Equal(t, "cover.jpg", a.Image.Src)
	assert.False(t, a.Published.Set)

	var b RawArticle
	require.NoError(t, json.Unmarshal([]byte(`{"author": "Minh", "image": "x.jpg", "published": false}`), &b))
	assert.Equal(t, AuthorString, b.Author.Kind)
	assert.Equal(t, "Minh", b.Author.Name)
	assert.Equal(t, ImageString, b.Image.Kind)
	assert.True(t, b.Published.Set)
	assert.False(t, b.Published.Value)

	var c RawArticle
	require.NoError(t, json.Unmarshal([]byte(`{"author": null}`), &c))
	assert.Equal(t, AuthorAbsent, c.Author.Kind)
	assert.Equal(t, ImageAbsent, c.Image.Kind)
}

func TestRawProduct_Shapes(t *testing.T) {
	var p RawProduct
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"variants":[{"price":"1000"}],"images":["a.jpg",{"src":"b.jpg"}]}`), &p))
	require.Equal(t, ProductShapeHaravan, p.Shape)
	assert.Equal(t, int64(1000), p.Haravan.Variants[0].Price.Int64())
	require.Len(t, p.Haravan.Images, 2)
	assert.Equal(t, "b.jpg", p.Haravan.Images[1].Src.String())

	require.NoError(t, json.Unmarshal([]byte(`{"id":2,"name":"Old","price":5}`), &p))
	assert.Equal(t, ProductShapeLegacy, p.Shape)
	assert.Equal(t, "Old", p.Legacy.Name.String())

	require.NoError(t, json.Unmarshal([]byte(`{"id":3}`), &p))
	assert.Equal(t, ProductShapeUnknown, p.Shape)
	assert.Equal(t, "unknown", p.Shape.String())

	assert.Error(t, json.Unmarshal([]byte(`"str"`), &p))
}

func TestOptionalBool(t *testing.T) {
	var v HaravanVariant
	require.NoError(t, json.Unmarshal([]byte(`{"available":"yes"}`), &v))
	assert.False(t, v.Available.Set)

	require.NoError(t, json.Unmarshal([]byte(`{"available":true}`), &v))
	assert.True(t, v.Available.Set)
	assert.True(t, v.Available.Value)
}
