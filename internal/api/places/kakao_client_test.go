package places

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKakaoDocument_ToPlace(t *testing.T) {
	doc := kakaoDocument{
		ID:           "26338954",
		PlaceName:    "성수동 카페",
		CategoryName: "음식점 > 카페 > 커피전문점",
		AddressName:  "서울 성동구 성수동",
		X:            "127.055",
		Y:            "37.544",
	}

	p := doc.toPlace("카페")
	assert.Equal(t, "26338954", p.ID)
	assert.Equal(t, "커피전문점", p.Category, "keeps the leaf of the category path")
	assert.Equal(t, 37.544, p.Lat)
	assert.Equal(t, 127.055, p.Lng)
	assert.True(t, p.IsIndoor)
	assert.False(t, p.IsOutdoor)
}

func TestKakaoDocument_StableSyntheticRating(t *testing.T) {
	doc := kakaoDocument{ID: "26338954", PlaceName: "성수동 카페", X: "127.0", Y: "37.5"}

	first := doc.toPlace("카페")
	second := doc.toPlace("카페")
	assert.Equal(t, first, second)

	assert.GreaterOrEqual(t, first.Rating, 4.0)
	assert.LessOrEqual(t, first.Rating, 4.5)
	assert.GreaterOrEqual(t, first.ReviewCount, 10)
	assert.Less(t, first.ReviewCount, 110)
}
