package store

import (
	"reflect"
	"testing"

	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/model"
)

func TestDecodeList(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"wifi", []string{"wifi"}},
		{"wifi,hot tub,parking", []string{"wifi", "hot tub", "parking"}},
		{" wifi , , parking,", []string{"wifi", "parking"}},
	}
	for _, tc := range cases {
		if got := DecodeList(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("DecodeList(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeWeights(t *testing.T) {
	u := model.User{WeighedLocation: 0, WeighedType: -2, WeighedFeatures: 3, WeighedPrice: 0}
	NormalizeWeights(&u)
	if u.WeighedLocation != 1 || u.WeighedType != 1 || u.WeighedPrice != 1 {
		t.Fatalf("unset weights not defaulted: %+v", u)
	}
	if u.WeighedFeatures != 3 {
		t.Fatalf("explicit weight overwritten: %+v", u)
	}
}
