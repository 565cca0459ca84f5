package store

import (
	"strings"

	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/model"
)

// EncodeList flattens a list into the comma-delimited text stored in the
// features and tags columns.
func EncodeList(values []string) string {
	return strings.Join(values, ",")
}

// DecodeList splits the stored text back into a list, dropping empties.
func DecodeList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// NormalizeWeights applies the default weight of 1 wherever a profile leaves
// a ranking weight unset.
func NormalizeWeights(u *model.User) {
	if u.WeighedLocation <= 0 {
		u.WeighedLocation = 1
	}
	if u.WeighedType <= 0 {
		u.WeighedType = 1
	}
	if u.WeighedFeatures <= 0 {
		u.WeighedFeatures = 1
	}
	if u.WeighedPrice <= 0 {
		u.WeighedPrice = 1
	}
}
