package match

import (
	"sort"

	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/model"
)

// Recommend scores every entry with s and returns the top n in descending
// score order. Equal scores keep catalog order. n <= 0 disables the cut.
func Recommend(entries []Entry, s Scorer, n int) []model.ScoredProperty {
	out := make([]model.ScoredProperty, 0, len(entries))
	for _, e := range entries {
		out = append(out, s.Score(e))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
