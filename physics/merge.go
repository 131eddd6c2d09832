package physics

import (
	"sort"

	"github.com/milk9111/findthekeys/common"
)

const mergeEpsilon = 1e-6

// MergeRows joins rects that share a bottom and height and touch or
// overlap horizontally. A run of ground tiles becomes one box, which keeps
// the player from catching on the seams between tiles.
func MergeRows(rects []common.Rect) []common.Rect {
	if len(rects) == 0 {
		return nil
	}
	sorted := append([]common.Rect(nil), rects...)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		if a.Height != b.Height {
			return a.Height < b.Height
		}
		return a.X < b.X
	})

	out := make([]common.Rect, 0, len(sorted))
	cur := sorted[0]
	for _, r := range sorted[1:] {
		sameRow := r.Y == cur.Y && r.Height == cur.Height
		if sameRow && r.X <= cur.Right()+mergeEpsilon {
			if r.Right() > cur.Right() {
				cur.Width = r.Right() - cur.X
			}
			continue
		}
		out = append(out, cur)
		cur = r
	}
	return append(out, cur)
}
