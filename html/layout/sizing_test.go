package layout

import (
	"testing"

	"github.com/benoitkugler/gridlayout/utils"
	tu "github.com/benoitkugler/gridlayout/utils/testutils"
)

func newTracks(sizes ...TrackSize) []GridTrack {
	out := make([]GridTrack, len(sizes))
	for i, s := range sizes {
		out[i] = newGridTrack(X, s, false)
		out[i].Index = i
	}
	return out
}

// contentItem returns a sizing item with the given contributions,
// counting the queries.
func contentItem(start, end int, minContent, maxContent Fl, calls *int) SizingItem {
	return SizingItem{
		Span: Span{start, end},
		Contribution: func(kind ConstraintKind) Fl {
			if calls != nil {
				*calls++
			}
			if kind == MinContent {
				return minContent
			}
			return maxContent
		},
	}
}

func TestSizeAutoTrack(t *testing.T) {
	for _, test := range []struct {
		available Constraint
		exp       Fl
	}{
		{maxContentConstraint, 120},
		{minContentConstraint, 50},
		{DefiniteConstraint(100), 100},
		{DefiniteConstraint(20), 50},
		{DefiniteConstraint(500), 120},
	} {
		tracks := newTracks(Auto{})
		SizeTracks(tracks, []SizingItem{contentItem(0, 1, 50, 120, nil)}, 0, test.available)
		tu.AssertNear(t, tracks[0].BaseSize, test.exp)
	}
}

func TestContributionsAreCached(t *testing.T) {
	var calls int
	tracks := newTracks(Auto{}, Auto{})
	items := []SizingItem{contentItem(0, 2, 50, 120, &calls)}
	SizeTracks(tracks, items, 0, maxContentConstraint)
	tu.AssertEqual(t, calls, 2)
}

func TestSizeSpanningItems(t *testing.T) {
	items := func() []SizingItem {
		return []SizingItem{
			contentItem(0, 1, 30, 30, nil),
			contentItem(0, 2, 100, 200, nil),
		}
	}

	tracks := newTracks(Auto{}, Auto{})
	SizeTracks(tracks, items(), 10, maxContentConstraint)
	assertSizes(t, trackSizes(tracks), []Fl{30, 160})

	tracks = newTracks(Auto{}, Auto{})
	SizeTracks(tracks, items(), 10, minContentConstraint)
	assertSizes(t, trackSizes(tracks), []Fl{30, 60})
	tu.AssertEqual(t, tracks[1].GrowthLimit, Fl(160))
}

func TestSpanningItemsEqualDistribution(t *testing.T) {
	tracks := newTracks(MinContentTrack{}, MinContentTrack{}, px(20))
	items := []SizingItem{contentItem(0, 3, 100, 100, nil)}
	SizeTracks(tracks, items, 0, minContentConstraint)
	// the fixed track is not affected
	assertSizes(t, trackSizes(tracks), []Fl{40, 40, 20})
}

func TestSpanningItemsRespectLimits(t *testing.T) {
	// the first track is limited to 10px by its maximum
	tracks := newTracks(MinMax{Auto{}, px(10)}, Auto{})
	items := []SizingItem{contentItem(0, 2, 100, 100, nil)}
	SizeTracks(tracks, items, 0, minContentConstraint)
	assertSizes(t, trackSizes(tracks), []Fl{10, 90})
}

func TestSpanningItemsBeyondLimits(t *testing.T) {
	// every affected track is at its limit: the extra space goes beyond
	tracks := newTracks(MinMax{Auto{}, px(10)}, MinMax{Auto{}, px(20)})
	items := []SizingItem{contentItem(0, 2, 60, 60, nil)}
	SizeTracks(tracks, items, 0, minContentConstraint)
	assertSizes(t, trackSizes(tracks), []Fl{25, 35})
}

func TestFitContentTrack(t *testing.T) {
	for _, test := range []struct {
		minContent, maxContent Fl
		exp                    Fl
	}{
		{20, 300, 100},
		{20, 60, 60},
		{150, 300, 150},
	} {
		tracks := newTracks(FitContent{Px(100)})
		SizeTracks(tracks, []SizingItem{contentItem(0, 1, test.minContent, test.maxContent, nil)}, 0, maxContentConstraint)
		tu.AssertNear(t, tracks[0].BaseSize, test.exp)
	}
}

func TestItemsCrossingFlexibleTracks(t *testing.T) {
	items := []SizingItem{contentItem(0, 2, 90, 150, nil)}

	tracks := newTracks(fr(1), fr(2))
	SizeTracks(tracks, items, 0, minContentConstraint)
	assertSizes(t, trackSizes(tracks), []Fl{30, 60})

	tracks = newTracks(fr(1), fr(2))
	SizeTracks(tracks, items, 0, maxContentConstraint)
	assertSizes(t, trackSizes(tracks), []Fl{50, 100})

	// zero factors share equally
	tracks = newTracks(fr(0), fr(0))
	SizeTracks(tracks, items, 0, minContentConstraint)
	assertSizes(t, trackSizes(tracks), []Fl{45, 45})
}

func TestFlexibleTracksFreeze(t *testing.T) {
	// the content of the first track is larger than its share
	tracks := newTracks(fr(1), fr(1), fr(2))
	items := []SizingItem{contentItem(0, 1, 200, 200, nil)}
	SizeTracks(tracks, items, 0, DefiniteConstraint(400))
	assertSizes(t, trackSizes(tracks), []Fl{200, 200. / 3, 400. / 3})
}

func TestFlexFactorsBelowOne(t *testing.T) {
	// fractional factors still fill the leftover space
	tracks := newTracks(fr(0.25), fr(0.25))
	SizeTracks(tracks, nil, 0, DefiniteConstraint(400))
	assertSizes(t, trackSizes(tracks), []Fl{200, 200})

	tracks = newTracks(fr(0.5))
	SizeTracks(tracks, nil, 0, DefiniteConstraint(400))
	assertSizes(t, trackSizes(tracks), []Fl{400})

	tracks = newTracks(fr(0.2), px(100), fr(0.6))
	SizeTracks(tracks, nil, 10, DefiniteConstraint(400))
	assertSizes(t, trackSizes(tracks), []Fl{70, 100, 210})

	tracks = newTracks(fr(0), px(100))
	SizeTracks(tracks, nil, 0, DefiniteConstraint(400))
	assertSizes(t, trackSizes(tracks), []Fl{0, 100})
}

func TestFrSizeFreezeCascade(t *testing.T) {
	// each pass freezes exactly one more track
	tracks := newTracks(fr(1), fr(1), fr(1), fr(1))
	for i, base := range []Fl{40, 24, 19, 10} {
		tracks[i].BaseSize = base
	}
	frSize, passes := findFrSize(tracks, []int{0, 1, 2, 3}, 100)
	tu.AssertNear(t, frSize, 17)
	tu.AssertEqual(t, passes, 4)

	// the bound holds for any number of tracks
	for n := 1; n <= 20; n++ {
		sizes := make([]TrackSize, n)
		flexible := make([]int, n)
		for i := range sizes {
			sizes[i] = fr(1)
			flexible[i] = i
		}
		tracks := newTracks(sizes...)
		for i := range tracks {
			tracks[i].BaseSize = Fl(n-i) * Fl(n-i)
		}
		_, passes := findFrSize(tracks, flexible, Fl(n))
		if passes > n+1 {
			t.Fatalf("%d tracks: %d passes", n, passes)
		}
	}
}

func TestShareUpToLimitsCascade(t *testing.T) {
	// each pass freezes exactly one more track
	rooms := []Fl{10, 28, 31, utils.Inf}
	increases, left, passes := shareUpToLimits([]int{0, 1, 2, 3}, 100, func(i int) Fl { return rooms[i] })
	tu.AssertEqual(t, passes, 4)
	tu.AssertNear(t, left, 0)
	assertSizes(t, []Fl{increases[0], increases[1], increases[2], increases[3]}, []Fl{10, 28, 31, 31})

	// all tracks frozen: the remaining space is returned
	increases, left, passes = shareUpToLimits([]int{0, 1}, 100, func(i int) Fl { return 10 })
	tu.AssertEqual(t, passes, 1)
	tu.AssertNear(t, left, 80)
	assertSizes(t, []Fl{increases[0], increases[1]}, []Fl{10, 10})
}

func TestMaximizeProportionally(t *testing.T) {
	tracks := newTracks(Auto{}, Auto{})
	items := []SizingItem{
		contentItem(0, 1, 0, 100, nil),
		contentItem(1, 2, 0, 300, nil),
	}
	SizeTracks(tracks, items, 0, DefiniteConstraint(200))
	assertSizes(t, trackSizes(tracks), []Fl{50, 150})
}

func TestBaseSizeBelowGrowthLimit(t *testing.T) {
	tracks := newTracks(MinMax{MaxContentTrack{}, MinContentTrack{}}, Auto{}, MinMax{px(50), px(10)})
	items := []SizingItem{
		contentItem(0, 1, 10, 80, nil),
		contentItem(1, 3, 300, 400, nil),
	}
	SizeTracks(tracks, items, 0, minContentConstraint)
	for _, tr := range tracks {
		if tr.BaseSize > tr.GrowthLimit {
			t.Fatalf("track %d: base size %v above growth limit %v", tr.Index, tr.BaseSize, tr.GrowthLimit)
		}
	}
	tu.AssertEqual(t, tracks[0].BaseSize, Fl(80))
}
