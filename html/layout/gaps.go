package layout

// Gutters between tracks.
//
// Gaps only exist between two visible tracks: collapsed auto-fit tracks
// neither receive a gap nor separate their neighbours by two gaps.
// Gaps are never part of the space distributed to flexible tracks.

// resolveGap returns the used gap; a percentage of an indefinite axis is 0.
func resolveGap(gap Length, size AxisSize) Fl {
	v, _ := gap.Resolve(size)
	return v
}

func visibleTracks(tracks []GridTrack) int {
	n := 0
	for i := range tracks {
		if !tracks[i].Collapsed {
			n++
		}
	}
	return n
}

// totalGaps returns the space taken by the gutters of tracks.
func totalGaps(tracks []GridTrack, gap Fl) Fl {
	n := visibleTracks(tracks)
	if n <= 1 {
		return 0
	}
	return Fl(n-1) * gap
}

// spanGaps returns the gutters inside the area [start, end).
func spanGaps(tracks []GridTrack, start, end int, gap Fl) Fl {
	return totalGaps(tracks[start:end], gap)
}

// accumulateOffsets returns the offset of each track, as the running sum
// of the track sizes and the gaps, starting at start.
// between is an additional space inserted between visible tracks,
// used by content distribution.
// The returned extent is the total length, from start to the end of the last track.
func accumulateOffsets(sizes []Fl, collapsed []bool, gap, start, between Fl) (offsets []Fl, extent Fl) {
	offsets = make([]Fl, len(sizes))
	position := start
	seenVisible := false
	for i, size := range sizes {
		if collapsed[i] {
			offsets[i] = position
			continue
		}
		if seenVisible {
			position += gap + between
		}
		seenVisible = true
		offsets[i] = position
		position += size
	}
	return offsets, position - start
}
