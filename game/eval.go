package game

// Region counts the points controlled by force under area scoring: its stones plus
// the empty regions bordered by its stones only.
func (b *Board) Region(force Force) int {
	region := 0
	seen := make([]bool, len(b.cells))
	var buf [4]int
	for point, cell := range b.cells {
		if cell == force {
			region++
			continue
		}
		if cell != Empty || seen[point] {
			continue
		}

		// Flood-fill the empty region and record which colors border it
		seen[point] = true
		area := []int{point}
		borders := Empty
		mixed := false
		for i := 0; i < len(area); i++ {
			for _, n := range b.neighbors(area[i], &buf) {
				switch c := b.cells[n]; c {
				case Empty:
					if !seen[n] {
						seen[n] = true
						area = append(area, n)
					}
				default:
					if borders == Empty {
						borders = c
					} else if borders != c {
						mixed = true
					}
				}
			}
		}
		if !mixed && borders == force {
			region += len(area)
		}
	}
	return region
}

func (b *Board) BlackRegion() int {
	return b.Region(Black)
}

// RegionRatio is the share of the board held by black, or its complement for
// white, so the two sides always sum to one.
func (b *Board) RegionRatio(force Force) float64 {
	ratio := float64(b.BlackRegion()) / float64(len(b.cells))
	if force == Black {
		return ratio
	}
	return 1 - ratio
}

// Score is black's area minus white's area minus komi; positive means black leads.
func (b *Board) Score(komi float64) float64 {
	return float64(b.Region(Black)-b.Region(White)) - komi
}

// Winner returns the leading side under area scoring with komi, or Empty on a tie.
func (b *Board) Winner(komi float64) Force {
	switch score := b.Score(komi); {
	case score > 0:
		return Black
	case score < 0:
		return White
	default:
		return Empty
	}
}
