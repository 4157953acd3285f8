package engine

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"

	"uctgo/game"
)

// Render draws the board for the terminal, highlighting the last move.
func Render(b *game.Board, last game.Move) string {
	return render(b, last, termenv.EnvColorProfile())
}

func render(b *game.Board, last game.Move, profile termenv.Profile) string {
	size := b.Size()
	black := profile.Color("#e0e0e0")
	white := profile.Color("#ff8700")
	marker := profile.Color("#ff0000")

	var sb strings.Builder
	for row := 0; row < size; row++ {
		fmt.Fprintf(&sb, "%2d ", size-row)
		for col := 0; col < size; col++ {
			move := game.NewMove(size, row, col)
			var point termenv.Style
			switch b.At(move) {
			case game.Black:
				point = profile.String("X").Foreground(black).Bold()
			case game.White:
				point = profile.String("O").Foreground(white).Bold()
			default:
				point = profile.String(".").Faint()
			}
			if move == last {
				point = point.Underline().Background(marker)
			}
			sb.WriteByte(' ')
			sb.WriteString(point.String())
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   ")
	for col := 0; col < size; col++ {
		fmt.Fprintf(&sb, " %s", game.NewMove(size, 0, col).Format(size)[:1])
	}
	return sb.String()
}
