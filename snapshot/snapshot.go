// 终局画面导出为图片
package snapshot

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/hoshinonyaruko/snake-in-term/structs"
)

// footer is the height in pixels of the score strip under the board.
const footer = 20

// Save draws board as blockSize pixel squares with a score strip and writes it
// to path. The image format follows the extension (png, jpg, gif, bmp, tiff).
func Save(path string, board structs.Board, size structs.Size, score, blockSize int) error {
	if blockSize <= 0 {
		return fmt.Errorf("block size must be positive, got %d", blockSize)
	}
	if _, err := imaging.FormatFromFilename(path); err != nil {
		return err
	}

	dc := Draw(board, size, score, blockSize)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return imaging.Save(dc.Image(), path)
}

// Draw renders board into a new context.
func Draw(board structs.Board, size structs.Size, score, blockSize int) *gg.Context {
	width := size.Cols * blockSize
	height := size.Rows * blockSize

	dc := gg.NewContext(width, height+footer)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	for r, row := range board {
		for c, cell := range row {
			switch cell {
			case structs.SnakeCell:
				dc.SetRGB(0.2, 0.7, 0.3)
			case structs.FoodCell:
				dc.SetRGB(0.9, 0.2, 0.2)
			default:
				continue
			}
			dc.DrawRectangle(float64(c*blockSize), float64(r*blockSize), float64(blockSize), float64(blockSize))
			dc.Fill()
		}
	}

	renderGrid(dc, width, height, blockSize)

	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored(fmt.Sprintf("Score: %d", score), 4, float64(height)+footer/2, 0, 0.5)
	return dc
}

func renderGrid(dc *gg.Context, width, height, blockSize int) {
	dc.SetRGB(0.9, 0.9, 0.9)
	dc.SetLineWidth(1)
	for x := 0; x <= width; x += blockSize {
		dc.DrawLine(float64(x), 0, float64(x), float64(height))
		dc.Stroke()
	}
	for y := 0; y <= height; y += blockSize {
		dc.DrawLine(0, float64(y), float64(width), float64(y))
		dc.Stroke()
	}
}
