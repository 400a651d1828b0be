package omok

const Size = 15

// Board [y][x] 0为空 1/2为棋子颜色
type Board [Size][Size]int

type direction struct {
	dx, dy int
}

// axes 竖 横 两条斜线 每条由两个相反方向组成
var axes = [4][2]direction{
	{{0, -1}, {0, 1}},
	{{-1, 0}, {1, 0}},
	{{-1, -1}, {1, 1}},
	{{1, -1}, {-1, 1}},
}

type lineResult struct {
	Count            int
	CountWithSkip    int
	EndsInOtherColor bool
}

func (l lineResult) openThree() bool {
	return !l.EndsInOtherColor && l.CountWithSkip == 2
}

func inBoard(x, y int) bool {
	return x >= 0 && x < Size && y >= 0 && y < Size
}

// scan 从(x,y)朝一个方向数同色棋子 最多跳过一个空位 且空位后必须紧跟同色棋子
func scan(b *Board, x, y int, d direction, color int) lineResult {
	var r lineResult
	skipped := false
	cx, cy := x+d.dx, y+d.dy
	for inBoard(cx, cy) {
		v := b[cy][cx]
		if v == color {
			r.CountWithSkip++
			if !skipped {
				r.Count++
			}
		} else if v == 0 {
			nx, ny := cx+d.dx, cy+d.dy
			if skipped || !inBoard(nx, ny) || b[ny][nx] != color {
				break
			}
			skipped = true
		} else {
			r.EndsInOtherColor = true
			break
		}
		cx += d.dx
		cy += d.dy
	}
	return r
}

// CheckStone 评估在(x,y)落color 不修改棋盘
// 五连时gameOver为true 并且不再判断双三
func CheckStone(b *Board, x, y int, color int) (doubleThree bool, gameOver bool) {
	threes := 0
	for _, axis := range axes {
		a := scan(b, x, y, axis[0], color)
		c := scan(b, x, y, axis[1], color)
		merged := lineResult{
			Count:            a.Count + c.Count,
			CountWithSkip:    a.CountWithSkip + c.CountWithSkip,
			EndsInOtherColor: a.EndsInOtherColor || c.EndsInOtherColor,
		}
		if merged.Count == 4 {
			return false, true
		}
		raw := 0
		if a.openThree() {
			raw++
		}
		if c.openThree() {
			raw++
		}
		if raw > 0 {
			threes += raw
		} else if merged.openThree() {
			threes++
		}
	}
	return threes > 1, false
}
