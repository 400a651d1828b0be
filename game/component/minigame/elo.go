package minigame

import (
	"math"

	"miniroom/core/models/entity"
)

const loserWeight = 0.05

// WinProbability 逻辑斯蒂曲线 分差越大 分低的一方期望越小
// loserBonus是上一局输家分数带来的修正 开局前没有上一局时为0
func WinProbability(own, other int, loserBonus float64, scale float64) float64 {
	return 1 / (math.Pow(10, (float64(other-own)+loserBonus)*scale) + 1)
}

// Stake 分数变化的倍率
func Stake(r *entity.MiniGameRecord) float64 {
	s := 50.0
	if r.Games() >= 50 {
		s = 30
	}
	if r.Score > 3000 {
		s = 20
	}
	return s
}

// ScoreDelta outcome 1胜 0.5平 0负
func ScoreDelta(r *entity.MiniGameRecord, p float64, outcome float64, factor float64) int {
	return int(math.Round(Stake(r) * (outcome - p) * factor))
}
