package basic

import (
	"time"

	"golang.org/x/exp/rand"
)

// levelGen 以擲硬幣決定新節點的高度，不可併發使用，只在持有寫入鎖時呼叫
type levelGen struct {
	rand *rand.Rand
}

func newLevelGen(seed uint64) *levelGen {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &levelGen{rand: rand.New(rand.NewSource(seed))}
}

func (g *levelGen) flip() bool {
	return g.rand.Uint64()>>63 == 1
}

// next 回傳 [0, maxLevel] 的高度：P(k) = 2^-(k+1)，超過 maxLevel 的機率全部落在 maxLevel
func (g *levelGen) next(maxLevel int) int {
	lvl := 0
	for lvl < maxLevel && g.flip() {
		lvl++
	}
	return lvl
}
