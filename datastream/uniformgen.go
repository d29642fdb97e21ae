package datastream

import (
	"math"
	"math/rand"
)

// UniformDataGenerator 產生平均分布的 key 序列，每個 key 出現機率皆相同
type UniformDataGenerator struct {
	n   int
	rng *rand.Rand
}

func NewUniformDataGenerator(n int, seed int64) *UniformDataGenerator {
	return &UniformDataGenerator{
		n:   n,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Next 產生一筆 key (回傳索引 0~n-1)
func (u *UniformDataGenerator) Next() int {
	return u.rng.Intn(u.n)
}

func (u *UniformDataGenerator) Entropy() float64 {
	return math.Log2(float64(u.n))
}
