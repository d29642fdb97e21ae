package datastream

import (
	"math"
	"math/rand"
)

// ZipfDataGenerator 產生符合 Zipf 分布的 key 序列
type ZipfDataGenerator struct {
	Weights []float64
	cdf     []float64
	rng     *rand.Rand
}

func NewZipfDataGenerator(n int, a, b float64, seed int64) *ZipfDataGenerator {
	rng := rand.New(rand.NewSource(seed))
	weights := make([]float64, n)
	var sum float64
	for i := 1; i <= n; i++ {
		weights[i-1] = 1.0 / math.Pow(float64(i)+b, a)
		sum += weights[i-1]
	}
	// 正規化
	for i := range weights {
		weights[i] /= sum
	}
	// 熱點打散到不同的 key
	rng.Shuffle(len(weights), func(i, j int) {
		weights[i], weights[j] = weights[j], weights[i]
	})
	cdf := make([]float64, n)
	cdf[0] = weights[0]
	for i := 1; i < n; i++ {
		cdf[i] = cdf[i-1] + weights[i]
	}
	return &ZipfDataGenerator{
		Weights: weights,
		cdf:     cdf,
		rng:     rng,
	}
}

// Next 產生一筆 key (回傳索引 0~n-1)
func (z *ZipfDataGenerator) Next() int {
	return searchCDF(z.cdf, z.rng.Float64())
}

func (z *ZipfDataGenerator) Entropy() float64 {
	h := 0.0
	for _, p := range z.Weights {
		if p > 0 {
			h -= p * math.Log2(p)
		}
	}
	return h
}

// searchCDF 二分搜尋第一個 cdf[i] >= r 的位置
func searchCDF(cdf []float64, r float64) int {
	lo, hi := 0, len(cdf)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if r > cdf[mid] {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}
