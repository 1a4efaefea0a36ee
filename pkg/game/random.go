package game

import "math/rand/v2"

// RandomSource 掉落判定使用的唯一熵源
// *rand.Rand 满足该接口；测试中可替换为固定序列
type RandomSource interface {
	// Float64 返回 [0, 1) 内的均匀随机数
	Float64() float64
}

// NewSeededRandom 创建确定性的随机源
// seed 为 0 时使用随机种子
func NewSeededRandom(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, 0))
}
