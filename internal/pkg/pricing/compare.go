package pricing

import (
	"errors"
	"math"
)

// ErrBadSample 价格样本非法（NaN/Inf），调用方应跳过本次比较
var ErrBadSample = errors.New("价格样本非法")

type Direction int

const (
	Unchanged Direction = iota
	Increased
	Decreased
)

func (d Direction) String() string {
	switch d {
	case Increased:
		return "increased"
	case Decreased:
		return "decreased"
	default:
		return "unchanged"
	}
}

// Change 一次价格变动：幅度恒为非负，方向由符号决定
type Change struct {
	Amount    float64
	Direction Direction
}

// Compare 计算 current 相对 previous 的变动
func Compare(current, previous float64) (Change, error) {
	if !valid(current) || !valid(previous) {
		return Change{}, ErrBadSample
	}

	diff := current - previous
	switch {
	case diff > 0:
		return Change{Amount: diff, Direction: Increased}, nil
	case diff < 0:
		return Change{Amount: -diff, Direction: Decreased}, nil
	default:
		return Change{Amount: 0, Direction: Unchanged}, nil
	}
}

func valid(price float64) bool {
	return !math.IsNaN(price) && !math.IsInf(price, 0)
}
