package model

// Rules selects the variant policy for king movement. With flying kings a
// king travels any distance along a clear diagonal and captures the first
// enemy piece on the ray; without them a king moves and jumps a single step
// like a man, but in all four directions.
type Rules struct {
	FlyingKings bool
}

func DefaultRules() Rules {
	return Rules{FlyingKings: true}
}
