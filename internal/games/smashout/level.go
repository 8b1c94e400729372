// Package smashout implements a brick-breaker with typed bricks, bonus
// balls, extra bats, laser mode and fire cascades.
package smashout

// Layout is a level's brick grid as an ASCII map.
// Characters:
//
//	'.' = gap
//	'#' = plain brick
//	'B' = bonus-ball brick
//	'T' = extra-bat brick
//	'L' = extra-life brick
//	'K' = blackout brick
//	'I' = invert-control brick
//	'F' = fire brick (cascades)
//	'X' = indestructible brick
//	'Z' = laser brick
//	'?' = random plain/bonus/bat mix, weighted by difficulty
type Layout struct {
	ID   string
	Name string
	Rows []string
}

// BuiltinLayouts returns the level rotation.
func BuiltinLayouts() []Layout {
	return []Layout{
		{"opener", "Opener", []string{
			"####################",
			"#??????????????????#",
			"####################",
			"........LL..........",
		}},

		{"vault", "Vault", []string{
			"X..X....X..X....X..X",
			"#?????#??##??#?????#",
			"##B##Z########Z##B##",
			"....................",
			"######TT####TT######",
		}},

		{"bonfire", "Bonfire", []string{
			"......########......",
			"....##FF####FF##....",
			"..####F######F####..",
			"######?######?######",
			"##L##############L##",
		}},

		{"mirror", "Mirror", []string{
			"IIII############IIII",
			"#??????????????????#",
			"##K##Z######Z##K####",
			"....................",
			"#####B##TT##B#######",
		}},

		{"bulwark", "Bulwark", []string{
			"XXXX############XXXX",
			"#F################F#",
			"##Z####KKKK####Z####",
			"#??????????????????#",
			"####LL##BB##LL######",
			"....................",
			"######??????########",
		}},

		{"furnace", "Furnace", []string{
			"F#F#F#F#F#F#F#F#F#F#",
			"####################",
			"#Z#K#B#T#L#I#Z#K#B#T",
			"####################",
			"X#X##############X#X",
			"?????????#??????????",
		}},
	}
}

// LayoutCount returns the number of built-in layouts.
func LayoutCount() int {
	return len(BuiltinLayouts())
}

// GetLayout returns a layout by index, wrapping for endless play.
func GetLayout(index int) Layout {
	layouts := BuiltinLayouts()
	return layouts[index%len(layouts)]
}

// parseBrickType maps a layout rune to a brick type. The second return
// is false for gaps.
func parseBrickType(ch byte, difficulty int, rng *SimpleRNG) (BrickType, bool) {
	var t BrickType
	switch ch {
	case '#':
		t = BrickPlain
	case 'B':
		t = BrickBonusBall
	case 'T':
		t = BrickExtraBat
	case 'L':
		t = BrickExtraLife
	case 'K':
		t = BrickBlackout
	case 'I':
		t = BrickInvert
	case 'F':
		t = BrickFire
	case 'X':
		t = BrickSolid
	case 'Z':
		t = BrickLaser
	case '?':
		// Mostly plain; easier difficulties see more helpful bricks.
		roll := rng.Intn(10)
		switch {
		case roll < 8-difficulty:
			t = BrickPlain
		case roll < 9:
			t = BrickBonusBall
		default:
			t = BrickExtraBat
		}
	default:
		return 0, false
	}
	return applyDifficulty(t, difficulty), true
}

// applyDifficulty softens nasty brick types on easier settings:
// easy drops indestructible and blackout bricks, normal drops blackout,
// and both turn invert into extra-life.
func applyDifficulty(t BrickType, difficulty int) BrickType {
	switch t {
	case BrickSolid:
		if difficulty == 0 {
			return BrickPlain
		}
	case BrickBlackout:
		if difficulty <= 1 {
			return BrickPlain
		}
	case BrickInvert:
		if difficulty <= 1 {
			return BrickExtraLife
		}
	}
	return t
}
