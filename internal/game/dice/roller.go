package dice

// Roll evaluates an Expression using the given Source and returns a RollResult.
//
// Precondition: expr must come from Parse (Count >= 1, Sides >= 2); src must be non-nil.
// Postcondition: len(result.Dice) == expr.Count; result.Total() == sum(result.Dice) + result.Modifier.
func Roll(expr Expression, src Source) RollResult {
	rolled := make([]int, expr.Count)
	for i := range rolled {
		rolled[i] = src.Intn(expr.Sides) + 1
	}
	return RollResult{
		Expression: expr.Raw,
		Dice:       rolled,
		Modifier:   expr.Modifier,
	}
}

// RollExpr parses expr and rolls it using src in a single call.
//
// Postcondition: Returns a RollResult or a parse error.
func RollExpr(expr string, src Source) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	return Roll(e, src), nil
}

// Doubled returns expr with its dice count doubled and the modifier unchanged, as rolled on a critical hit.
func Doubled(expr Expression) Expression {
	out := expr
	out.Count = expr.Count * 2
	return out
}

// MustParse parses expr and panics on error. Useful for package-level constants.
//
// Precondition: expr must be a valid dice expression.
func MustParse(expr string) Expression {
	e, err := Parse(expr)
	if err != nil {
		panic("dice: MustParse failed for expression " + expr + ": " + err.Error())
	}
	return e
}

// Mode selects how a d20 test is rolled.
type Mode string

// Roll modes.
const (
	Normal       Mode = "normal"
	Advantage    Mode = "advantage"
	Disadvantage Mode = "disadvantage"
)

// ParseMode converts a flag value to a Mode; the empty string is Normal.
//
// Postcondition: ok is false for any unrecognized value.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case "", Normal:
		return Normal, true
	case Advantage, Disadvantage:
		return Mode(s), true
	}
	return "", false
}

// D20Result is a d20 test: every die thrown and the one kept.
type D20Result struct {
	Mode  Mode
	Rolls []int
	Kept  int
}

// Natural20 reports whether the kept die shows 20.
func (r D20Result) Natural20() bool { return r.Kept == 20 }

// RollD20 throws one d20, or two keeping the higher (advantage) or lower (disadvantage).
//
// Postcondition: 1 <= result.Kept <= 20; len(result.Rolls) is 1 for Normal and 2 otherwise.
func RollD20(mode Mode, src Source) D20Result {
	first := src.Intn(20) + 1
	if mode != Advantage && mode != Disadvantage {
		return D20Result{Mode: Normal, Rolls: []int{first}, Kept: first}
	}
	second := src.Intn(20) + 1
	kept := max(first, second)
	if mode == Disadvantage {
		kept = min(first, second)
	}
	return D20Result{Mode: mode, Rolls: []int{first, second}, Kept: kept}
}
