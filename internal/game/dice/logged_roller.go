package dice

import "go.uber.org/zap"

// Roller rolls from a Source and records every roll at debug level.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller returns a Roller drawing from src.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// For returns a Roller sharing r's source whose log entries name purpose, e.g. "Longsword attack".
func (r *Roller) For(purpose string) *Roller {
	return &Roller{src: r.src, logger: r.logger.With(zap.String("for", purpose))}
}

// Roll evaluates expr.
//
// Precondition: expr must come from Parse.
func (r *Roller) Roll(expr Expression) RollResult {
	res := Roll(expr, r.src)
	r.logger.Debug("dice roll",
		zap.String("expression", res.Expression),
		zap.Ints("dice", res.Dice),
		zap.Int("total", res.Total()),
	)
	return res
}

// RollExpr parses and rolls expr.
func (r *Roller) RollExpr(expr string) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	return r.Roll(e), nil
}

// RollD20 throws a d20 test in mode.
func (r *Roller) RollD20(mode Mode) D20Result {
	res := RollD20(mode, r.src)
	r.logger.Debug("d20 roll",
		zap.String("mode", string(res.Mode)),
		zap.Ints("rolls", res.Rolls),
		zap.Int("kept", res.Kept),
	)
	return res
}
