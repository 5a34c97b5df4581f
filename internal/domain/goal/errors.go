package goal

import "errors"

var (
	ErrInvalidType      = errors.New("goal type must be calories, protein, carbs, fat, water, steps or weight")
	ErrInvalidPeriod    = errors.New("goal period must be daily, weekly or monthly")
	ErrInvalidTarget    = errors.New("goal target must be greater than 0")
	ErrNegativeProgress = errors.New("goal progress cannot be negative")
	ErrGoalNotFound     = errors.New("goal not found")
)
