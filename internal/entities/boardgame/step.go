package boardgame

// Step represents one setup instruction in a game's catalog. Order is
// 1-based and unique within a game; resolution sorts by it.
type Step struct {
	ID        string
	GameID    string
	Order     int32
	Text      string
	Visual    string
	Condition *StepCondition
	CreatedAt int64
	UpdatedAt int64
}

// StepCondition restricts a step to certain selections. All populated
// sub-conditions must hold for the step to apply; an empty condition
// always applies.
type StepCondition struct {
	// PlayerCounts lists the counts the step applies to. Empty means
	// any count.
	PlayerCounts []int32

	// IncludeExpansions lists expansions that must all be selected
	IncludeExpansions []string

	// ExcludeExpansions lists expansions that must not be selected
	ExcludeExpansions []string

	// IncludeModules lists modules that must all be selected
	IncludeModules []string

	// ExcludeModules lists modules that must not be selected
	ExcludeModules []string

	// RequireNoExpansions restricts the step to base-game-only setups
	RequireNoExpansions bool
}

// IsEmpty reports whether the condition restricts nothing. A nil
// condition is empty.
func (c *StepCondition) IsEmpty() bool {
	if c == nil {
		return true
	}
	return len(c.PlayerCounts) == 0 &&
		len(c.IncludeExpansions) == 0 &&
		len(c.ExcludeExpansions) == 0 &&
		len(c.IncludeModules) == 0 &&
		len(c.ExcludeModules) == 0 &&
		!c.RequireNoExpansions
}

// Clone returns a deep copy of the condition. Cloning nil yields nil.
func (c *StepCondition) Clone() *StepCondition {
	if c == nil {
		return nil
	}
	clone := &StepCondition{
		RequireNoExpansions: c.RequireNoExpansions,
	}
	if len(c.PlayerCounts) > 0 {
		clone.PlayerCounts = append([]int32{}, c.PlayerCounts...)
	}
	if len(c.IncludeExpansions) > 0 {
		clone.IncludeExpansions = append([]string{}, c.IncludeExpansions...)
	}
	if len(c.ExcludeExpansions) > 0 {
		clone.ExcludeExpansions = append([]string{}, c.ExcludeExpansions...)
	}
	if len(c.IncludeModules) > 0 {
		clone.IncludeModules = append([]string{}, c.IncludeModules...)
	}
	if len(c.ExcludeModules) > 0 {
		clone.ExcludeModules = append([]string{}, c.ExcludeModules...)
	}
	return clone
}
