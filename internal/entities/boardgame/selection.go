package boardgame

// Selection is the state a setup guide is resolved against: the player
// count plus the selected expansion and module IDs.
type Selection struct {
	PlayerCount        int32
	SelectedExpansions []string
	SelectedModules    []string
}

// HasExpansion reports whether the expansion is selected
func (s *Selection) HasExpansion(expansionID string) bool {
	return containsString(s.SelectedExpansions, expansionID)
}

// HasModule reports whether the module is selected
func (s *Selection) HasModule(moduleID string) bool {
	return containsString(s.SelectedModules, moduleID)
}

// Clone returns a deep copy of the selection
func (s *Selection) Clone() *Selection {
	return &Selection{
		PlayerCount:        s.PlayerCount,
		SelectedExpansions: append([]string{}, s.SelectedExpansions...),
		SelectedModules:    append([]string{}, s.SelectedModules...),
	}
}

func containsString(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
