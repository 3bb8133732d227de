package session

import "lexmap/models"

// PermittedProviderModes lists the interaction modes a provider's current
// status allows. Chat is always permitted (an offline chat is treated as
// "leave a message"); Call and Video require the provider to be online.
// Schedule is always permitted at request time; the offline-visit location
// requirement is checked at submission.
func PermittedProviderModes(status models.ProviderStatus) []models.SessionMode {
	modes := []models.SessionMode{models.ModeChat, models.ModeSchedule}
	if status == models.ProviderOnline {
		modes = append(modes, models.ModeCall, models.ModeVideo)
	}
	return modes
}

// PermittedInstitutionModes lists the modes offered for an institution.
// Institutions never take calls; a visit can be scheduled while the body is
// active, and an inquiry message can always be left.
func PermittedInstitutionModes(active bool) []models.SessionMode {
	modes := []models.SessionMode{models.ModeChat}
	if active {
		modes = append(modes, models.ModeSchedule)
	}
	return modes
}

func modePermitted(modes []models.SessionMode, mode models.SessionMode) bool {
	for _, m := range modes {
		if m == mode {
			return true
		}
	}
	return false
}
