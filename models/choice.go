package models

// Choice is a stored value with its human readable label.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func validChoice(choices []Choice, value string) bool {
	for _, c := range choices {
		if c.Value == value {
			return true
		}
	}
	return false
}
