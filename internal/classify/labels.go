package classify

import (
	"github.com/joseph-ayodele/claims-triage/constants"
)

// ImageLabel is one label returned by the image classifier.
type ImageLabel struct {
	Description string  `json:"description"`
	Confidence  float64 `json:"confidence"`
}

// LabelScore is a selected label under its Italian name.
type LabelScore struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// SelectedLabels keeps the classifier order of the labels that survived selection.
type SelectedLabels []LabelScore

// Get returns the confidence of the named label.
func (s SelectedLabels) Get(name string) (float64, bool) {
	for _, l := range s {
		if l.Name == name {
			return l.Confidence, true
		}
	}
	return 0, false
}

// SelectLabels keeps the allow-listed labels scoring strictly above threshold
// and translates them. A description reported twice keeps its first position
// and its last confidence.
func SelectLabels(labels []ImageLabel, threshold float64) SelectedLabels {
	order := make([]string, 0, len(labels))
	confidence := make(map[string]float64, len(labels))
	for _, l := range labels {
		if _, seen := confidence[l.Description]; !seen {
			order = append(order, l.Description)
		}
		confidence[l.Description] = l.Confidence
	}

	selected := SelectedLabels{}
	for _, desc := range order {
		name, ok := constants.LabelTranslations[desc]
		if !ok || confidence[desc] <= threshold {
			continue
		}
		selected = append(selected, LabelScore{Name: name, Confidence: confidence[desc]})
	}
	return selected
}
