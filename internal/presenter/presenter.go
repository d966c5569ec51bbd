package presenter

import (
	"fmt"

	"github.com/Aravinsamy/ai-fake-image-video-detector/internal/domain/analysis"
)

// Visual treatments for an indicator. Two fixed styles, no third state.
const (
	StyleSuspicious = "suspicious"
	StyleNormal     = "normal"
)

// IndicatorView is one rendered sub-signal row.
type IndicatorView struct {
	Name        string
	ScoreLabel  string  // one decimal, e.g. "94.2%"
	Percent     float64 // raw 0-100 value for the progress fill
	Style       string
	Description string
}

// ViewModel is the renderable form of an analysis result.
type ViewModel struct {
	Verdict         string
	Details         string
	IsAI            bool
	ConfidenceLabel string // one decimal, e.g. "92.3%"
	FileName        string
	FileSize        string
	FileType        string
	Timestamp       string
	Indicators      []IndicatorView
}

// Present transforms a result into its view model. Pure: no state, no
// side effects, no network — result formatting stays testable without the
// async pipeline.
func Present(r *analysis.Result) ViewModel {
	vm := ViewModel{
		Verdict:         r.Verdict,
		Details:         r.Details,
		IsAI:            r.IsAI,
		ConfidenceLabel: fmt.Sprintf("%.1f%%", float64(r.Confidence)),
		FileName:        r.FileName,
		FileSize:        r.FileSize,
		FileType:        r.FileType,
		Timestamp:       r.Timestamp,
		Indicators:      make([]IndicatorView, 0, len(r.Indicators)),
	}

	for _, ind := range r.Indicators {
		style := StyleNormal
		if ind.Suspicious {
			style = StyleSuspicious
		}
		vm.Indicators = append(vm.Indicators, IndicatorView{
			Name:        ind.Name,
			ScoreLabel:  fmt.Sprintf("%.1f%%", float64(ind.Score)),
			Percent:     float64(ind.Score),
			Style:       style,
			Description: ind.Description,
		})
	}
	return vm
}
