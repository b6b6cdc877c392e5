package harvest

type QualityStatus string

const (
	QualityGood           QualityStatus = "Good"
	QualityNeedsAttention QualityStatus = "Needs Attention"
)

type QualityReading struct {
	PH        float64 `json:"ph"`
	TDS       float64 `json:"tds"`
	Turbidity float64 `json:"turbidity"`
}

// AssessQuality is a coarse potability check: pH within 6.5..8.5,
// dissolved solids under 500 ppm and turbidity under 5 NTU.
func AssessQuality(r QualityReading) QualityStatus {
	if r.PH >= 6.5 && r.PH <= 8.5 && r.TDS < 500 && r.Turbidity < 5 {
		return QualityGood
	}
	return QualityNeedsAttention
}
