package domain

type SummaryItem struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type SummarySection struct {
	Title string        `json:"title"`
	Items []SummaryItem `json:"items"`
}

// BusinessSummary resume las salidas de los capitulos completados de un path.
type BusinessSummary struct {
	PathID   string           `json:"path_id"`
	Sections []SummarySection `json:"sections"`
}
