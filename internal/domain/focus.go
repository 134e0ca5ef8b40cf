package domain

// CurrentFocus es la pregunta que el usuario esta intentando responder ahora.
type CurrentFocus struct {
	Question     string `json:"question" yaml:"question"`
	WhyItMatters string `json:"why_it_matters" yaml:"why_it_matters"`
	IfWorks      string `json:"if_works" yaml:"if_works"`
	IfFails      string `json:"if_fails" yaml:"if_fails"`
}

type NextLever struct {
	Action      string `json:"action"`
	Reason      string `json:"reason"`
	Uncertainty string `json:"uncertainty"`
}

type Staleness struct {
	IsOverdue   bool   `json:"is_overdue"`
	DaysOverdue int    `json:"days_overdue"`
	Message     string `json:"message"`
}
