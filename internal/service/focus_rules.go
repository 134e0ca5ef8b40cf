package service

import (
	"fmt"
	"time"

	"launchpath/internal/domain"
)

const (
	focusWindow = 5
	leverWindow = 3
	decayDays   = 3
)

var (
	focusMostlyWeak = domain.CurrentFocus{
		Question:     "Should I keep going or try something different?",
		WhyItMatters: "Multiple bad results suggest core approach is not working.",
		IfWorks:      "New angle saves the direction. Continue experimenting.",
		IfFails:      "Abandon this direction. Try fundamentally different path.",
	}
	focusMostlyStrong = domain.CurrentFocus{
		Question:     "Can I repeat this result?",
		WhyItMatters: "One-time wins mean nothing. Need to prove it is a pattern.",
		IfWorks:      "Do this same thing more. Look for ways to make it better.",
		IfFails:      "Was luck, not skill. Find out what actually matters.",
	}
	focusByAdjustment = map[domain.Adjustment]domain.CurrentFocus{
		domain.AdjustmentDoubleDown: {
			Question:     "How much bigger can this get?",
			WhyItMatters: "Current approach works. Now testing if it can keep growing.",
			IfWorks:      "This is the main thing. Make it better and grow it.",
			IfFails:      "Hit a limit. Need a new way to grow.",
		},
		domain.AdjustmentNarrow: {
			Question:     "Does focusing on one group work better?",
			WhyItMatters: "Trying to help everyone was not working. Testing if focusing on fewer people works better.",
			IfWorks:      "Keep focusing on just this group. Become known for helping them.",
			IfFails:      "This group is too small or the wrong group. Try more people or different people.",
		},
		domain.AdjustmentPivot: {
			Question:     "Does this new angle work better?",
			WhyItMatters: "Old approach failed. Testing if different approach works.",
			IfWorks:      "Found the right direction. Keep experimenting here.",
			IfFails:      "This direction may be dead. Consider bigger change.",
		},
	}
)

// CurrentFocus deriva la pregunta activa a partir de los check-ins (mas reciente primero).
// Sin historial, o cuando el ultimo ajuste fue escalate, vuelve al foco inicial de la direccion.
func (e *DecisionEngine) CurrentFocus(direction string, checkIns []domain.CheckIn) domain.CurrentFocus {
	initial, ok := e.catalog.InitialFocus(direction)
	if !ok {
		panic(fmt.Sprintf("unknown direction %q", direction))
	}
	if len(checkIns) == 0 {
		return initial
	}

	weak, strong := countSignals(checkIns, focusWindow)
	if weak >= 2 {
		return focusMostlyWeak
	}
	if strong >= 2 {
		return focusMostlyStrong
	}
	if f, ok := focusByAdjustment[checkIns[0].PathAdjustment]; ok {
		return f
	}
	return initial
}

// ExperimentStaleness mide cuanto paso desde el deadline del compromiso activo.
func ExperimentStaleness(deadline, now time.Time) domain.Staleness {
	days := int(now.Sub(deadline) / (24 * time.Hour))
	if now.Before(deadline) {
		days = 0
	}
	switch {
	case days > decayDays:
		return domain.Staleness{
			IsOverdue:   true,
			DaysOverdue: days,
			Message:     fmt.Sprintf("%d days overdue. Signal decaying. Either check in or kill this experiment.", days),
		}
	case days > 0:
		plural := ""
		if days > 1 {
			plural = "s"
		}
		return domain.Staleness{
			IsOverdue:   true,
			DaysOverdue: days,
			Message:     fmt.Sprintf("%d day%s overdue. Check in now.", days, plural),
		}
	}
	return domain.Staleness{Message: "Experiment active."}
}

// NextLever sugiere la accion de mayor valor informativo segun los ultimos check-ins.
func NextLever(checkIns []domain.CheckIn, hasActiveCommitment bool) domain.NextLever {
	if !hasActiveCommitment {
		return domain.NextLever{
			Action:      "Start next experiment",
			Reason:      "You are idle. No active test means no new information.",
			Uncertainty: "Whether your current hypothesis holds under real market conditions.",
		}
	}
	if len(checkIns) == 0 {
		return domain.NextLever{
			Action:      "Complete first experiment",
			Reason:      "All current beliefs are theoretical. First real data point is highest value.",
			Uncertainty: "Whether initial direction and action are even approximately correct.",
		}
	}

	weak, strong := countSignals(checkIns, leverWindow)
	if weak >= 2 {
		return domain.NextLever{
			Action:      "Re-evaluate core hypothesis",
			Reason:      "Multiple weak signals suggest fundamental misalignment, not execution issues.",
			Uncertainty: "Whether you are solving a real problem for a real market.",
		}
	}
	if strong >= 2 {
		return domain.NextLever{
			Action:      "Test if this keeps working",
			Reason:      "Early wins often do not last. Prove this will keep happening, not just once.",
			Uncertainty: "Whether good result was luck or something you can keep doing.",
		}
	}
	return domain.NextLever{
		Action:      "Run next experiment",
		Reason:      "Current data is insufficient. Continue accumulating signal.",
		Uncertainty: "Whether recent results represent noise or trend.",
	}
}

func countSignals(checkIns []domain.CheckIn, window int) (weak, strong int) {
	if len(checkIns) > window {
		checkIns = checkIns[:window]
	}
	for _, ci := range checkIns {
		switch ci.SignalType {
		case domain.SignalWeak:
			weak++
		case domain.SignalStrong:
			strong++
		}
	}
	return weak, strong
}
