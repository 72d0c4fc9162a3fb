package sender

import (
	"slices"

	"github.com/NethermindEth/l1sender/core"
)

// advanceProgress records the confirmation of an operation covering r and returns the
// resulting progress. A counter only moves when the confirmed range continues it; other
// confirmations wait in Deferred until the gap before them is filled.
func advanceProgress(p core.Progress, action core.ActionType, r core.BlockRange) core.Progress {
	next := core.Progress{
		Stats:    p.Stats,
		Deferred: append(slices.Clone(p.Deferred), core.ConfirmedRange{Action: action, Range: r}),
	}

	for drained := true; drained; {
		drained = false
		for i, confirmed := range next.Deferred {
			last := next.Stats.LastBlock(confirmed.Action)
			if confirmed.Range.Last > last && confirmed.Range.First > last+1 {
				continue
			}
			if confirmed.Range.Last > last {
				next.Stats.SetLastBlock(confirmed.Action, confirmed.Range.Last)
			}
			next.Deferred = slices.Delete(next.Deferred, i, i+1)
			drained = true
			break
		}
	}

	if len(next.Deferred) == 0 {
		next.Deferred = nil
	}
	return next
}
