package sender

import (
	"time"

	"github.com/NethermindEth/l1sender/core"
)

type EventListener interface {
	OnTick(took time.Duration, err error)
	OnSent(action core.ActionType, resubmission bool)
	OnConfirmed(action core.ActionType, lastBlock uint64)
	OnFailed(action core.ActionType)
	OnDeferred(reason string)
	OnInFlight(count int)
}

type SelectiveListener struct {
	OnTickCb      func(took time.Duration, err error)
	OnSentCb      func(action core.ActionType, resubmission bool)
	OnConfirmedCb func(action core.ActionType, lastBlock uint64)
	OnFailedCb    func(action core.ActionType)
	OnDeferredCb  func(reason string)
	OnInFlightCb  func(count int)
}

func (l *SelectiveListener) OnTick(took time.Duration, err error) {
	if l.OnTickCb != nil {
		l.OnTickCb(took, err)
	}
}

func (l *SelectiveListener) OnSent(action core.ActionType, resubmission bool) {
	if l.OnSentCb != nil {
		l.OnSentCb(action, resubmission)
	}
}

func (l *SelectiveListener) OnConfirmed(action core.ActionType, lastBlock uint64) {
	if l.OnConfirmedCb != nil {
		l.OnConfirmedCb(action, lastBlock)
	}
}

func (l *SelectiveListener) OnFailed(action core.ActionType) {
	if l.OnFailedCb != nil {
		l.OnFailedCb(action)
	}
}

func (l *SelectiveListener) OnDeferred(reason string) {
	if l.OnDeferredCb != nil {
		l.OnDeferredCb(reason)
	}
}

func (l *SelectiveListener) OnInFlight(count int) {
	if l.OnInFlightCb != nil {
		l.OnInFlightCb(count)
	}
}
