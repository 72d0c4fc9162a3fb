package l1

import "time"

type EventListener interface {
	OnL1Call(method string, took time.Duration, err error)
}

type SelectiveListener struct {
	OnL1CallCb func(method string, took time.Duration, err error)
}

func (l SelectiveListener) OnL1Call(method string, took time.Duration, err error) {
	if l.OnL1CallCb != nil {
		l.OnL1CallCb(method, took, err)
	}
}
