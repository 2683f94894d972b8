package io

import (
	"github.com/ezrec/ls8/translate"
)

var (
	// Channel errors
	ErrChannelFull   = translate.New("channel full")
	ErrChannelClosed = translate.New("channel closed")
)
