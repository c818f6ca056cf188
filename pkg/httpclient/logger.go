package httpclient

import (
	"fmt"

	"github.com/go-resty/resty/v2"
)

// Logger is the structured logging surface resty's own messages are sent to.
type Logger interface {
	DebugObj(msg, key string, obj interface{})
	WarnObj(msg, key string, obj interface{})
	ErrorObj(msg, key string, obj interface{})
}

// restyLogger adapts resty.Logger to Logger. A nil Logger drops everything.
type restyLogger struct {
	log Logger
}

var _ resty.Logger = restyLogger{}

func (l restyLogger) Errorf(format string, v ...interface{}) {
	if l.log != nil {
		l.log.ErrorObj("http client error", "resty", fmt.Sprintf(format, v...))
	}
}

func (l restyLogger) Warnf(format string, v ...interface{}) {
	if l.log != nil {
		l.log.WarnObj("http client warning", "resty", fmt.Sprintf(format, v...))
	}
}

func (l restyLogger) Debugf(format string, v ...interface{}) {
	if l.log != nil {
		l.log.DebugObj("http client debug", "resty", fmt.Sprintf(format, v...))
	}
}
