package logging

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// ChiLogWriter sends chi's text request log lines to logrus
type ChiLogWriter struct {
}

func (lw *ChiLogWriter) Print(a ...interface{}) {
	msg := strings.TrimSpace(fmt.Sprint(a...))
	if strings.HasPrefix(msg, "[") && strings.HasSuffix(msg, "]") {
		msg = msg[1 : len(msg)-1]
	}
	logrus.Debug(msg)
}
