package publish

import (
	"fmt"

	"github.com/aws/smithy-go/logging"
	"github.com/rs/zerolog"
)

const logPrefix = "aws-sdk-go-v2: "

type s3Logger struct {
	logger zerolog.Logger
}

func (l *s3Logger) Logf(classification logging.Classification, format string, v ...interface{}) {
	event := l.logger.Debug()
	if classification == logging.Warn {
		event = l.logger.Warn()
	}
	event.Msg(logPrefix + fmt.Sprintf(format, v...))
}
