package utils

import "github.com/sirupsen/logrus"

// LogEvent emits a standardized structured log line with
// module/action/request_id. Avoid logging sensitive payload; message should
// be summarized.
func LogEvent(requestID, module, action, message string) {
	logrus.WithFields(logrus.Fields{
		"module":     module,
		"action":     action,
		"request_id": requestID,
	}).Info(message)
}
