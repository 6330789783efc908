package events

import (
	log "github.com/sirupsen/logrus"

	"github.com/ruansmarques/MedFerpa-Store-2/pkg/common/domain"
)

// LoggingDispatcher records domain events in the structured log. The store
// has no broker; events exist for the UI signals and the audit trail.
type LoggingDispatcher struct{}

func NewLoggingDispatcher() *LoggingDispatcher {
	return &LoggingDispatcher{}
}

func (d *LoggingDispatcher) Dispatch(event domain.Event) error {
	log.WithFields(log.Fields{
		"event":   event.Type(),
		"payload": event,
	}).Info("domain event")
	return nil
}
