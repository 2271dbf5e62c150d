package ports

import "veldoria/internal/domain/realm"

type QueueMetrics interface {
	RecordIteration(t realm.ActionType)
	RecordTerminal(t realm.ActionType, status realm.QueueStatus)
	RecordStartRejected()
}
