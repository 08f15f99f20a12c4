package module

import dom "casework/internal/services/analyzer/domain"

// Ports holds the ports exposed by the analyzer module
type Ports struct {
	Worker dom.WorkerPort
}
