package alerter

// AlertPayload алерт в свободной форме от внешнего мониторинга
type AlertPayload struct {
	Message  string `json:"message"`
	Source   string `json:"source,omitempty"`
	Severity string `json:"severity,omitempty"`
}
