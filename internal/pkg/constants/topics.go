package constants

// Message topics and subjects
const (
	// Chargeback feed consumed over NSQ
	TopicChargebacks = "antifraud.chargebacks"
	ChannelAntifraud = "antifraud"

	// Decision events published over NATS or NSQ
	SubjectDecisions = "antifraud.decisions"
)
