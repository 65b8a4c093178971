package constants

// Redis key formats
const (
	KeyUserLock = "antifraud:lock:user:%d" // Format: antifraud:lock:user:{user_id}
)
