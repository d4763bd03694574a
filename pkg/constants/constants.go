package constants

type ContextKey string

const (
	PoolKey   ContextKey = "pool"
	TxKey     ContextKey = "tx"
	UserIDKey ContextKey = "userID"
	LoggerKey ContextKey = "logger"
)
