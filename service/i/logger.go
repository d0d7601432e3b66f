package i

// Logger is the levelled logger services write to.
type Logger interface {
	Info(msg string)
	Warning(msg string)
	Error(msg string)
}
