package i

// Logger is the tagged line logger shared by services.
type Logger interface {
	Info(string)
	Warning(string)
	Error(string)
}
