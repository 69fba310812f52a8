package service

type StreamStatus int

const (
	StatusUnknown StreamStatus = iota
	StatusStarted
	StatusData
	StatusReasoning
	StatusReasoningOver
	StatusVerbose
	StatusError
	StatusCanceled
	StatusFinished
)

type StreamNotify struct {
	Status StreamStatus
	Data   string // For text content or error messages
}
